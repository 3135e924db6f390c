package driving

import "context"

// HistoryService loads and persists search history.
type HistoryService interface {
	// Load returns stored queries, most recent first, capped at
	// domain.MaxHistorySize.
	Load(ctx context.Context) ([]string, error)

	// Save persists the full deduplicated, capped list.
	Save(ctx context.Context, searches []string) error

	// Clear removes all stored queries.
	Clear(ctx context.Context) error
}
