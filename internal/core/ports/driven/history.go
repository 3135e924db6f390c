package driven

import "context"

// HistoryStore persists the list of submitted queries, most recent first.
type HistoryStore interface {
	// Load returns the stored queries.
	// A store that has never been written returns an empty list and no error.
	Load(ctx context.Context) ([]string, error)

	// Save replaces the stored queries.
	Save(ctx context.Context, searches []string) error
}
