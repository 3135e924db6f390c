package driving

import (
	"context"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

// SearchService provides code search capabilities to external actors.
type SearchService interface {
	// Search fetches one page of results for query.
	Search(ctx context.Context, query domain.Query) (*domain.SearchPage, error)

	// ClearCache discards every cached page.
	ClearCache(ctx context.Context) error
}
