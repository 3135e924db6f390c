package driven

import (
	"context"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

// PageCache stores fetched result pages keyed by query text and page number.
type PageCache interface {
	// Get returns a cached page, or domain.ErrNotFound when it is absent
	// or older than the cache's time-to-live.
	Get(ctx context.Context, query domain.Query) (*domain.SearchPage, error)

	// Put stores a page, replacing any previous entry for the same query.
	Put(ctx context.Context, page *domain.SearchPage) error

	// Clear removes every cached page.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
