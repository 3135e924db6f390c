package driven

import (
	"context"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

// CodeSearcher fetches one page of code search results from a remote service.
type CodeSearcher interface {
	// Search fetches the page of results described by query.
	// The returned page carries the pagination parsed from the response.
	Search(ctx context.Context, query domain.Query) (*domain.SearchPage, error)
}
