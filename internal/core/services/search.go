package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/ghs/internal/core/domain"
	"github.com/custodia-labs/ghs/internal/core/ports/driven"
	"github.com/custodia-labs/ghs/internal/core/ports/driving"
	"github.com/custodia-labs/ghs/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService fetches result pages, consulting the page cache first.
type SearchService struct {
	searcher driven.CodeSearcher
	cache    driven.PageCache
}

// NewSearchService creates a new search service.
// The cache parameter is optional (can be nil).
func NewSearchService(searcher driven.CodeSearcher, cache driven.PageCache) *SearchService {
	return &SearchService{
		searcher: searcher,
		cache:    cache,
	}
}

// Search fetches one page of results for query.
func (s *SearchService) Search(ctx context.Context, query domain.Query) (*domain.SearchPage, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q, page: %d", query.Text, query.Page)

	if err := query.Validate(); err != nil {
		return nil, err
	}
	if s.searcher == nil {
		return nil, domain.ErrSearchUnavailable
	}

	if page := s.cached(ctx, query); page != nil {
		logger.Info("Cache hit: %d items", len(page.Results.Items))
		return page, nil
	}

	page, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query.Text, err)
	}
	page.Query = query
	logger.Info("Fetched %d items (total %d, next page: %t)",
		len(page.Results.Items), page.Results.TotalCount, page.Pagination.HasNext())

	if s.cache != nil {
		if err := s.cache.Put(ctx, page); err != nil {
			logger.Warn("Failed to cache page: %v", err)
		}
	}

	return page, nil
}

func (s *SearchService) cached(ctx context.Context, query domain.Query) *domain.SearchPage {
	if s.cache == nil {
		return nil
	}
	page, err := s.cache.Get(ctx, query)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Cache lookup failed: %v", err)
		}
		return nil
	}
	page.Query = query
	return page
}

// ClearCache discards every cached page.
func (s *SearchService) ClearCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}
