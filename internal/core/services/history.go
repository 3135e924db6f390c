package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ghs/internal/core/domain"
	"github.com/custodia-labs/ghs/internal/core/ports/driven"
	"github.com/custodia-labs/ghs/internal/core/ports/driving"
	"github.com/custodia-labs/ghs/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService loads and persists search history.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Load returns stored queries, truncated to domain.MaxHistorySize.
func (s *HistoryService) Load(ctx context.Context) ([]string, error) {
	searches, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	logger.Debug("Loaded %d history entries", len(searches))
	return domain.NewHistory(searches).Snapshot(), nil
}

// Save persists searches, truncated to domain.MaxHistorySize.
func (s *HistoryService) Save(ctx context.Context, searches []string) error {
	if len(searches) > domain.MaxHistorySize {
		searches = searches[:domain.MaxHistorySize]
	}
	if err := s.store.Save(ctx, searches); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Clear removes all stored queries.
func (s *HistoryService) Clear(ctx context.Context) error {
	return s.Save(ctx, []string{})
}
