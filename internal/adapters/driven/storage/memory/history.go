package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/ghs/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore keeps search history in memory.
type HistoryStore struct {
	mu       sync.Mutex
	searches []string
}

// NewHistoryStore creates an empty history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Load returns a copy of the stored queries.
func (s *HistoryStore) Load(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.searches...), nil
}

// Save replaces the stored queries.
func (s *HistoryStore) Save(_ context.Context, searches []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches = append([]string{}, searches...)
	return nil
}
