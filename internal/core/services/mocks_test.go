package services

import (
	"context"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

// mockSearcher implements driven.CodeSearcher for testing.
type mockSearcher struct {
	SearchFunc func(ctx context.Context, q domain.Query) (*domain.SearchPage, error)
	calls      []domain.Query
}

func (m *mockSearcher) Search(ctx context.Context, q domain.Query) (*domain.SearchPage, error) {
	m.calls = append(m.calls, q)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, q)
	}
	return &domain.SearchPage{}, nil
}

// mockCache implements driven.PageCache for testing.
type mockCache struct {
	GetFunc   func(ctx context.Context, q domain.Query) (*domain.SearchPage, error)
	PutFunc   func(ctx context.Context, p *domain.SearchPage) error
	ClearFunc func(ctx context.Context) error
	puts      []*domain.SearchPage
}

func (m *mockCache) Get(ctx context.Context, q domain.Query) (*domain.SearchPage, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, q)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCache) Put(ctx context.Context, p *domain.SearchPage) error {
	m.puts = append(m.puts, p)
	if m.PutFunc != nil {
		return m.PutFunc(ctx, p)
	}
	return nil
}

func (m *mockCache) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	return nil
}

func (m *mockCache) Close() error { return nil }

// mockHistoryStore implements driven.HistoryStore for testing.
type mockHistoryStore struct {
	LoadFunc func(ctx context.Context) ([]string, error)
	SaveFunc func(ctx context.Context, searches []string) error
	saved    [][]string
}

func (m *mockHistoryStore) Load(ctx context.Context) ([]string, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return nil, nil
}

func (m *mockHistoryStore) Save(ctx context.Context, searches []string) error {
	m.saved = append(m.saved, searches)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, searches)
	}
	return nil
}
