package mcp

import (
	"context"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	page    *domain.SearchPage
	err     error
	queries []domain.Query
}

func (m *mockSearchService) Search(_ context.Context, query domain.Query) (*domain.SearchPage, error) {
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	if m.page == nil {
		return &domain.SearchPage{Query: query}, nil
	}
	return m.page, nil
}

func (m *mockSearchService) ClearCache(_ context.Context) error {
	return nil
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	searches []string
	err      error
}

func (m *mockHistoryService) Load(_ context.Context) ([]string, error) {
	return m.searches, m.err
}

func (m *mockHistoryService) Save(_ context.Context, searches []string) error {
	m.searches = searches
	return m.err
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	m.searches = nil
	return m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
}

func (m *mockSettingsService) Get() domain.AppSettings  { return m.settings }
func (m *mockSettingsService) Set(_ string, _ any) error { return nil }
func (m *mockSettingsService) Reload() error             { return nil }
func (m *mockSettingsService) Path() string              { return "" }
