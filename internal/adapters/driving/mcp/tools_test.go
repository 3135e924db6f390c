package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

func testPage() *domain.SearchPage {
	return &domain.SearchPage{
		Results: domain.CodeResults{
			TotalCount: 42,
			Items: []domain.Item{{
				Path:       "cmd/main.go",
				HTMLURL:    "https://github.com/acme/widgets/blob/main/cmd/main.go",
				Repository: domain.Repository{FullName: "acme/widgets"},
				TextMatches: []domain.TextMatch{{
					Fragment: "x := needle()\n\treturn x",
					Matches: []domain.MatchSegment{
						{Text: "needle", Indices: [2]int{5, 11}},
					},
				}},
			}},
		},
		Pagination: &domain.Pagination{
			Next: "https://api.github.com/search/code?q=needle&page=2",
			Last: "https://api.github.com/search/code?q=needle&page=5",
		},
	}
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns highlighted segments", func(t *testing.T) {
		search := &mockSearchService{page: testPage()}
		server, err := NewServer(&Ports{Search: search})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "needle"})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, 42, output.TotalCount)
		assert.Equal(t, 1, output.Page)
		assert.Equal(t, 5, output.LastPage)
		assert.True(t, output.HasNext)
		require.Len(t, output.Results, 1)

		result := output.Results[0]
		assert.Equal(t, "acme/widgets", result.Repository)
		assert.Equal(t, "cmd/main.go", result.Path)
		require.Len(t, result.Fragments, 1)

		lines := result.Fragments[0].Lines
		require.Len(t, lines, 2)
		assert.Equal(t, []SegmentOutput{
			{Text: "x := "},
			{Text: "needle", Match: true},
			{Text: "()"},
		}, lines[0].Segments)
		assert.Equal(t, 14, lines[1].Start)
		assert.Equal(t, []SegmentOutput{{Text: "    return x"}}, lines[1].Segments)
	})

	t.Run("tab width from settings", func(t *testing.T) {
		settings := &mockSettingsService{settings: domain.AppSettings{UI: domain.UISettings{TabWidth: 2}}}
		server, err := NewServer(&Ports{Search: &mockSearchService{page: testPage()}, Settings: settings})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "needle"})

		require.NoError(t, err)
		assert.Equal(t, "  return x", output.Results[0].Fragments[0].Lines[1].Segments[0].Text)
	})

	t.Run("requests the given page", func(t *testing.T) {
		search := &mockSearchService{}
		server, err := NewServer(&Ports{Search: search})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: " needle ", Page: 3})

		require.NoError(t, err)
		require.Len(t, search.queries, 1)
		assert.Equal(t, domain.Query{Text: "needle", Page: 3}, search.queries[0])
		assert.Equal(t, 3, output.Page)
		assert.Empty(t, output.Results)
		assert.False(t, output.HasNext)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		search := &mockSearchService{err: errors.New("boom")}
		server, err := NewServer(&Ports{Search: search})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "needle"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "code search")
	})
}
