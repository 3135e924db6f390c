package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

func searchResultPage() *domain.SearchPage {
	return &domain.SearchPage{
		Results: domain.CodeResults{
			TotalCount: 7,
			Items: []domain.Item{{
				Path:       "main.go",
				HTMLURL:    "https://github.com/acme/widgets/blob/main/main.go",
				Repository: domain.Repository{FullName: "acme/widgets"},
				TextMatches: []domain.TextMatch{{
					Fragment: "func main() {\n\tneedle()\n}",
					Matches: []domain.MatchSegment{
						{Text: "needle", Indices: [2]int{15, 21}},
					},
				}},
			}},
		},
		Pagination: &domain.Pagination{
			Next: "https://api.github.com/search/code?q=needle&page=2",
			Last: "https://api.github.com/search/code?q=needle&page=3",
		},
	}
}

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search <query>", searchCmd.Use)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "search")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasFlags(t *testing.T) {
	page := searchCmd.Flags().Lookup("page")
	require.NotNil(t, page)
	assert.Equal(t, "p", page.Shorthand)
	assert.Equal(t, "1", page.DefValue)
	assert.NotNil(t, searchCmd.Flags().Lookup("json"))
}

func TestSearchCmd_PrintsFragments(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.search.page = searchResultPage()

	out, err := execute(t, "search", "needle")

	require.NoError(t, err)
	assert.Contains(t, out, "acme/widgets main.go")
	assert.Contains(t, out, "https://github.com/acme/widgets/blob/main/main.go")
	assert.Contains(t, out, "      needle()")
	assert.Contains(t, out, "1 matches (7 total), page 1/3; next: --page 2")
	assert.Equal(t, []domain.Query{{Text: "needle"}}, ts.search.queries)
}

func TestSearchCmd_RecordsHistory(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.history.searches = []string{"older", "needle"}

	_, err := execute(t, "search", "needle")

	require.NoError(t, err)
	assert.Equal(t, []string{"needle", "older"}, ts.history.searches)
}

func TestSearchCmd_Page(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "search", "--page", "2", "needle")

	require.NoError(t, err)
	assert.Equal(t, []domain.Query{{Text: "needle", Page: 2}}, ts.search.queries)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_JSON(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.search.page = searchResultPage()

	out, err := execute(t, "search", "--json", "needle")

	require.NoError(t, err)
	assert.Contains(t, out, `"full_name": "acme/widgets"`)
	assert.Contains(t, out, `"next": "https://api.github.com/search/code?q=needle&page=2"`)
}

func TestSearchCmd_Error(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.search.err = errors.New("connection refused")

	_, err := execute(t, "search", "needle")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed: connection refused")
	assert.Empty(t, ts.history.searches)
}

func TestSearchCmd_MissingToken(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	SetServices(&Services{Search: ts.search, SearchErr: domain.ErrAuthRequired})

	_, err := execute(t, "search", "needle")

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Empty(t, ts.search.queries)
}

func TestPageSummary(t *testing.T) {
	tests := []struct {
		name     string
		page     *domain.SearchPage
		current  int
		expected string
	}{
		{
			name:     "no pagination",
			page:     &domain.SearchPage{},
			current:  1,
			expected: "0 matches (0 total), page 1",
		},
		{
			name: "last page known",
			page: &domain.SearchPage{Pagination: &domain.Pagination{
				Prev: "https://api.github.com/search/code?q=x&page=1",
				Last: "https://api.github.com/search/code?q=x&page=4",
			}},
			current:  4,
			expected: "0 matches (0 total), page 4/4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pageSummary(tt.page, tt.current))
		})
	}
}
