package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func samplePage(text string, page int) *domain.SearchPage {
	return &domain.SearchPage{
		Query: domain.Query{Text: text, Page: page},
		Results: domain.CodeResults{
			TotalCount: 1,
			Items: []domain.Item{{
				Name:       "main.go",
				Path:       "cmd/main.go",
				HTMLURL:    "https://github.com/octo/hello/blob/main/cmd/main.go",
				Repository: domain.Repository{Name: "hello", FullName: "octo/hello", Owner: domain.Owner{Login: "octo"}},
				TextMatches: []domain.TextMatch{{
					Fragment: "func main() {}",
					Matches:  []domain.MatchSegment{{Text: "main", Indices: [2]int{5, 9}}},
				}},
			}},
		},
		Pagination: &domain.Pagination{Next: "https://api.github.com/search/code?q=x&page=2"},
	}
}

func TestNewStore_CreatesSchema(t *testing.T) {
	store := setupTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
	assert.Contains(t, store.Path(), DBFileName)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir, time.Minute)
	require.NoError(t, err)
	require.NoError(t, first.PageCache().Put(context.Background(), samplePage("foo", 1)))
	require.NoError(t, first.Close())

	second, err := NewStore(dir, time.Minute)
	require.NoError(t, err)
	defer second.Close()

	_, err = second.PageCache().Get(context.Background(), domain.Query{Text: "foo", Page: 1})
	assert.NoError(t, err)
}

func TestPageCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := setupTestStore(t).PageCache()
	want := samplePage("main lang:go", 2)

	require.NoError(t, cache.Put(ctx, want))

	got, err := cache.Get(ctx, domain.Query{Text: "main lang:go", Page: 2})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPageCache_Miss(t *testing.T) {
	ctx := context.Background()
	cache := setupTestStore(t).PageCache()
	require.NoError(t, cache.Put(ctx, samplePage("foo", 1)))

	_, err := cache.Get(ctx, domain.Query{Text: "foo", Page: 2})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = cache.Get(ctx, domain.Query{Text: "bar", Page: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPageCache_FirstPageAliases(t *testing.T) {
	ctx := context.Background()
	cache := setupTestStore(t).PageCache()
	require.NoError(t, cache.Put(ctx, samplePage("foo", 0)))

	got, err := cache.Get(ctx, domain.Query{Text: "foo", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Query.Page)
}

func TestPageCache_Overwrite(t *testing.T) {
	ctx := context.Background()
	cache := setupTestStore(t).PageCache()
	page := samplePage("foo", 1)
	require.NoError(t, cache.Put(ctx, page))

	page.Results.TotalCount = 99
	require.NoError(t, cache.Put(ctx, page))

	got, err := cache.Get(ctx, domain.Query{Text: "foo", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 99, got.Results.TotalCount)
}

func TestPageCache_Expiry(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	cache := store.PageCache()

	require.NoError(t, cache.Put(ctx, samplePage("old", 1)))

	now = now.Add(2 * time.Minute)
	_, err := cache.Get(ctx, domain.Query{Text: "old", Page: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// A later Put prunes the stale row.
	require.NoError(t, cache.Put(ctx, samplePage("new", 1)))
	var rows int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM page_cache").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestPageCache_Clear(t *testing.T) {
	ctx := context.Background()
	cache := setupTestStore(t).PageCache()
	require.NoError(t, cache.Put(ctx, samplePage("foo", 1)))
	require.NoError(t, cache.Put(ctx, samplePage("foo", 2)))

	require.NoError(t, cache.Clear(ctx))

	_, err := cache.Get(ctx, domain.Query{Text: "foo", Page: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPageCache_PutNil(t *testing.T) {
	cache := setupTestStore(t).PageCache()

	assert.ErrorIs(t, cache.Put(context.Background(), nil), domain.ErrInvalidInput)
}

func TestNewStore_InvalidDirectory(t *testing.T) {
	_, err := NewStore("/dev/null/nope", time.Minute)
	assert.ErrorContains(t, err, "creating data directory")
}
