package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ghs/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/ghs/internal/core/domain"
	"github.com/custodia-labs/ghs/internal/core/ports/driven"
)

// DBFileName is the name of the cache database file.
const DBFileName = "cache.db"

// Store is a SQLite database holding cached result pages.
type Store struct {
	db   *sql.DB
	path string
	ttl  time.Duration
	now  func() time.Time
}

// NewStore opens (or creates) the cache database in dataDir.
// If dataDir is empty, defaults to <user cache dir>/ghs.
// Pages older than ttl are treated as absent.
func NewStore(dataDir string, ttl time.Duration) (*Store, error) {
	if dataDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("getting cache directory: %w", err)
		}
		dataDir = filepath.Join(base, "ghs")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)

	// WAL lets a CLI search read while the TUI writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if ttl <= 0 {
		ttl = domain.DefaultCacheTTL
	}

	s := &Store{
		db:   db,
		path: dbPath,
		ttl:  ttl,
		now:  time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// PageCache returns a PageCache interface backed by this store.
func (s *Store) PageCache() driven.PageCache {
	return &pageCache{store: s}
}

// migrate runs all pending migrations, recording each applied version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_page_cache.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Page Cache ====================

// pageCache implements driven.PageCache.
type pageCache struct {
	store *Store
}

var _ driven.PageCache = (*pageCache)(nil)

// cacheKey normalises the first page so that page 0 and page 1 share a row.
func cacheKey(q domain.Query) (string, int) {
	return q.Text, max(q.Page, 1)
}

// Get returns the cached page or domain.ErrNotFound if absent or expired.
func (c *pageCache) Get(ctx context.Context, query domain.Query) (*domain.SearchPage, error) {
	text, page := cacheKey(query)
	cutoff := c.store.now().Add(-c.store.ttl).UnixNano()

	var body string
	err := c.store.db.QueryRowContext(ctx, `
		SELECT body FROM page_cache
		WHERE query = ? AND page = ? AND stored_at >= ?
	`, text, page, cutoff).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading cached page: %w", err)
	}

	var result domain.SearchPage
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return nil, fmt.Errorf("unmarshaling cached page: %w", err)
	}
	result.Query = query
	return &result, nil
}

// Put stores a page and drops expired rows.
func (c *pageCache) Put(ctx context.Context, page *domain.SearchPage) error {
	if page == nil {
		return domain.ErrInvalidInput
	}

	body, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("marshalling page: %w", err)
	}

	text, num := cacheKey(page.Query)
	now := c.store.now()

	_, err = c.store.db.ExecContext(ctx, `
		INSERT INTO page_cache (query, page, body, stored_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(query, page) DO UPDATE SET
			body = excluded.body,
			stored_at = excluded.stored_at
	`, text, num, string(body), now.UnixNano())
	if err != nil {
		return fmt.Errorf("saving page: %w", err)
	}

	_, err = c.store.db.ExecContext(ctx,
		"DELETE FROM page_cache WHERE stored_at < ?", now.Add(-c.store.ttl).UnixNano())
	if err != nil {
		return fmt.Errorf("pruning cache: %w", err)
	}
	return nil
}

// Clear removes every cached page.
func (c *pageCache) Clear(ctx context.Context) error {
	if _, err := c.store.db.ExecContext(ctx, "DELETE FROM page_cache"); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

// Close closes the underlying store.
func (c *pageCache) Close() error {
	return c.store.Close()
}
