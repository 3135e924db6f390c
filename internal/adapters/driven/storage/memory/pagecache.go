package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/ghs/internal/core/domain"
	"github.com/custodia-labs/ghs/internal/core/ports/driven"
)

// Ensure PageCache implements the interface.
var _ driven.PageCache = (*PageCache)(nil)

type pageKey struct {
	text string
	page int
}

type cachedPage struct {
	page     domain.SearchPage
	storedAt time.Time
}

// PageCache is an in-memory driven.PageCache with a fixed time-to-live.
type PageCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	pages map[pageKey]cachedPage
}

// NewPageCache creates a page cache whose entries expire after ttl.
func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{
		ttl:   ttl,
		now:   time.Now,
		pages: make(map[pageKey]cachedPage),
	}
}

func keyFor(q domain.Query) pageKey {
	// Page 0 and page 1 both address the first page.
	return pageKey{text: q.Text, page: max(q.Page, 1)}
}

// Get returns a copy of the cached page or domain.ErrNotFound.
func (c *PageCache) Get(_ context.Context, query domain.Query) (*domain.SearchPage, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.pages[keyFor(query)]
	if !ok || c.now().Sub(entry.storedAt) > c.ttl {
		return nil, domain.ErrNotFound
	}

	page := entry.page
	page.Results.Items = append([]domain.Item(nil), entry.page.Results.Items...)
	return &page, nil
}

// Put stores a page.
func (c *PageCache) Put(_ context.Context, page *domain.SearchPage) error {
	if page == nil {
		return domain.ErrInvalidInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[keyFor(page.Query)] = cachedPage{page: *page, storedAt: c.now()}
	return nil
}

// Clear removes every cached page.
func (c *PageCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = make(map[pageKey]cachedPage)
	return nil
}

// Close is a no-op.
func (c *PageCache) Close() error {
	return nil
}
