package storage

import (
	"context"
	"sync"
	"time"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

type catalogEntry struct {
	items    []entities.Item
	storedAt time.Time
}

// CatalogCache provides in-memory storage for catalogs with a TTL. It is the
// cache used when redis is not configured.
type CatalogCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[entities.ModuleKey]catalogEntry
}

// NewCatalogCache creates a cache; ttl <= 0 keeps entries forever.
func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[entities.ModuleKey]catalogEntry),
	}
}

// Get returns a copy of the cached catalog if it has not expired.
func (c *CatalogCache) Get(_ context.Context, module entities.ModuleKey) ([]entities.Item, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[module]
	if !ok {
		return nil, false, nil
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		return nil, false, nil
	}

	out := make([]entities.Item, len(e.items))
	copy(out, e.items)
	return out, true, nil
}

// Set stores a copy of items.
func (c *CatalogCache) Set(_ context.Context, module entities.ModuleKey, items []entities.Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cp := make([]entities.Item, len(items))
	copy(cp, items)
	c.entries[module] = catalogEntry{items: cp, storedAt: c.now()}
	return nil
}
