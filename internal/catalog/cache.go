package catalog

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCacheMiss is returned by caches when no entry exists for an app.
var ErrCacheMiss = errors.New("catalog: cache miss")

// MemoryCache is an in-process Cache for single-node deployments.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	items     []Item
	fetchedAt time.Time
}

var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(ctx context.Context, appKey string) ([]Item, time.Time, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[appKey]
	if !ok {
		return nil, time.Time{}, ErrCacheMiss
	}

	items := make([]Item, len(entry.items))
	copy(items, entry.items)
	return items, entry.fetchedAt, nil
}

func (c *MemoryCache) Put(ctx context.Context, appKey string, items []Item) error {
	stored := make([]Item, len(items))
	copy(stored, items)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[appKey] = memoryEntry{items: stored, fetchedAt: time.Now().UTC()}
	return nil
}
