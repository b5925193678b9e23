package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Resolver produces the catalog items for a payload: fresh cache first,
// then a live storefront fetch, then the deterministic fallback. It never
// fails and never returns an empty list.
type Resolver struct {
	cache  Cache
	source Source
	ttl    time.Duration
	log    *logrus.Logger

	mu   sync.Mutex
	apps map[string]bool
}

// NewResolver creates a Resolver with the given freshness window.
func NewResolver(cache Cache, source Source, ttl time.Duration, log *logrus.Logger) *Resolver {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if log == nil {
		log = logrus.New()
	}
	return &Resolver{
		cache:  cache,
		source: source,
		ttl:    ttl,
		log:    log,
		apps:   make(map[string]bool),
	}
}

// Resolve returns catalog items for an app. Degradation is silent by
// design: a storefront outage shows placeholder products, never an error.
func (r *Resolver) Resolve(ctx context.Context, appKey string) []Item {
	r.remember(appKey)

	items, fetchedAt, err := r.cache.Get(ctx, appKey)
	if err == nil && len(items) > 0 && time.Since(fetchedAt) < r.ttl {
		return items
	}

	if items, err := r.Refresh(ctx, appKey); err == nil && len(items) > 0 {
		return items
	}

	r.log.WithField("app", appKey).Warn("catalog unavailable, serving fallback items")
	return FallbackItems()
}

// Refresh fetches live items from the storefront and caches them.
func (r *Resolver) Refresh(ctx context.Context, appKey string) ([]Item, error) {
	items, err := r.source.FetchCatalogItems(ctx, appKey)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	if err := r.cache.Put(ctx, appKey, items); err != nil {
		// A broken cache only costs the next request a refetch.
		r.log.WithField("app", appKey).WithError(err).Warn("catalog cache write failed")
	}
	return items, nil
}

// KnownApps returns every app key this resolver has served, sorted. The
// background syncer uses it as its refresh set.
func (r *Resolver) KnownApps() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.apps))
	for key := range r.apps {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (r *Resolver) remember(appKey string) {
	r.mu.Lock()
	r.apps[appKey] = true
	r.mu.Unlock()
}
