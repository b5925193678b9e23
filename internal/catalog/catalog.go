// Package catalog supplies the product catalog shown in previews: a
// storefront source, a freshness-windowed cache (in-process or Redis),
// a deterministic fallback, and a cron-driven background refresh.
package catalog

import (
	"context"
	"time"
)

// Item is one catalog entry as shown in the preview and generated app.
type Item struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	ImageURL       string   `json:"imageUrl"`
	Price          float64  `json:"price"`
	CompareAtPrice *float64 `json:"compareAtPrice,omitempty"`
	Vendor         string   `json:"vendor"`
}

// Source fetches catalog items from the storefront collaborator. It may
// fail or return an empty list; callers must tolerate both.
type Source interface {
	FetchCatalogItems(ctx context.Context, appKey string) ([]Item, error)
}

// Cache stores fetched catalog items per app alongside their fetch time,
// so freshness can be judged against a TTL.
type Cache interface {
	// Get returns the cached items and when they were fetched.
	// ErrCacheMiss signals an absent entry.
	Get(ctx context.Context, appKey string) ([]Item, time.Time, error)

	// Put stores items for an app, stamped with the current time.
	Put(ctx context.Context, appKey string, items []Item) error
}
