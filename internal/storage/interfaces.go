// Package storage defines the persistence contract for pages, instances,
// and durable component-kind metadata, with in-memory and PostgreSQL
// implementations in subpackages.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/appcanvas-dev/appcanvas/internal/page"
)

// ErrNotFound is returned by stores when no record matches.
var ErrNotFound = errors.New("storage: not found")

// KindRecord is the durable metadata kept for every kind referenced by a
// saved page. The generator reads display metadata from here even when
// the in-memory registry is not available at generation time.
type KindRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PageStore persists pages and their instances. Each call is assumed
// transactional on its own; multi-call transactions are not managed here.
type PageStore interface {
	// CreatePage inserts a new page record. Pages are never updated in
	// place; every save produces a new record.
	CreatePage(ctx context.Context, p *page.Page) error

	// AttachInstances stores the ordered instance list for a page.
	AttachInstances(ctx context.Context, pageID string, instances []*page.Instance) error

	// UpsertKind creates or refreshes a durable kind record by kind id.
	UpsertKind(ctx context.Context, rec KindRecord) error

	// GetKind returns the durable record for a kind id.
	GetKind(ctx context.Context, kindID string) (KindRecord, error)

	// GetPage returns one page, instances included, by page id.
	GetPage(ctx context.Context, pageID string) (*page.Page, error)

	// GetPageBySlug returns the app's page with the given slug. When
	// multiple saves share a slug the most recently updated one wins.
	GetPageBySlug(ctx context.Context, appKey, slug string) (*page.Page, error)

	// LatestPage returns the app's most recently updated page.
	LatestPage(ctx context.Context, appKey string) (*page.Page, error)

	// FindPagesByApp returns the app's pages, most recently updated
	// first, instances included.
	FindPagesByApp(ctx context.Context, appKey string) ([]*page.Page, error)
}
