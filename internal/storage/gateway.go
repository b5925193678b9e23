package storage

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/appcanvas-dev/appcanvas/internal/errors"
	"github.com/appcanvas-dev/appcanvas/internal/page"
	"github.com/appcanvas-dev/appcanvas/internal/registry"
)

// Gateway wraps a PageStore with the builder's save/load semantics:
// saving always creates a new page (template-library model) and keeps a
// durable kind record for every referenced kind. Store failures surface
// as persistence errors with no automatic retry.
type Gateway struct {
	store PageStore
	reg   *registry.Registry
}

// NewGateway creates a Gateway over the given store and registry.
func NewGateway(store PageStore, reg *registry.Registry) *Gateway {
	return &Gateway{store: store, reg: reg}
}

// SavePage persists a new page named name under the given slug, with the
// given ordered instances. Kind metadata for every referenced kind is
// upserted first so later generation runs can resolve display names
// without the live registry.
func (g *Gateway) SavePage(ctx context.Context, appKey, name, slug string, instances []*page.Instance) (*page.Page, error) {
	p := page.New(appKey, name, slug)
	for i, inst := range instances {
		inst.Position = i
		p.Instances = append(p.Instances, inst)
	}

	seen := make(map[string]bool)
	for _, inst := range p.Instances {
		if seen[inst.KindID] {
			continue
		}
		seen[inst.KindID] = true

		rec := KindRecord{ID: inst.KindID, UpdatedAt: time.Now().UTC()}
		if kind, err := g.reg.Get(inst.KindID); err == nil {
			rec.Name = kind.Name
			rec.Category = kind.Category
		}
		if err := g.store.UpsertKind(ctx, rec); err != nil {
			return nil, errors.New(errors.CodePersistenceFailed).Wrap(err)
		}
	}

	if err := g.store.CreatePage(ctx, p); err != nil {
		return nil, errors.New(errors.CodePersistenceFailed).Wrap(err)
	}
	if err := g.store.AttachInstances(ctx, p.ID, p.Instances); err != nil {
		return nil, errors.New(errors.CodePersistenceFailed).Wrap(err)
	}

	return p, nil
}

// LoadPage returns a saved page by id.
func (g *Gateway) LoadPage(ctx context.Context, pageID string) (*page.Page, error) {
	p, err := g.store.GetPage(ctx, pageID)
	if err != nil {
		return nil, wrapLoadErr(err)
	}
	return p, nil
}

// LoadPageBySlug returns the app's page with the given slug.
func (g *Gateway) LoadPageBySlug(ctx context.Context, appKey, slug string) (*page.Page, error) {
	p, err := g.store.GetPageBySlug(ctx, appKey, slug)
	if err != nil {
		return nil, wrapLoadErr(err)
	}
	return p, nil
}

// LoadLatestPage returns the app's most recently updated page.
func (g *Gateway) LoadLatestPage(ctx context.Context, appKey string) (*page.Page, error) {
	p, err := g.store.LatestPage(ctx, appKey)
	if err != nil {
		return nil, wrapLoadErr(err)
	}
	return p, nil
}

// LoadCurrentPage resolves the page a preview device should render: the
// reserved preview slug first, then the most recently updated page.
func (g *Gateway) LoadCurrentPage(ctx context.Context, appKey string) (*page.Page, error) {
	p, err := g.store.GetPageBySlug(ctx, appKey, page.PreviewSlug)
	if err == nil {
		return p, nil
	}
	if !stderrors.Is(err, ErrNotFound) {
		return nil, errors.New(errors.CodePersistenceFailed).Wrap(err)
	}
	return g.LoadLatestPage(ctx, appKey)
}

// ListPages returns the app's saved pages, most recent first.
func (g *Gateway) ListPages(ctx context.Context, appKey string) ([]*page.Page, error) {
	pages, err := g.store.FindPagesByApp(ctx, appKey)
	if err != nil {
		return nil, errors.New(errors.CodePersistenceFailed).Wrap(err)
	}
	return pages, nil
}

// KindMetadata returns the durable record for a kind id.
func (g *Gateway) KindMetadata(ctx context.Context, kindID string) (KindRecord, error) {
	rec, err := g.store.GetKind(ctx, kindID)
	if err != nil {
		return KindRecord{}, wrapLoadErr(err)
	}
	return rec, nil
}

// wrapLoadErr keeps not-found errors distinguishable from real store
// failures.
func wrapLoadErr(err error) error {
	if errors.HasCode(err, errors.CodePageNotFound) {
		return err
	}
	if stderrors.Is(err, ErrNotFound) {
		return errors.New(errors.CodePageNotFound)
	}
	return errors.New(errors.CodePersistenceFailed).Wrap(err)
}
