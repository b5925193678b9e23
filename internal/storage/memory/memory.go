// Package memory provides an in-process PageStore for development and
// tests. Pages do not survive a restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/appcanvas-dev/appcanvas/internal/page"
	"github.com/appcanvas-dev/appcanvas/internal/storage"
)

// Store implements storage.PageStore in memory.
type Store struct {
	mu    sync.RWMutex
	pages map[string]*page.Page      // page id -> page
	kinds map[string]storage.KindRecord
}

var _ storage.PageStore = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		pages: make(map[string]*page.Page),
		kinds: make(map[string]storage.KindRecord),
	}
}

func (s *Store) CreatePage(ctx context.Context, p *page.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[p.ID] = clonePage(p)
	return nil
}

func (s *Store) AttachInstances(ctx context.Context, pageID string, instances []*page.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pages[pageID]
	if !ok {
		return storage.ErrNotFound
	}
	p.Instances = cloneInstances(instances)
	return nil
}

func (s *Store) UpsertKind(ctx context.Context, rec storage.KindRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kinds[rec.ID] = rec
	return nil
}

func (s *Store) GetKind(ctx context.Context, kindID string) (storage.KindRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.kinds[kindID]
	if !ok {
		return storage.KindRecord{}, storage.ErrNotFound
	}
	return rec, nil
}

func (s *Store) GetPage(ctx context.Context, pageID string) (*page.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pages[pageID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clonePage(p), nil
}

func (s *Store) GetPageBySlug(ctx context.Context, appKey, slug string) (*page.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var newest *page.Page
	for _, p := range s.pages {
		if p.AppKey != appKey || p.Slug != slug {
			continue
		}
		if newest == nil || p.UpdatedAt.After(newest.UpdatedAt) {
			newest = p
		}
	}
	if newest == nil {
		return nil, storage.ErrNotFound
	}
	return clonePage(newest), nil
}

func (s *Store) LatestPage(ctx context.Context, appKey string) (*page.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var newest *page.Page
	for _, p := range s.pages {
		if p.AppKey != appKey {
			continue
		}
		if newest == nil || p.UpdatedAt.After(newest.UpdatedAt) {
			newest = p
		}
	}
	if newest == nil {
		return nil, storage.ErrNotFound
	}
	return clonePage(newest), nil
}

func (s *Store) FindPagesByApp(ctx context.Context, appKey string) ([]*page.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*page.Page
	for _, p := range s.pages {
		if p.AppKey == appKey {
			out = append(out, clonePage(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// clonePage copies a page so callers cannot mutate stored state.
func clonePage(p *page.Page) *page.Page {
	cp := *p
	cp.Instances = cloneInstances(p.Instances)
	return &cp
}

func cloneInstances(instances []*page.Instance) []*page.Instance {
	out := make([]*page.Instance, 0, len(instances))
	for _, inst := range instances {
		ci := *inst
		ci.Params = make(map[string]any, len(inst.Params))
		for k, v := range inst.Params {
			ci.Params[k] = v
		}
		out = append(out, &ci)
	}
	return out
}
