// Package page implements the ordered page composition model: a named
// sequence of component instances with dense, contiguous positions.
package page

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/appcanvas-dev/appcanvas/internal/errors"
	"github.com/appcanvas-dev/appcanvas/internal/registry"
)

// PreviewSlug is the reserved slug marking the page a preview device
// should render. Saving under this slug makes a page "current".
const PreviewSlug = "__preview__"

// Instance is a placed occurrence of a kind on a page.
type Instance struct {
	// ID is unique within the owning page.
	ID string `json:"id"`

	// KindID references the component registry.
	KindID string `json:"kindId"`

	// Params is the instance's parameter bag, merged over the kind's
	// defaults at creation time.
	Params map[string]any `json:"params"`

	// Position is the zero-based render order. Positions on one page are
	// always dense: [0, n).
	Position int `json:"position"`
}

// Page is a named, ordered sequence of component instances owned by one
// app.
type Page struct {
	ID        string      `json:"id"`
	AppKey    string      `json:"appKey"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	Instances []*Instance `json:"instances"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// New creates an empty page for the given app.
func New(appKey, name, slug string) *Page {
	now := time.Now().UTC()
	return &Page{
		ID:        uuid.NewString(),
		AppKey:    appKey,
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AppendPosition passed to AddInstance inserts at the end of the page.
const AppendPosition = -1

// AddInstance places a new instance of the given kind at position at
// (AppendPosition for the end). The instance's parameters start as a
// copy of the kind's defaults. Fails with an unknown-kind error and
// leaves the page untouched if the kind is not registered.
func (p *Page) AddInstance(reg *registry.Registry, kindID string, at int) (*Instance, error) {
	kind, err := reg.Get(kindID)
	if err != nil {
		return nil, err
	}

	inst := &Instance{
		ID:     uuid.NewString(),
		KindID: kind.ID,
		Params: kind.DefaultParams(),
	}

	if at < 0 || at > len(p.Instances) {
		at = len(p.Instances)
	}

	p.Instances = append(p.Instances, nil)
	copy(p.Instances[at+1:], p.Instances[at:])
	p.Instances[at] = inst

	p.renumber()
	p.touch()
	return inst, nil
}

// UpdateInstanceParams merges partial over the instance's parameter bag,
// overwriting key by key. Values are not checked against the kind's
// property schema; constraints there are advisory and enforced by
// editors, not by the model.
func (p *Page) UpdateInstanceParams(instanceID string, partial map[string]any) error {
	inst, _, err := p.find(instanceID)
	if err != nil {
		return err
	}

	if inst.Params == nil {
		inst.Params = make(map[string]any, len(partial))
	}
	for key, value := range partial {
		inst.Params[key] = value
	}

	p.touch()
	return nil
}

// Reorder moves an instance to newPosition, clamped to [0, n-1], and
// shifts the instances between old and new position to keep the dense
// ordering invariant.
func (p *Page) Reorder(instanceID string, newPosition int) error {
	inst, idx, err := p.find(instanceID)
	if err != nil {
		return err
	}

	if newPosition < 0 {
		newPosition = 0
	}
	if newPosition > len(p.Instances)-1 {
		newPosition = len(p.Instances) - 1
	}
	if newPosition == idx {
		return nil
	}

	p.Instances = append(p.Instances[:idx], p.Instances[idx+1:]...)
	p.Instances = append(p.Instances, nil)
	copy(p.Instances[newPosition+1:], p.Instances[newPosition:])
	p.Instances[newPosition] = inst

	p.renumber()
	p.touch()
	return nil
}

// RemoveInstance deletes an instance and renumbers the remainder.
func (p *Page) RemoveInstance(instanceID string) error {
	_, idx, err := p.find(instanceID)
	if err != nil {
		return err
	}

	p.Instances = append(p.Instances[:idx], p.Instances[idx+1:]...)
	p.renumber()
	p.touch()
	return nil
}

// Instance returns the instance with the given id.
func (p *Page) Instance(instanceID string) (*Instance, error) {
	inst, _, err := p.find(instanceID)
	return inst, err
}

// Len returns the number of instances on the page.
func (p *Page) Len() int {
	return len(p.Instances)
}

func (p *Page) find(instanceID string) (*Instance, int, error) {
	for i, inst := range p.Instances {
		if inst.ID == instanceID {
			return inst, i, nil
		}
	}
	return nil, 0, errors.New(errors.CodeInstanceNotFound).
		WithDetail(fmt.Sprintf("No instance %q on page %q", instanceID, p.ID))
}

// renumber re-flattens positions to [0, n).
func (p *Page) renumber() {
	for i, inst := range p.Instances {
		inst.Position = i
	}
}

func (p *Page) touch() {
	p.UpdatedAt = time.Now().UTC()
}
