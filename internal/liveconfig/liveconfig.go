// Package liveconfig assembles the payload a preview device polls: the
// current page's instances plus catalog data, regenerated on every fetch.
package liveconfig

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/appcanvas-dev/appcanvas/internal/catalog"
	"github.com/appcanvas-dev/appcanvas/internal/errors"
	"github.com/appcanvas-dev/appcanvas/internal/registry"
	"github.com/appcanvas-dev/appcanvas/internal/storage"
)

const tracerName = "appcanvas/liveconfig"

// InstancePayload is one placed component in the wire payload.
type InstancePayload struct {
	InstanceID string         `json:"instanceId"`
	KindID     string         `json:"kindId"`
	KindType   string         `json:"kindType"`
	Params     map[string]any `json:"params"`
	Position   int            `json:"position"`
}

// Payload is the live configuration snapshot. It carries no identity of
// its own; every fetch rebuilds it from current state.
type Payload struct {
	HasApp       bool              `json:"hasApp"`
	PageID       string            `json:"pageId,omitempty"`
	PageName     string            `json:"pageName,omitempty"`
	Instances    []InstancePayload `json:"instances"`
	CatalogItems []catalog.Item    `json:"catalogItems"`
	LastUpdated  *time.Time        `json:"lastUpdated,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// MarshalJSON keeps the two payload shapes distinct: without an app the
// instances key is absent entirely, with one it is always an array,
// never null, even for a page with nothing placed yet.
func (p Payload) MarshalJSON() ([]byte, error) {
	if !p.HasApp {
		return json.Marshal(struct {
			HasApp       bool           `json:"hasApp"`
			CatalogItems []catalog.Item `json:"catalogItems,omitempty"`
			Error        string         `json:"error,omitempty"`
		}{p.HasApp, p.CatalogItems, p.Error})
	}

	if p.Instances == nil {
		p.Instances = []InstancePayload{}
	}
	if p.CatalogItems == nil {
		p.CatalogItems = []catalog.Item{}
	}

	type alias Payload
	return json.Marshal(alias(p))
}

// Assembler builds payloads from the page store, the component registry,
// and the catalog resolver.
type Assembler struct {
	gateway  *storage.Gateway
	resolver *catalog.Resolver
	reg      *registry.Registry
	tracer   trace.Tracer
}

// NewAssembler creates an Assembler.
func NewAssembler(gateway *storage.Gateway, resolver *catalog.Resolver, reg *registry.Registry) *Assembler {
	return &Assembler{
		gateway:  gateway,
		resolver: resolver,
		reg:      reg,
		tracer:   otel.Tracer(tracerName),
	}
}

// Assemble builds the current payload for an app. Catalog failures are
// absorbed by the resolver's fallback; a missing app yields hasApp=false
// with the catalog still attached. Only store failures return an error.
func (a *Assembler) Assemble(ctx context.Context, appKey string) (Payload, error) {
	ctx, span := a.tracer.Start(ctx, "liveconfig.Assemble",
		trace.WithAttributes(attribute.String("app.key", appKey)))
	defer span.End()

	items := a.resolver.Resolve(ctx, appKey)

	current, err := a.gateway.LoadCurrentPage(ctx, appKey)
	if err != nil {
		if errors.HasCode(err, errors.CodePageNotFound) {
			return Payload{HasApp: false, CatalogItems: items}, nil
		}
		span.RecordError(err)
		return Payload{}, err
	}

	payload := Payload{
		HasApp:       true,
		PageID:       current.ID,
		PageName:     current.Name,
		Instances:    make([]InstancePayload, 0, len(current.Instances)),
		CatalogItems: items,
		LastUpdated:  &current.UpdatedAt,
	}

	for _, inst := range current.Instances {
		payload.Instances = append(payload.Instances, InstancePayload{
			InstanceID: inst.ID,
			KindID:     a.displayKindID(ctx, inst.KindID),
			KindType:   a.kindType(ctx, inst.KindID),
			Params:     inst.Params,
			Position:   inst.Position,
		})
	}

	span.SetAttributes(attribute.Int("page.instances", len(payload.Instances)))
	return payload, nil
}

// displayKindID re-resolves a stored kind id against the current
// registry by durable (category, name) metadata. Instances saved before
// a kind was renamed or re-categorized still map to a live palette id;
// when nothing matches, the stored id is the best remaining answer.
func (a *Assembler) displayKindID(ctx context.Context, storedID string) string {
	rec, err := a.gateway.KindMetadata(ctx, storedID)
	if err != nil {
		return storedID
	}
	if kind, ok := a.reg.Resolve(rec.Category, rec.Name); ok {
		return kind.ID
	}
	return storedID
}

// kindType returns the palette category for a stored kind id.
func (a *Assembler) kindType(ctx context.Context, storedID string) string {
	if kind, err := a.reg.Get(storedID); err == nil {
		return kind.Category
	}
	if rec, err := a.gateway.KindMetadata(ctx, storedID); err == nil {
		return rec.Category
	}
	return ""
}
