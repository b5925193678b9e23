package registry

import (
	"testing"

	"github.com/appcanvas-dev/appcanvas/internal/errors"
)

func kindFixture() Kind {
	return Kind{
		ID:       "banner",
		Name:     "Banner",
		Category: "content",
		Schema: []Property{
			{Name: "title", Label: "Title", Type: PropertyText},
			{Name: "height", Label: "Height", Type: PropertyText},
		},
		Defaults: map[string]any{
			"title":  "Welcome to our store",
			"height": "200px",
		},
	}
}

func TestNewValidKind(t *testing.T) {
	reg, err := New(kindFixture())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !reg.Has("banner") {
		t.Error("registry should contain banner")
	}
}

func TestNewRejectsSchemaDefaultMismatch(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Kind)
	}{
		{
			name: "default without schema entry",
			mutate: func(k *Kind) {
				k.Defaults["orphan"] = "x"
			},
		},
		{
			name: "schema entry without default",
			mutate: func(k *Kind) {
				k.Schema = append(k.Schema, Property{Name: "extra", Type: PropertyText})
			},
		},
		{
			name: "duplicate property",
			mutate: func(k *Kind) {
				k.Schema = append(k.Schema, Property{Name: "title", Type: PropertyText})
			},
		},
		{
			name: "empty id",
			mutate: func(k *Kind) {
				k.ID = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := kindFixture()
			tt.mutate(&k)
			if _, err := New(k); err == nil {
				t.Fatal("expected invalid-kind error")
			} else if !errors.HasCode(err, errors.CodeInvalidKind) {
				t.Errorf("error = %v, want E203", err)
			}
		})
	}
}

func TestNewRejectsDuplicateKindIDs(t *testing.T) {
	if _, err := New(kindFixture(), kindFixture()); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestGet(t *testing.T) {
	reg := MustNew(kindFixture())

	k, err := reg.Get("banner")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if k.Name != "Banner" {
		t.Errorf("Name = %q", k.Name)
	}

	_, err = reg.Get("carousel")
	if err == nil {
		t.Fatal("expected unknown-kind error")
	}
	if !errors.HasCode(err, errors.CodeUnknownKind) {
		t.Errorf("error = %v, want E201", err)
	}
}

func TestListOrderAndIsolation(t *testing.T) {
	a := kindFixture()
	b := kindFixture()
	b.ID = "spacer"
	b.Name = "Spacer"
	reg := MustNew(a, b)

	list := reg.List()
	if len(list) != 2 || list[0].ID != "banner" || list[1].ID != "spacer" {
		t.Fatalf("List order wrong: %v", list)
	}

	// Mutating the returned slice must not affect the registry.
	list[0] = Kind{ID: "mutated"}
	if got := reg.List()[0].ID; got != "banner" {
		t.Errorf("registry mutated through List: %q", got)
	}
}

func TestDefaultParamsCopies(t *testing.T) {
	k := kindFixture()
	params := k.DefaultParams()
	params["title"] = "changed"

	if k.Defaults["title"] != "Welcome to our store" {
		t.Error("DefaultParams leaked the shared defaults map")
	}
}

func TestResolve(t *testing.T) {
	a := kindFixture()
	b := kindFixture()
	b.ID = "product-grid"
	b.Name = "Product Grid"
	b.Category = "commerce"
	reg := MustNew(a, b)

	if k, ok := reg.Resolve("commerce", "Product Grid"); !ok || k.ID != "product-grid" {
		t.Errorf("exact resolve failed: %v %v", k, ok)
	}

	// Category changed since the instance was stored; name still resolves.
	if k, ok := reg.Resolve("engagement", "Product Grid"); !ok || k.ID != "product-grid" {
		t.Errorf("name-only resolve failed: %v %v", k, ok)
	}

	if _, ok := reg.Resolve("content", "Gone"); ok {
		t.Error("resolve should fail for unknown names")
	}
}

func TestValidateParams(t *testing.T) {
	k := Kind{
		ID:       "product-grid",
		Name:     "Product Grid",
		Category: "commerce",
		Schema: []Property{
			{Name: "title", Label: "Title", Type: PropertyText},
			{Name: "columns", Label: "Columns", Type: PropertyNumber, Min: Bound(1), Max: Bound(4)},
			{Name: "showPrice", Label: "Show price", Type: PropertyBoolean},
			{Name: "sort", Label: "Sort", Type: PropertySelect, Options: []string{"manual", "price"}},
		},
		Defaults: map[string]any{
			"title": "Our products", "columns": float64(2),
			"showPrice": true, "sort": "manual",
		},
	}

	if problems := k.ValidateParams(k.DefaultParams()); len(problems) != 0 {
		t.Fatalf("defaults should validate cleanly: %v", problems)
	}

	problems := k.ValidateParams(map[string]any{
		"title":     42,
		"columns":   float64(9),
		"showPrice": "yes",
		"sort":      "random",
		"ghost":     true,
	})
	if len(problems) != 5 {
		t.Fatalf("problems = %d (%v), want 5", len(problems), problems)
	}
}
