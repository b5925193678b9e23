package page

import (
	"math/rand"
	"testing"

	"github.com/appcanvas-dev/appcanvas/internal/errors"
	"github.com/appcanvas-dev/appcanvas/internal/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	return registry.MustNew(
		registry.Kind{
			ID:       "banner",
			Name:     "Banner",
			Category: "content",
			Schema: []registry.Property{
				{Name: "title", Type: registry.PropertyText},
				{Name: "height", Type: registry.PropertyText},
			},
			Defaults: map[string]any{
				"title":  "Welcome to our store",
				"height": "200px",
			},
		},
		registry.Kind{
			ID:       "spacer",
			Name:     "Spacer",
			Category: "layout",
			Schema: []registry.Property{
				{Name: "height", Type: registry.PropertyNumber},
			},
			Defaults: map[string]any{"height": float64(24)},
		},
	)
}

func checkDense(t *testing.T, p *Page) {
	t.Helper()
	for i, inst := range p.Instances {
		if inst.Position != i {
			t.Fatalf("position invariant broken: index %d has position %d", i, inst.Position)
		}
	}
}

func TestAddInstanceCopiesDefaults(t *testing.T) {
	reg := testRegistry(t)
	p := New("shop-1", "Home", PreviewSlug)

	inst, err := p.AddInstance(reg, "banner", AppendPosition)
	if err != nil {
		t.Fatalf("AddInstance: %v", err)
	}

	if inst.Params["title"] != "Welcome to our store" {
		t.Errorf("title = %v", inst.Params["title"])
	}
	if inst.Params["height"] != "200px" {
		t.Errorf("height = %v", inst.Params["height"])
	}
	if inst.Position != 0 {
		t.Errorf("position = %d, want 0", inst.Position)
	}
}

func TestAddInstanceUnknownKind(t *testing.T) {
	reg := testRegistry(t)
	p := New("shop-1", "Home", PreviewSlug)
	if _, err := p.AddInstance(reg, "banner", AppendPosition); err != nil {
		t.Fatal(err)
	}

	_, err := p.AddInstance(reg, "carousel", AppendPosition)
	if err == nil {
		t.Fatal("expected unknown-kind error")
	}
	if !errors.HasCode(err, errors.CodeUnknownKind) {
		t.Errorf("error = %v, want E201", err)
	}
	if p.Len() != 1 {
		t.Errorf("page changed on failed add: %d instances", p.Len())
	}
	checkDense(t, p)
}

func TestAddInstanceAtPosition(t *testing.T) {
	reg := testRegistry(t)
	p := New("shop-1", "Home", PreviewSlug)

	first, _ := p.AddInstance(reg, "banner", AppendPosition)
	second, _ := p.AddInstance(reg, "spacer", AppendPosition)

	// Insert between the two.
	mid, err := p.AddInstance(reg, "banner", 1)
	if err != nil {
		t.Fatal(err)
	}

	wantOrder := []string{first.ID, mid.ID, second.ID}
	for i, want := range wantOrder {
		if p.Instances[i].ID != want {
			t.Errorf("instance[%d] = %s, want %s", i, p.Instances[i].ID, want)
		}
	}
	checkDense(t, p)
}

func TestUpdateInstanceParamsMergesShallowly(t *testing.T) {
	reg := testRegistry(t)
	p := New("shop-1", "Home", PreviewSlug)
	inst, _ := p.AddInstance(reg, "banner", AppendPosition)

	if err := p.UpdateInstanceParams(inst.ID, map[string]any{"title": "Sale"}); err != nil {
		t.Fatalf("UpdateInstanceParams: %v", err)
	}

	if inst.Params["title"] != "Sale" {
		t.Errorf("title = %v, want Sale", inst.Params["title"])
	}
	if inst.Params["height"] != "200px" {
		t.Errorf("height = %v, want unchanged 200px", inst.Params["height"])
	}
}

func TestUpdateInstanceParamsNotFound(t *testing.T) {
	p := New("shop-1", "Home", PreviewSlug)
	err := p.UpdateInstanceParams("missing", map[string]any{"title": "x"})
	if !errors.HasCode(err, errors.CodeInstanceNotFound) {
		t.Errorf("error = %v, want E202", err)
	}
}

func TestReorderMovesAndRenumbers(t *testing.T) {
	reg := testRegistry(t)
	p := New("shop-1", "Home", PreviewSlug)

	a, _ := p.AddInstance(reg, "banner", AppendPosition)
	b, _ := p.AddInstance(reg, "spacer", AppendPosition)
	c, _ := p.AddInstance(reg, "banner", AppendPosition)

	// [a b c], move c to the front -> [c a b].
	if err := p.Reorder(c.ID, 0); err != nil {
		t.Fatal(err)
	}

	wantOrder := []string{c.ID, a.ID, b.ID}
	for i, want := range wantOrder {
		if p.Instances[i].ID != want {
			t.Errorf("instance[%d] = %s, want %s", i, p.Instances[i].ID, want)
		}
	}
	checkDense(t, p)
}

func TestReorderClamps(t *testing.T) {
	reg := testRegistry(t)
	p := New("shop-1", "Home", PreviewSlug)
	a, _ := p.AddInstance(reg, "banner", AppendPosition)
	b, _ := p.AddInstance(reg, "spacer", AppendPosition)

	if err := p.Reorder(a.ID, 99); err != nil {
		t.Fatal(err)
	}
	if p.Instances[1].ID != a.ID || p.Instances[0].ID != b.ID {
		t.Error("clamp to last position failed")
	}

	if err := p.Reorder(a.ID, -5); err != nil {
		t.Fatal(err)
	}
	if p.Instances[0].ID != a.ID {
		t.Error("clamp to first position failed")
	}
	checkDense(t, p)
}

func TestReorderNotFound(t *testing.T) {
	p := New("shop-1", "Home", PreviewSlug)
	if err := p.Reorder("missing", 0); !errors.HasCode(err, errors.CodeInstanceNotFound) {
		t.Errorf("error = %v, want E202", err)
	}
}

func TestRemoveInstance(t *testing.T) {
	reg := testRegistry(t)
	p := New("shop-1", "Home", PreviewSlug)
	a, _ := p.AddInstance(reg, "banner", AppendPosition)
	b, _ := p.AddInstance(reg, "spacer", AppendPosition)
	c, _ := p.AddInstance(reg, "banner", AppendPosition)

	if err := p.RemoveInstance(b.ID); err != nil {
		t.Fatal(err)
	}

	if p.Len() != 2 || p.Instances[0].ID != a.ID || p.Instances[1].ID != c.ID {
		t.Error("remove left wrong instances")
	}
	checkDense(t, p)

	if err := p.RemoveInstance(b.ID); !errors.HasCode(err, errors.CodeInstanceNotFound) {
		t.Errorf("second remove = %v, want E202", err)
	}
}

// Random mutation sequences must never break the dense-position invariant.
func TestPositionInvariantUnderRandomOps(t *testing.T) {
	reg := testRegistry(t)
	p := New("shop-1", "Home", PreviewSlug)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		switch op := rng.Intn(3); {
		case op == 0 || p.Len() == 0:
			kind := "banner"
			if rng.Intn(2) == 0 {
				kind = "spacer"
			}
			at := AppendPosition
			if p.Len() > 0 && rng.Intn(2) == 0 {
				at = rng.Intn(p.Len() + 1)
			}
			if _, err := p.AddInstance(reg, kind, at); err != nil {
				t.Fatal(err)
			}
		case op == 1:
			victim := p.Instances[rng.Intn(p.Len())]
			if err := p.RemoveInstance(victim.ID); err != nil {
				t.Fatal(err)
			}
		default:
			target := p.Instances[rng.Intn(p.Len())]
			if err := p.Reorder(target.ID, rng.Intn(p.Len()+2)-1); err != nil {
				t.Fatal(err)
			}
		}
		checkDense(t, p)
	}
}
