package kinds

import "testing"

// Every shipped kind must satisfy the defaults-schema bijection; Default
// panics otherwise, so constructing it is the test.
func TestDefaultRegistryIsValid(t *testing.T) {
	reg := Default()

	if len(reg.List()) != len(All()) {
		t.Fatalf("registry has %d kinds, palette has %d", len(reg.List()), len(All()))
	}
}

func TestPaletteIDsAreStable(t *testing.T) {
	want := []string{
		"announcement-bar",
		"banner",
		"image-slider",
		"text-block",
		"button-row",
		"product-grid",
		"featured-collection",
		"countdown",
		"video",
		"spacer",
	}

	all := All()
	if len(all) != len(want) {
		t.Fatalf("palette size = %d, want %d", len(all), len(want))
	}
	for i, k := range all {
		if k.ID != want[i] {
			t.Errorf("palette[%d] = %q, want %q", i, k.ID, want[i])
		}
	}
}

func TestBannerDefaults(t *testing.T) {
	k := Banner()
	if k.Defaults["title"] != "Welcome to our store" {
		t.Errorf("title default = %v", k.Defaults["title"])
	}
	if k.Defaults["height"] != "200px" {
		t.Errorf("height default = %v", k.Defaults["height"])
	}
}

func TestVisibilityConditionsReferenceRealProperties(t *testing.T) {
	for _, k := range All() {
		declared := map[string]bool{}
		for _, p := range k.Schema {
			declared[p.Name] = true
		}
		for _, p := range k.Schema {
			if p.VisibleWhen == nil {
				continue
			}
			if !declared[p.VisibleWhen.DependsOn] {
				t.Errorf("kind %s: property %s depends on undeclared %s",
					k.ID, p.Name, p.VisibleWhen.DependsOn)
			}
		}
	}
}
