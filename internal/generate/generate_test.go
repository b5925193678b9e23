package generate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/appcanvas-dev/appcanvas/internal/errors"
	"github.com/appcanvas-dev/appcanvas/internal/page"
)

func quietGenerator() *Generator {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(log)
}

func TestFragmentBanner(t *testing.T) {
	out, err := Fragment("banner", map[string]any{
		"title":        `Summer "Mega" Sale`,
		"subtitle":     "",
		"image":        "",
		"height":       "200px",
		"overlayColor": "#00000055",
		"showButton":   true,
		"buttonLabel":  "Shop now",
		"buttonLink":   "/",
	})
	if err != nil {
		t.Fatalf("Fragment: %v", err)
	}
	if !strings.Contains(out, `title="Summer \"Mega\" Sale"`) {
		t.Errorf("title not escaped:\n%s", out)
	}
	if !strings.Contains(out, "showButton={ true }") {
		t.Errorf("boolean prop wrong:\n%s", out)
	}
}

func TestFragmentUnknownKindDegrades(t *testing.T) {
	out, err := Fragment("hologram", map[string]any{"x": 1})
	if err != nil {
		t.Fatalf("Fragment: %v", err)
	}
	if out != emptyContainer {
		t.Errorf("out = %q, want empty container", out)
	}
}

func TestFragmentAllRegisteredKindsExecute(t *testing.T) {
	for kindID := range fragments {
		if _, err := Fragment(kindID, map[string]any{}); err != nil {
			t.Errorf("fragment %s: %v", kindID, err)
		}
	}
}

func testPage() *page.Page {
	p := page.New("shop-1", "Home", "home")
	p.Instances = []*page.Instance{
		{ID: "i-2", KindID: "product-grid", Params: map[string]any{
			"title": "Our products", "columns": float64(2), "maxItems": float64(8),
			"showPrice": true, "showVendor": false,
		}, Position: 1},
		{ID: "i-1", KindID: "banner", Params: map[string]any{
			"title": "Hi", "subtitle": "", "image": "", "height": "200px",
			"overlayColor": "#00000055", "showButton": false,
			"buttonLabel": "Shop now", "buttonLink": "/",
		}, Position: 0},
	}
	return p
}

func TestGenerateWritesTree(t *testing.T) {
	g := quietGenerator()
	out := filepath.Join(t.TempDir(), "app")

	if err := g.Generate(testPage(), Meta{AppName: "Acme Store", AppKey: "shop-1"}, out); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, rel := range []string{"App.js", "package.json", "app.json", "babel.config.js", "src/theme.js", "src/catalog.js"} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}

	app, err := os.ReadFile(filepath.Join(out, "App.js"))
	if err != nil {
		t.Fatal(err)
	}
	src := string(app)

	// Instances are stored out of order above; output must follow
	// position, banner first.
	banner := strings.Index(src, "<Banner")
	grid := strings.Index(src, "<ProductGrid")
	if banner < 0 || grid < 0 || banner > grid {
		t.Errorf("component order wrong: banner@%d grid@%d", banner, grid)
	}

	pkg, err := os.ReadFile(filepath.Join(out, "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(pkg), `"name": "acme-store"`) {
		t.Errorf("slug missing from package.json:\n%s", pkg)
	}
}

func TestGenerateEmptyPage(t *testing.T) {
	g := quietGenerator()
	out := filepath.Join(t.TempDir(), "app")

	p := page.New("shop-1", "Blank", "blank")
	if err := g.Generate(p, Meta{AppName: "Blank", AppKey: "shop-1"}, out); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	app, err := os.ReadFile(filepath.Join(out, "App.js"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(app), "<ScrollView") {
		t.Error("empty page should still produce the scaffold screen")
	}
}

func TestGenerateMissingParentAborts(t *testing.T) {
	g := quietGenerator()
	out := filepath.Join(t.TempDir(), "does", "not", "exist", "app")

	err := g.Generate(testPage(), Meta{AppName: "Acme", AppKey: "shop-1"}, out)
	if err == nil {
		t.Fatal("expected error for missing parent directory")
	}
	if !errors.HasCode(err, errors.CodeGenerationAborted) {
		t.Errorf("err = %v, want generation aborted", err)
	}
}

func TestGenerateIdempotentExceptTimestamp(t *testing.T) {
	g := quietGenerator()
	base := t.TempDir()

	times := []time.Time{
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 11, 30, 0, 0, time.UTC),
	}
	outs := []string{filepath.Join(base, "run1"), filepath.Join(base, "run2")}

	for i, out := range outs {
		tick := times[i]
		g.now = func() time.Time { return tick }
		if err := g.Generate(testPage(), Meta{AppName: "Acme", AppKey: "shop-1"}, out); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	err := filepath.Walk(outs[0], func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(outs[0], path)

		a, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		b, err := os.ReadFile(filepath.Join(outs[1], rel))
		if err != nil {
			return err
		}

		sa := strings.ReplaceAll(string(a), times[0].Format(time.RFC3339), "")
		sb := strings.ReplaceAll(string(b), times[1].Format(time.RFC3339), "")
		if sa != sb {
			t.Errorf("%s differs beyond the timestamp", rel)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Acme Store":      "acme-store",
		"  Fancy  Shop! ": "fancy-shop",
		"shop42":          "shop42",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
