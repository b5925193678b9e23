package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/appcanvas-dev/appcanvas/internal/catalog"
	"github.com/appcanvas-dev/appcanvas/internal/config"
	"github.com/appcanvas-dev/appcanvas/internal/liveconfig"
	"github.com/appcanvas-dev/appcanvas/internal/registry/kinds"
	"github.com/appcanvas-dev/appcanvas/internal/storage"
	"github.com/appcanvas-dev/appcanvas/internal/storage/memory"
)

type downSource struct{}

func (downSource) FetchCatalogItems(ctx context.Context, appKey string) ([]catalog.Item, error) {
	return nil, fmt.Errorf("storefront down")
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	reg := kinds.Default()
	gw := storage.NewGateway(memory.New(), reg)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	resolver := catalog.NewResolver(catalog.NewMemoryCache(), downSource{}, 30*time.Minute, log)
	asm := liveconfig.NewAssembler(gw, resolver, reg)

	return New(config.New(), asm, gw, reg, log)
}

func postForm(t *testing.T, h http.Handler, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/templates", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBuilder(t *testing.T, rr *httptest.ResponseRecorder) builderResponse {
	t.Helper()
	var resp builderResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rr.Body.String())
	}
	return resp
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestConfigNoApp(t *testing.T) {
	h := newTestServer(t).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/config/ghost", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if cc := rr.Header().Get("Cache-Control"); !strings.Contains(cc, "no-cache") {
		t.Errorf("Cache-Control = %q", cc)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}

	var payload liveconfig.Payload
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.HasApp {
		t.Error("hasApp should be false")
	}
	if len(payload.CatalogItems) == 0 {
		t.Error("fallback catalog should be present even when no app exists")
	}
	if strings.Contains(rr.Body.String(), `"instances"`) {
		t.Error("instances key must be omitted when hasApp is false")
	}
}

func TestSaveThenConfig(t *testing.T) {
	h := newTestServer(t).Handler()

	instances := `[
		{"id":"i-1","kindId":"banner","params":{"title":"Hi"}},
		{"id":"i-2","kindId":"product-grid","params":{"columns":2}}
	]`
	rr := postForm(t, h, url.Values{
		"intent":       {"save-template"},
		"appKey":       {"shop-1"},
		"templateName": {"Home"},
		"instances":    {instances},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("save status = %d: %s", rr.Code, rr.Body.String())
	}
	resp := decodeBuilder(t, rr)
	if !resp.Success {
		t.Fatalf("save failed: %s", resp.Message)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/config/shop-1", nil))

	var payload liveconfig.Payload
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if !payload.HasApp {
		t.Fatal("hasApp should be true after save")
	}
	if len(payload.Instances) != 2 {
		t.Fatalf("instances = %d, want 2", len(payload.Instances))
	}
	if payload.Instances[0].KindID != "banner" || payload.Instances[1].Position != 1 {
		t.Errorf("unexpected instance order: %+v", payload.Instances)
	}
	if payload.PageName != "Home" {
		t.Errorf("pageName = %q", payload.PageName)
	}
}

func TestSaveValidation(t *testing.T) {
	h := newTestServer(t).Handler()

	cases := []struct {
		name   string
		values url.Values
	}{
		{"missing name", url.Values{"intent": {"save-template"}, "appKey": {"shop-1"}}},
		{"missing appKey", url.Values{"intent": {"save-template"}, "templateName": {"Home"}}},
		{"bad instances", url.Values{
			"intent": {"save-template"}, "appKey": {"shop-1"},
			"templateName": {"Home"}, "instances": {"not json"},
		}},
		{"unknown intent", url.Values{"intent": {"destroy-everything"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postForm(t, h, tc.values)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			if resp := decodeBuilder(t, rr); resp.Success {
				t.Error("success should be false")
			}
		})
	}
}

func TestLoadTemplate(t *testing.T) {
	h := newTestServer(t).Handler()

	rr := postForm(t, h, url.Values{
		"intent":       {"save-template"},
		"appKey":       {"shop-1"},
		"templateName": {"Home"},
		"instances":    {`[{"id":"i-1","kindId":"banner","params":{}}]`},
	})
	resp := decodeBuilder(t, rr)
	data := resp.Data.(map[string]any)
	templateID := data["templateId"].(string)

	rr = postForm(t, h, url.Values{"intent": {"load-template"}, "templateId": {templateID}})
	if rr.Code != http.StatusOK {
		t.Fatalf("load status = %d", rr.Code)
	}
	resp = decodeBuilder(t, rr)
	if !resp.Success {
		t.Fatalf("load failed: %s", resp.Message)
	}

	rr = postForm(t, h, url.Values{"intent": {"load-template"}, "templateId": {"nope"}})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing template status = %d, want 404", rr.Code)
	}
}

func TestListTemplates(t *testing.T) {
	h := newTestServer(t).Handler()

	for _, name := range []string{"Home", "Sale"} {
		postForm(t, h, url.Values{
			"intent":       {"save-template"},
			"appKey":       {"shop-1"},
			"templateName": {name},
		})
	}

	rr := postForm(t, h, url.Values{"intent": {"list-templates"}, "appKey": {"shop-1"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decodeBuilder(t, rr)
	list, ok := resp.Data.([]any)
	if !ok {
		t.Fatalf("data is %T, want list", resp.Data)
	}
	if len(list) != 2 {
		t.Fatalf("templates = %d, want 2", len(list))
	}
}

func TestSaveNotifiesBuilderSessions(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/builder"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The upgrade races the save broadcast without this.
	deadline := time.Now().Add(2 * time.Second)
	for srv.notify.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("builder session never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	form := url.Values{
		"intent":       {"save-template"},
		"appKey":       {"shop-1"},
		"templateName": {"Home"},
	}
	resp, err := http.PostForm(ts.URL+"/api/templates", form)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event SaveEvent
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if event.Type != "template-saved" || event.AppKey != "shop-1" {
		t.Errorf("event = %+v", event)
	}
}
