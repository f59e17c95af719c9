package contactform

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/site"); got != "/site/contact" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("site"); got != "/site/contact" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("/site/", WithRoutePath("hello")); got != "/site/hello" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestMountPaths(t *testing.T) {
	want := Paths{
		Form:   "/site/contact",
		Live:   "/site/contact/live",
		Assets: "/site/contact/assets/",
	}
	if diff := cmp.Diff(want, MountPaths("/site")); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	got := MountPaths("", WithLive(false), WithAssetsPath("static"))
	if got.Live != "" {
		t.Fatalf("expected no live path, got %q", got.Live)
	}
	if got.Assets != "/static/" {
		t.Fatalf("unexpected assets path: %q", got.Assets)
	}
}

func TestRuntimeScriptURL(t *testing.T) {
	if got := RuntimeScriptURL("/site"); got != "/site/contact/assets/contactform-live.js" {
		t.Fatalf("unexpected script url: %q", got)
	}
}

func TestRegisterRoutes_RegistersHandlers(t *testing.T) {
	mux := http.NewServeMux()
	paths, err := RegisterRoutes(mux, "/site")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, paths.Form, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `action="/site/contact"`) {
		t.Fatalf("expected action to include base path")
	}

	req = httptest.NewRequest(http.MethodGet, paths.Assets+"contactform.css", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected stylesheet, got status %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if len(body) == 0 {
		t.Fatalf("expected stylesheet content")
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}

func TestComponent_RegisterRoutes(t *testing.T) {
	c := New(WithRoutePath("/hello"), WithLive(false))
	if c.Options().RoutePath != "/hello" {
		t.Fatalf("unexpected route path: %q", c.Options().RoutePath)
	}

	mux := http.NewServeMux()
	paths, err := c.RegisterRoutes(mux, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if paths.Form != "/hello" {
		t.Fatalf("unexpected form path: %q", paths.Form)
	}

	var nilComponent *Component
	if nilComponent.Options().RoutePath != "/contact" {
		t.Fatalf("nil component should report defaults")
	}
}
