package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/config"
)

func TestNewServeMux_RendersLiveScript(t *testing.T) {
	cfg, err := config.Parse([]byte("server:\n  base_path: /site\n"))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	handler, paths, err := newServeMux(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("new serve mux: %v", err)
	}
	if paths.Form != "/site/contact" {
		t.Fatalf("unexpected form path %q", paths.Form)
	}

	req := httptest.NewRequest(http.MethodGet, paths.Form, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/site/contact/assets/contactform-live.js") {
		t.Fatalf("expected runtime script tag")
	}
}

func TestNewServeMux_CSRFGuard(t *testing.T) {
	cfg, err := config.Parse([]byte("server:\n  csrf_field: _csrf\n"))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	handler, paths, err := newServeMux(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("new serve mux: %v", err)
	}

	values := url.Values{"firstName": {"Fiveo"}, "_csrf": {"forged"}}
	req := httptest.NewRequest(http.MethodPost, paths.Form, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestCSRFGuard(t *testing.T) {
	guard := csrfGuard("_csrf", "secret")

	if err := guard(httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
		t.Fatalf("GET should pass, got %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("_csrf=secret"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if err := guard(req); err != nil {
		t.Fatalf("matching token should pass, got %v", err)
	}
}
