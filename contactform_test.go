package contactform

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	pkgopenapi "github.com/goliatone/go-contactform/pkg/openapi"
)

func TestGenerateHTML(t *testing.T) {
	out, err := GenerateHTML(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{"Contact Form", `name="firstName"`, `name="message"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestGenerateHTMLFromDocument(t *testing.T) {
	out, err := GenerateHTMLFromDocument(context.Background(), pkgopenapi.DefaultDocument(), "vanilla")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.Contains(string(out), `data-testid="error"`) {
		t.Fatalf("fresh form should not carry annotations")
	}
}

func TestNewParserFindsContactOperation(t *testing.T) {
	ops, err := NewParser().Operations(context.Background(), pkgopenapi.DefaultDocument())
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	if _, ok := ops["submitContact"]; !ok {
		t.Fatalf("expected submitContact operation, got %v", ops)
	}
}

func TestEmbeddedFilesystems(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
	data, err := fs.ReadFile(AssetsFS(), "contactform-live.js")
	if err != nil {
		t.Fatalf("expected runtime script: %v", err)
	}
	if !strings.Contains(string(data), "WebSocket") {
		t.Fatalf("expected runtime script to open a websocket")
	}
}
