package contactform

import (
	"context"

	pkgopenapi "github.com/goliatone/go-contactform/pkg/openapi"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/render"
)

// RenderOptions describes per-request presentation overrides; alias exported
// via the root package for convenience.
type RenderOptions = render.RenderOptions

// View aliases render.View, the snapshot renderers draw.
type View = render.View

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the empty contact form from the embedded document
// using the default renderer. It is the simplest entry point for callers that
// just want HTML output.
func GenerateHTML(ctx context.Context, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{})
}

// GenerateHTMLFromDocument renders the form described by a pre-loaded
// document.
func GenerateHTMLFromDocument(ctx context.Context, doc pkgopenapi.Document, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: rendererName,
	})
}
