package orchestrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	internalParser "github.com/goliatone/go-contactform/internal/openapi/parser"
	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
	pkgopenapi "github.com/goliatone/go-contactform/pkg/openapi"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
	"github.com/goliatone/go-contactform/pkg/validation"
)

const defaultRendererName = vanilla.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithValidator sets the validator states created by Generate use.
func WithValidator(v *validation.Validator) Option {
	return func(o *Orchestrator) {
		o.validator = v
	}
}

// WithSchemaTransformer registers a Transformer that mutates the form model
// after it is built.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithThemeSelector resolves theme/variant choices ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.defaultTheme = defaultTheme
		o.defaultVariant = defaultVariant
	}
}

// WithThemeFallbacks overrides the partials used when a theme does not name
// its own.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// WithLogger attaches a zap logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from OpenAPI document to rendered
// output. Built forms are cached per document location and operation so
// long-lived surfaces (HTTP, websocket) parse the document once.
type Orchestrator struct {
	parser          pkgopenapi.Parser
	builder         model.Builder
	registry        *render.Registry
	validator       *validation.Validator
	transformer     Transformer
	defaultRenderer string
	themeSelector   theme.ThemeSelector
	defaultTheme    string
	defaultVariant  string
	themeFallbacks  map[string]string
	logger          *zap.Logger
	initialiseErr   error

	mu    sync.RWMutex
	forms map[string]model.FormModel
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		forms:           make(map[string]model.FormModel),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render the contact form.
type Request struct {
	// Document overrides the embedded contact document.
	Document *pkgopenapi.Document

	// OperationID selects the operation. Defaults to submitContact.
	OperationID string

	// Renderer names the renderer to use. Empty selects the default.
	Renderer string

	// State renders an existing form state. When nil a fresh state is
	// created and prefilled with Values.
	State *form.State

	// Values prefill a fresh state without marking fields as validated.
	Values model.FieldValues

	// Theme and Variant pick a theme from the configured selector.
	Theme   string
	Variant string

	RenderOptions render.RenderOptions
}

// Form parses the document and builds the form model for the request.
func (o *Orchestrator) Form(ctx context.Context, req Request) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, err
	}

	doc := pkgopenapi.DefaultDocument()
	if req.Document != nil {
		doc = *req.Document
	}
	operationID := req.OperationID
	if operationID == "" {
		operationID = pkgopenapi.DefaultOperationID
	}

	key := cacheKey(doc, operationID)
	o.mu.RLock()
	cached, ok := o.forms[key]
	o.mu.RUnlock()
	if ok {
		return cached, nil
	}

	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: parse operations: %w", err)
	}
	op, ok := operations[operationID]
	if !ok {
		return model.FormModel{}, fmt.Errorf("orchestrator: operation %q not found", operationID)
	}

	built, err := o.builder.Build(op)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &built); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}

	o.logger.Debug("form model built",
		zap.String("document", doc.Location()),
		zap.String("operation", operationID),
		zap.Int("fields", len(built.Fields)),
	)

	o.mu.Lock()
	o.forms[key] = built
	o.mu.Unlock()
	return built, nil
}

// cacheKey identifies a built model by document location, content and
// operation, so two documents sharing a name never share a model.
func cacheKey(doc pkgopenapi.Document, operationID string) string {
	sum := sha256.Sum256(doc.Raw())
	return doc.Location() + "@" + hex.EncodeToString(sum[:8]) + "#" + operationID
}

// NewState builds the form for req and returns a fresh state bound to it.
func (o *Orchestrator) NewState(ctx context.Context, req Request) (*form.State, error) {
	built, err := o.Form(ctx, req)
	if err != nil {
		return nil, err
	}
	return form.NewState(built, form.WithValidator(o.validator), form.WithValues(req.Values)), nil
}

// Generate renders req.State, or a fresh state when none is given, using the
// requested renderer and theme.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	state := req.State
	if state == nil {
		var err error
		state, err = o.NewState(ctx, req)
		if err != nil {
			return nil, err
		}
	}
	return o.Render(ctx, req.Renderer, state.View(), req.Theme, req.Variant, req.RenderOptions)
}

// Render draws view with the named renderer, resolving the theme into the
// render options unless the caller already supplied one.
func (o *Orchestrator) Render(ctx context.Context, rendererName string, view render.View, themeName, variant string, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	renderer, err := o.rendererFor(rendererName)
	if err != nil {
		return nil, err
	}

	if options.Theme == nil && o.themeSelector != nil {
		if themeName == "" {
			themeName = o.defaultTheme
		}
		if variant == "" {
			variant = o.defaultVariant
		}
		cfg, err := render.ResolveTheme(o.themeSelector, themeName, variant, o.themeFallbacks)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: resolve theme: %w", err)
		}
		options.Theme = cfg
	}

	output, err := renderer.Render(ctx, view, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderer returns the named renderer, falling back to the default.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	return o.rendererFor(name)
}

// Validator returns the validator states created by the orchestrator use.
func (o *Orchestrator) Validator() *validation.Validator {
	return o.validator
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}

	renderer, err = o.registry.Get("")
	if err != nil {
		return nil, fmt.Errorf("orchestrator: no renderers registered: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.validator == nil {
		o.validator = validation.New()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = render.DefaultThemePartials()
	}
	if o.registry == nil {
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry, o.initialiseErr = render.NewRegistry(renderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
