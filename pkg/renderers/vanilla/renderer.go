package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-contactform/pkg/render"
	rendertemplate "github.com/goliatone/go-contactform/pkg/render/template"
	gotemplate "github.com/goliatone/go-contactform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla/components"
)

// Name is the registry key of the HTML renderer.
const Name = "vanilla"

const summaryTitle = "Submitted"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	inlineStyles     bool
	runtimeScriptURL string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default input/textarea components.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithoutInlineStyles stops the embedded stylesheet from being inlined, for
// hosts that serve AssetsFS themselves.
func WithoutInlineStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = false
	}
}

// WithRuntimeScriptURL sets where the live validation script is served from.
// It is only emitted when RenderOptions.LiveURL is set.
func WithRuntimeScriptURL(url string) Option {
	return func(cfg *config) {
		cfg.runtimeScriptURL = strings.TrimSpace(url)
	}
}

// Renderer draws the contact form as an HTML fragment.
type Renderer struct {
	templates        rendertemplate.TemplateRenderer
	registry         *components.Registry
	inlineStyles     bool
	stylesheet       string
	runtimeScriptURL string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), inlineStyles: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:        renderer,
		registry:         cfg.registry,
		inlineStyles:     cfg.inlineStyles,
		stylesheet:       defaultStylesheet(),
		runtimeScriptURL: cfg.runtimeScriptURL,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws the form, its visible annotations and, once a submission has
// passed validation, the summary block.
func (r *Renderer) Render(ctx context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	partials := render.DefaultThemePartials()
	if options.Theme != nil {
		for key, value := range options.Theme.Partials {
			if strings.TrimSpace(value) != "" {
				partials[key] = value
			}
		}
	}

	fields := make([]fieldView, 0, len(view.Form.Fields))
	used := make([]string, 0, 2)
	for _, field := range view.Form.Fields {
		fv, componentName, err := r.renderField(view, field.Name, partials)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		fields = append(fields, fv)
		used = append(used, componentName)
	}

	summary := ""
	if view.HasSubmission() {
		rendered, err := r.templates.RenderTemplate(partials["forms.summary"], map[string]any{
			"title": summaryTitle,
			"rows":  view.Summary(),
		})
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: render summary: %w", err)
		}
		summary = rendered
	}

	stylesheets, scripts := r.registry.Assets(used)
	themeData := map[string]any{}
	if cfg := options.Theme; cfg != nil {
		themeData["name"] = cfg.Theme
		themeData["variant"] = cfg.Variant
		themeData["style"] = render.CSSVarsStyle(cfg.CSSVars)
		if cfg.AssetURL != nil {
			if href := cfg.AssetURL("stylesheet"); href != "" {
				stylesheets = append(stylesheets, href)
			}
		}
	}
	if options.LiveURL != "" && r.runtimeScriptURL != "" {
		scripts = append(scripts, components.Script{Src: r.runtimeScriptURL, Defer: true})
	}

	payload := map[string]any{
		"title":         options.ResolvedTitle(view),
		"intro":         render.SanitizeIntro(options.Intro),
		"submit_label":  options.ResolvedSubmitLabel(),
		"live_url":      options.LiveURL,
		"inline_styles": r.inlineStyles && r.stylesheet != "",
		"stylesheet":    r.stylesheet,
		"stylesheets":   stylesheets,
		"scripts":       scriptViews(scripts),
		"theme":         themeData,
		"hidden_fields": render.SortedHiddenFields(options.HiddenFields),
		"fields":        fields,
		"summary":       summary,
		"form": map[string]any{
			"id":     formID(view.Form),
			"method": strings.ToLower(formMethod(view.Form.Method)),
			"action": options.ResolvedAction(view),
		},
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", payload)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type fieldView struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	LabelID     string `json:"label_id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
	Invalid     bool   `json:"invalid"`
	Control     string `json:"control"`
	Error       string `json:"error,omitempty"`
}

func (r *Renderer) renderField(view render.View, name string, partials map[string]string) (fieldView, string, error) {
	field, _ := view.Form.Field(name)
	value, _ := view.Values.Get(name)
	violation, invalid := view.Errors.For(name)

	control := components.Control{
		ID:          componentControlID(name),
		Name:        name,
		InputType:   inputType(field),
		Label:       field.Label,
		Placeholder: field.Placeholder,
		Description: field.Description,
		Value:       value,
		Required:    field.Required,
		Invalid:     invalid,
	}
	if invalid {
		control.ErrorID = componentErrorID(name)
	}

	componentName := resolveComponentName(field)
	descriptor, ok := r.registry.Descriptor(componentName)
	if !ok {
		return fieldView{}, "", fmt.Errorf("component %q not registered for field %q", componentName, name)
	}

	var buf bytes.Buffer
	err := descriptor.Renderer(&buf, control, components.ComponentData{
		Template:      r.templates,
		ThemePartials: partials,
	})
	if err != nil {
		return fieldView{}, "", fmt.Errorf("render component %q for field %q: %w", componentName, name, err)
	}

	fv := fieldView{
		Name:        name,
		ID:          control.ID,
		LabelID:     componentLabelID(name),
		Label:       field.Label,
		Description: field.Description,
		Required:    field.Required,
		Invalid:     invalid,
		Control:     buf.String(),
	}
	if invalid {
		rendered, err := r.templates.RenderTemplate(partials["forms.error"], map[string]any{
			"id":      control.ErrorID,
			"field":   name,
			"message": violation.Message,
		})
		if err != nil {
			return fieldView{}, "", fmt.Errorf("render error for field %q: %w", name, err)
		}
		fv.Error = rendered
	}
	return fv, componentName, nil
}

func scriptViews(scripts []components.Script) []map[string]any {
	out := make([]map[string]any, 0, len(scripts))
	for _, script := range scripts {
		out = append(out, map[string]any{
			"src":    script.Src,
			"inline": script.Inline,
			"defer":  script.Defer,
		})
	}
	return out
}

func formMethod(method string) string {
	if strings.TrimSpace(method) == "" {
		return "post"
	}
	return method
}
