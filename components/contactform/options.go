package contactform

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	pkgopenapi "github.com/goliatone/go-contactform/pkg/openapi"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/render"
)

// GuardFunc rejects requests before any form work happens. Returning an
// HTTPError picks the response status; any other error maps to 403.
type GuardFunc func(r *http.Request) error

// CSRFFunc returns the hidden field name and token for a request. An empty
// name disables the hidden field.
type CSRFFunc func(r *http.Request) (name, token string)

type Options struct {
	RoutePath      string
	LivePath       string
	AssetsPath     string
	Live           bool
	Renderer       string
	Theme          string
	Variant        string
	RenderOptions  render.RenderOptions
	Guard          GuardFunc
	CSRF           CSRFFunc
	CheckOrigin    func(r *http.Request) bool
	ReadTimeout    time.Duration
	MaxMessageSize int64

	// Document overrides the embedded contact document.
	Document *pkgopenapi.Document

	Orchestrator *orchestrator.Orchestrator
	Logger       *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:      "/contact",
		LivePath:       "/contact/live",
		AssetsPath:     "/contact/assets/",
		Live:           true,
		ReadTimeout:    2 * time.Minute,
		MaxMessageSize: 16 << 10,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	defaults := DefaultOptions()
	if opts.RoutePath == "" {
		opts.RoutePath = defaults.RoutePath
	}
	if opts.LivePath == "" {
		opts.LivePath = defaults.LivePath
	}
	if opts.AssetsPath == "" {
		opts.AssetsPath = defaults.AssetsPath
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = defaults.ReadTimeout
	}
	if opts.MaxMessageSize <= 0 {
		opts.MaxMessageSize = defaults.MaxMessageSize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Orchestrator == nil {
		opts.Orchestrator = orchestrator.New(orchestrator.WithLogger(opts.Logger))
	}
	if opts.RenderOptions.HiddenFields != nil {
		opts.RenderOptions.HiddenFields = render.MergeHiddenFields(opts.RenderOptions.HiddenFields)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithLivePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LivePath = path
	}
}

func WithAssetsPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AssetsPath = path
	}
}

// WithLive toggles the websocket endpoint.
func WithLive(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Live = enabled
	}
}

func WithRenderer(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = name
	}
}

func WithTheme(name, variant string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = name
		o.Variant = variant
	}
}

func WithRenderOptions(ro render.RenderOptions) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RenderOptions = ro
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithCSRF(fn CSRFFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CSRF = fn
	}
}

// WithCheckOrigin overrides the websocket origin check. The default rejects
// cross-origin upgrades.
func WithCheckOrigin(fn func(r *http.Request) bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CheckOrigin = fn
	}
}

func WithReadTimeout(d time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ReadTimeout = d
	}
}

func WithDocument(doc *pkgopenapi.Document) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Document = doc
	}
}

func WithOrchestrator(orch *orchestrator.Orchestrator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Orchestrator = orch
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
