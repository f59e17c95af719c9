package contactform

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/validation"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// submissionResponse is the JSON body returned to clients that ask for
// application/json instead of HTML.
type submissionResponse struct {
	OK        bool                  `json:"ok"`
	Errors    validation.Violations `json:"errors"`
	Submitted *model.FieldValues    `json:"submitted"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions serves the form on the paths in opts as given, without
// a base path.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return newFormHandler(opts, mountPaths("", opts))
}

func newFormHandler(opts Options, paths Paths) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodPost:
		default:
			w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodPost}, ", "))
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		ctx := r.Context()
		state, err := opts.Orchestrator.NewState(ctx, orchestrator.Request{Document: opts.Document})
		if err != nil {
			opts.Logger.Error("contact form unavailable", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		status := http.StatusOK
		if r.Method == http.MethodPost {
			if err := applySubmission(r, state); err != nil {
				writeError(w, err)
				return
			}
			result := state.Submit()
			if !result.OK {
				status = http.StatusUnprocessableEntity
			}
			opts.Logger.Debug("contact form submitted",
				zap.Bool("ok", result.OK),
				zap.Int("violations", len(result.Violations)),
			)
		}

		if wantsJSON(r) {
			writeJSON(w, status, r.Method, state)
			return
		}

		output, err := opts.Orchestrator.Render(ctx, opts.Renderer, state.View(), opts.Theme, opts.Variant, renderOptions(r, opts, paths))
		if err != nil {
			opts.Logger.Error("render contact form", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(output)
	})
}

func applySubmission(r *http.Request, state *form.State) error {
	if err := r.ParseForm(); err != nil {
		return StatusError{Code: http.StatusBadRequest, Err: err}
	}
	for _, name := range state.Form().FieldNames() {
		if err := state.Input(name, r.PostForm.Get(name)); err != nil {
			return StatusError{Code: http.StatusBadRequest, Err: err}
		}
	}
	return nil
}

func renderOptions(r *http.Request, opts Options, paths Paths) render.RenderOptions {
	ro := opts.RenderOptions
	if ro.Action == "" {
		ro.Action = paths.Form
	}
	if opts.Live && ro.LiveURL == "" {
		ro.LiveURL = paths.Live
	}
	if opts.CSRF != nil {
		if name, token := opts.CSRF(r); strings.TrimSpace(name) != "" {
			ro.HiddenFields = render.MergeHiddenFields(ro.HiddenFields, render.CSRFToken(name, token))
		}
	}
	return ro
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func writeJSON(w http.ResponseWriter, status int, method string, state *form.State) {
	body := submissionResponse{
		OK:     state.Violations().Empty(),
		Errors: state.VisibleViolations(),
	}
	if body.Errors == nil {
		body.Errors = validation.Violations{}
	}
	if submitted, ok := state.Submitted(); ok {
		body.Submitted = &submitted
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
