package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model.
type RenderOptions struct {
	// Title overrides the form header. Defaults to the form model title.
	Title string
	// Intro is optional HTML shown under the header. Renderers sanitise it.
	Intro string
	// SubmitLabel overrides the submit button caption.
	SubmitLabel string
	// Action overrides the form action URL (defaults to the model endpoint).
	Action string
	// HiddenFields are emitted as hidden inputs (CSRF tokens and the like).
	HiddenFields map[string]string
	// LiveURL, when set, lets the HTML runtime stream keystrokes to the
	// websocket endpoint.
	LiveURL string
	// Theme carries the resolved go-theme configuration.
	Theme *theme.RendererConfig
}

const (
	DefaultTitle       = "Contact Form"
	DefaultSubmitLabel = "Submit"
)

// ResolvedTitle picks the header text for view.
func (o RenderOptions) ResolvedTitle(view View) string {
	if o.Title != "" {
		return o.Title
	}
	if view.Form.Title != "" {
		return view.Form.Title
	}
	return DefaultTitle
}

// ResolvedSubmitLabel picks the submit caption.
func (o RenderOptions) ResolvedSubmitLabel() string {
	if o.SubmitLabel != "" {
		return o.SubmitLabel
	}
	return DefaultSubmitLabel
}

// ResolvedAction picks the form action URL.
func (o RenderOptions) ResolvedAction(view View) string {
	if o.Action != "" {
		return o.Action
	}
	return view.Form.Endpoint
}
