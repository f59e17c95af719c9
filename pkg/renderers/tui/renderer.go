package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// Name is the registry key of the terminal renderer.
const Name = "tui"

// Renderer implements render.Renderer for terminal-driven sessions. Each
// field is prompted in order and re-asked until it passes validation; the
// collected values are then submitted and serialized.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	validator         *validation.Validator
	confirm           bool
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		validator:    validation.New(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		driver, err := newSurveyDriver()
		if err != nil {
			return nil, err
		}
		r.driver = driver
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every field of view.Form, using view.Values as
// defaults, and returns the serialized submission.
func (r *Renderer) Render(ctx context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	state := form.NewState(view.Form, form.WithValues(view.Values), form.WithValidator(r.validator))

	if err := r.driver.Info(ctx, r.theme.InfoPrefix+opts.ResolvedTitle(view)); err != nil {
		return nil, err
	}
	for _, field := range view.Form.Fields {
		if err := r.promptField(ctx, field, state); err != nil {
			return nil, err
		}
	}

	if r.confirm {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: opts.ResolvedSubmitLabel() + "?",
			Default: true,
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDeclined
		}
	}

	result := state.Submit()
	if !result.OK {
		return nil, fmt.Errorf("tui: submit: %s", strings.Join(result.Violations.Messages(), "; "))
	}

	submitted := result.Submitted
	if r.submitTransformer != nil {
		var err error
		submitted, err = r.submitTransformer(submitted)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(view.Form, submitted)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, state *form.State) error {
	label := displayLabel(field)
	current, _ := state.Values().Get(field.Name)
	validate := func(value string) error {
		if violation, bad := r.validator.ValidateField(field, value); bad {
			return errors.New(violation.Message)
		}
		return nil
	}

	for {
		var (
			response string
			err      error
		)
		if field.Type == model.FieldTypeText {
			response, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message: label,
				Default: current,
				Help:    field.Description,
			})
		} else {
			response, err = r.driver.Input(ctx, InputConfig{
				Message:   label,
				Default:   current,
				Help:      field.Description,
				Validator: validate,
			})
		}
		if err != nil {
			return err
		}

		if err := state.Input(field.Name, response); err != nil {
			return err
		}
		if verr := validate(response); verr != nil {
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+verr.Error()); err != nil {
				return err
			}
			current = response
			continue
		}
		return nil
	}
}

func (r *Renderer) serialize(formModel model.FormModel, values model.FieldValues) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(values.URLValues().Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(formModel, values)), nil
	default:
		payload, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return payload, nil
	}
}

func displayLabel(field model.Field) string {
	label := field.Label
	if label == "" {
		label = field.Name
	}
	if field.Required {
		label += "*"
	}
	return label
}

func prettyPrint(formModel model.FormModel, values model.FieldValues) string {
	view := render.View{Form: formModel, Submitted: &values}
	var b strings.Builder
	for _, row := range view.Summary() {
		fmt.Fprintf(&b, "%s: %s\n", row.Label, row.Value)
	}
	return b.String()
}
