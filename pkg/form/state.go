package form

import (
	"fmt"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// ErrUnknownField aliases model.ErrUnknownField for callers that only import
// this package.
var ErrUnknownField = model.ErrUnknownField

// Option configures a State.
type Option func(*State)

// WithValidator swaps the validator used for every keystroke and submit.
func WithValidator(v *validation.Validator) Option {
	return func(s *State) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithValues prefills the inputs without marking any field as validated.
func WithValues(values model.FieldValues) Option {
	return func(s *State) {
		s.values = values
	}
}

// State is the form state holder and submission handler.
type State struct {
	form      model.FormModel
	validator *validation.Validator
	values    model.FieldValues
	validated map[string]bool
	submitted *model.FieldValues
	attempts  int
}

// Result describes the outcome of a submission.
type Result struct {
	OK         bool
	Violations validation.Violations
	Submitted  model.FieldValues
}

// NewState creates a State for form.
func NewState(form model.FormModel, options ...Option) *State {
	s := &State{
		form:      form,
		validator: validation.New(),
		validated: make(map[string]bool, len(form.Fields)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Form returns the model the state validates against.
func (s *State) Form() model.FormModel {
	return s.form
}

// Input replaces the value of field, as a change event would, and marks the
// field as validated so its annotation becomes visible.
func (s *State) Input(field, value string) error {
	if _, ok := s.form.Field(field); !ok {
		return fmt.Errorf("form: input %q: %w", field, ErrUnknownField)
	}
	if err := s.values.Set(field, value); err != nil {
		return fmt.Errorf("form: input %q: %w", field, err)
	}
	s.validated[field] = true
	return nil
}

// Type appends text to field one rune at a time, re-validating after every
// keystroke. Typing an empty string is a no-op.
func (s *State) Type(field, text string) error {
	current, ok := s.values.Get(field)
	if !ok {
		return fmt.Errorf("form: type into %q: %w", field, ErrUnknownField)
	}
	for _, r := range text {
		current += string(r)
		if err := s.Input(field, current); err != nil {
			return err
		}
	}
	return nil
}

// Clear empties field and keeps it validated.
func (s *State) Clear(field string) error {
	return s.Input(field, "")
}

// Submit validates every field. When nothing is violated the current values
// are copied into the submitted snapshot; otherwise the previous snapshot is
// left untouched.
func (s *State) Submit() Result {
	s.attempts++
	for _, field := range s.form.Fields {
		s.validated[field.Name] = true
	}

	violations := s.validator.Validate(s.form, s.values)
	if !violations.Empty() {
		return Result{Violations: violations}
	}

	snapshot := s.values
	s.submitted = &snapshot
	return Result{OK: true, Submitted: snapshot}
}

// Reset clears values, validation visibility and the submitted snapshot.
func (s *State) Reset() {
	s.values = model.FieldValues{}
	s.validated = make(map[string]bool, len(s.form.Fields))
	s.submitted = nil
	s.attempts = 0
}

// Values returns the live field values.
func (s *State) Values() model.FieldValues {
	return s.values
}

// Violations returns every rule currently violated, visible or not.
func (s *State) Violations() validation.Violations {
	return s.validator.Validate(s.form, s.values)
}

// VisibleViolations returns the violations of fields that have been
// validated, which is what renderers show as annotations.
func (s *State) VisibleViolations() validation.Violations {
	return s.Violations().Filter(func(field string) bool {
		return s.validated[field]
	})
}

// Submitted returns a copy of the last successfully submitted values.
func (s *State) Submitted() (model.FieldValues, bool) {
	if s.submitted == nil {
		return model.FieldValues{}, false
	}
	return *s.submitted, true
}

// Attempts counts Submit calls since creation or the last Reset.
func (s *State) Attempts() int {
	return s.attempts
}

// View snapshots the state for a renderer.
func (s *State) View() render.View {
	view := render.View{
		Form:   s.form,
		Values: s.values,
		Errors: s.VisibleViolations(),
	}
	if submitted, ok := s.Submitted(); ok {
		view.Submitted = &submitted
	}
	return view
}
