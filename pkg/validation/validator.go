package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Message placeholders. {min} is only filled for the min_length message.
const (
	PlaceholderField = "{field}"
	PlaceholderMin   = "{min}"
)

var placeholderPattern = regexp.MustCompile(`\{[^{}]*\}`)

// Messages holds the text used for each rule. {field} is replaced with the
// field name and {min} with the length threshold. Plain text without
// placeholders is used verbatim.
type Messages struct {
	Required  string `yaml:"required"`
	MinLength string `yaml:"min_length"`
	Email     string `yaml:"email"`
}

// DefaultMessages returns the stock rule messages.
func DefaultMessages() Messages {
	return Messages{
		Required:  "{field} is a required field",
		MinLength: "{field} must be at least {min} characters",
		Email:     "{field} must be a valid email address",
	}
}

// Check reports placeholders that no rule fills.
func (m Messages) Check() error {
	entries := []struct{ key, text string }{
		{"required", m.Required},
		{"min_length", m.MinLength},
		{"email", m.Email},
	}
	for _, entry := range entries {
		for _, found := range placeholderPattern.FindAllString(entry.text, -1) {
			if found == PlaceholderField || (found == PlaceholderMin && entry.key == "min_length") {
				continue
			}
			return fmt.Errorf("validation: message %s: unknown placeholder %s", entry.key, found)
		}
	}
	return nil
}

// Option configures a Validator.
type Option func(*Validator)

// WithMessages overrides individual rule messages. Empty entries keep the
// defaults.
func WithMessages(messages Messages) Option {
	return func(v *Validator) {
		if strings.TrimSpace(messages.Required) != "" {
			v.messages.Required = messages.Required
		}
		if strings.TrimSpace(messages.MinLength) != "" {
			v.messages.MinLength = messages.MinLength
		}
		if strings.TrimSpace(messages.Email) != "" {
			v.messages.Email = messages.Email
		}
	}
}

// Validator maps field values to rule violations. Rules are evaluated with
// go-playground/validator tags. It holds no per-form state and is safe for
// concurrent use.
type Validator struct {
	messages Messages
	engine   *playground.Validate
}

// New constructs a Validator.
func New(options ...Option) *Validator {
	v := &Validator{
		messages: DefaultMessages(),
		engine:   playground.New(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Validate evaluates every field of form against values and returns the
// violations in field order. Each field contributes at most one violation:
// the first rule it fails.
func (v *Validator) Validate(form model.FormModel, values model.FieldValues) Violations {
	var out Violations
	for _, field := range form.Fields {
		value, _ := values.Get(field.Name)
		if violation, ok := v.ValidateField(field, value); ok {
			out = append(out, violation)
		}
	}
	return out
}

// check is one rule lowered to a validator tag.
type check struct {
	rule string
	tag  string
	min  int
}

// ValidateField evaluates the rules of a single field. A blank value only
// triggers the required rule; optional blank fields pass.
func (v *Validator) ValidateField(field model.Field, value string) (Violation, bool) {
	if strings.TrimSpace(value) == "" {
		if !field.Required {
			return Violation{}, false
		}
		// whitespace-only input counts as missing
		value = ""
	}

	for _, c := range checks(field) {
		err := v.engine.Var(value, c.tag)
		if err == nil {
			continue
		}
		var fieldErrs playground.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			continue
		}
		return Violation{
			Field:   field.Name,
			Rule:    c.rule,
			Message: v.message(fieldErrs[0].Tag(), field.Name, c.min),
		}, true
	}
	return Violation{}, false
}

// checks lowers the field rules to validator tags, required first.
func checks(field model.Field) []check {
	out := make([]check, 0, len(field.Validations)+1)
	if field.Required {
		out = append(out, check{rule: model.ValidationRuleRequired, tag: "required"})
	}
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleMinLength:
			min, err := strconv.Atoi(rule.Params["value"])
			if err != nil || min <= 0 {
				continue
			}
			out = append(out, check{rule: rule.Kind, tag: "min=" + strconv.Itoa(min), min: min})
		case model.ValidationRuleFormat:
			if rule.Params["format"] == model.FormatEmail {
				out = append(out, check{rule: rule.Kind, tag: "email"})
			}
		}
	}
	return out
}

func (v *Validator) message(tag, field string, min int) string {
	var template string
	switch tag {
	case "required":
		template = v.messages.Required
	case "min":
		template = v.messages.MinLength
	case "email":
		template = v.messages.Email
	default:
		return field + " is invalid"
	}
	return strings.NewReplacer(
		PlaceholderField, field,
		PlaceholderMin, strconv.Itoa(min),
	).Replace(template)
}

var emailEngine = playground.New()

// IsEmail reports whether value has the shape of an email address.
func IsEmail(value string) bool {
	return emailEngine.Var(value, "email") == nil
}
