package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-contactform/pkg/openapi"
)

const (
	placeholderExtensionKey = "x-placeholder"
	widgetExtensionKey      = "x-widget"
)

var (
	errOperationIDMissing = errors.New("model builder: operation id is required")
	errNoFields           = errors.New("model builder: request body declares no properties")
)

// Builder converts OpenAPI operations into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if len(options.Known) > 0 {
		opts.Known = append([]string(nil), options.Known...)
	}
	return &Builder{opts: opts}
}

// Build transforms an OpenAPI operation into a FormModel. Fields follow the
// x-field-order extension; properties it does not list are appended in
// alphabetical order.
func (b *Builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if strings.TrimSpace(op.ID) == "" {
		return FormModel{}, errOperationIDMissing
	}
	body := op.RequestBody
	if len(body.Properties) == 0 {
		return FormModel{}, fmt.Errorf("%w (operation %q)", errNoFields, op.ID)
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Title:       op.Summary,
		Summary:     op.Summary,
		Description: op.Description,
	}
	if body.Title != "" && form.Title == "" {
		form.Title = body.Title
	}

	required := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		required[name] = struct{}{}
	}

	for _, name := range orderedProperties(body) {
		if !b.known(name) {
			return FormModel{}, fmt.Errorf("model builder: unsupported field %q in operation %q", name, op.ID)
		}
		_, isRequired := required[name]
		form.Fields = append(form.Fields, b.fieldFromSchema(name, body.Properties[name], isRequired))
	}

	return form, nil
}

func (b *Builder) known(name string) bool {
	if len(b.opts.Known) == 0 {
		return true
	}
	for _, candidate := range b.opts.Known {
		if candidate == name {
			return true
		}
	}
	return false
}

func (b *Builder) fieldFromSchema(name string, schema pkgopenapi.Schema, required bool) Field {
	label := strings.TrimSpace(schema.Title)
	if label == "" {
		label = b.opts.Labeler(name)
	}
	field := Field{
		Name:        name,
		Type:        mapType(schema),
		Format:      schema.Format,
		Required:    required,
		Label:       label,
		Placeholder: extensionString(schema.Extensions, placeholderExtensionKey),
		Description: schema.Description,
	}
	applyValidations(&field, schema)
	return field
}

func mapType(schema pkgopenapi.Schema) FieldType {
	if schema.Format == FormatEmail {
		return FieldTypeEmail
	}
	if extensionString(schema.Extensions, widgetExtensionKey) == "textarea" {
		return FieldTypeText
	}
	return FieldTypeString
}

// applyValidations appends rules in evaluation order: presence first, then
// length, then shape.
func applyValidations(field *Field, schema pkgopenapi.Schema) {
	if field.Required {
		field.Validations = append(field.Validations, ValidationRule{Kind: ValidationRuleRequired})
	}
	if schema.MinLength != nil && *schema.MinLength > 0 {
		field.Validations = append(field.Validations, ValidationRule{
			Kind: ValidationRuleMinLength,
			Params: map[string]string{
				"value": strconv.Itoa(*schema.MinLength),
			},
		})
	}
	if schema.Format == FormatEmail {
		field.Validations = append(field.Validations, ValidationRule{
			Kind: ValidationRuleFormat,
			Params: map[string]string{
				"format": FormatEmail,
			},
		})
	}
}

func orderedProperties(schema pkgopenapi.Schema) []string {
	out := make([]string, 0, len(schema.Properties))
	seen := make(map[string]struct{}, len(schema.Properties))
	for _, name := range schema.Order {
		if _, ok := schema.Properties[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	var rest []string
	for name := range schema.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func extensionString(ext map[string]any, key string) string {
	if len(ext) == 0 {
		return ""
	}
	value, ok := ext[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
