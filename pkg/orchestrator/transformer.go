package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Transformer mutates a FormModel after it is built. Implementations can
// relabel fields or rewrite presentation text.
type Transformer interface {
	Transform(ctx context.Context, form *model.FormModel) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.FormModel) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.FormModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// Presets are declarative presentation overrides:
//
//	title: Get in touch
//	fields:
//	  message:
//	    label: Your message
//	    placeholder: Tell us more
//
// Validation rules and field names cannot be changed through presets.
type Presets struct {
	Title       string                 `yaml:"title"`
	Description string                 `yaml:"description"`
	Fields      map[string]FieldPreset `yaml:"fields"`
}

// FieldPreset patches the presentation of one field.
type FieldPreset struct {
	Label       string `yaml:"label"`
	Placeholder string `yaml:"placeholder"`
	Description string `yaml:"description"`
}

// Empty reports whether p changes nothing.
func (p Presets) Empty() bool {
	return p.Title == "" && p.Description == "" && len(p.Fields) == 0
}

// PresetTransformer applies Presets onto built form models.
type PresetTransformer struct {
	presets Presets
}

// NewPresetTransformer wraps presets.
func NewPresetTransformer(presets Presets) *PresetTransformer {
	return &PresetTransformer{presets: presets}
}

// NewPresetTransformerFromYAML parses a YAML presets document.
func NewPresetTransformerFromYAML(data []byte) (*PresetTransformer, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var presets Presets
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return NewPresetTransformer(presets), nil
}

// NewPresetTransformerFromFS loads a YAML presets document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformerFromYAML(data)
}

// Transform applies the presets onto the supplied form.
func (t *PresetTransformer) Transform(ctx context.Context, form *model.FormModel) error {
	if form == nil {
		return errors.New("preset transformer: form model is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.presets.Title != "" {
		form.Title = t.presets.Title
	}
	if t.presets.Description != "" {
		form.Description = t.presets.Description
	}

	for name, patch := range t.presets.Fields {
		idx := fieldIndex(form.Fields, name)
		if idx < 0 {
			return fmt.Errorf("preset transformer: field %q not found", name)
		}
		applyFieldPreset(&form.Fields[idx], patch)
	}
	return nil
}

func applyFieldPreset(field *model.Field, patch FieldPreset) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	if patch.Description != "" {
		field.Description = patch.Description
	}
}

func fieldIndex(fields []model.Field, name string) int {
	for idx := range fields {
		if fields[idx].Name == name {
			return idx
		}
	}
	return -1
}
