package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeText   FieldType = "text"
	FieldTypeEmail  FieldType = "email"
)

const (
	ValidationRuleRequired  = "required"
	ValidationRuleMinLength = "minLength"
	ValidationRuleFormat    = "format"
)

// FormatEmail is the only string format the validator understands.
const FormatEmail = "email"

// ValidationRule represents a single validation constraint applied to a field.
// Length limits encode their threshold in Params["value"] and format rules
// keep the schema format name in Params["format"]. Rules are stored in the
// order they are evaluated.
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field models an individual input inside the contact form.
type Field struct {
	Name        string           `json:"name"`
	Type        FieldType        `json:"type"`
	Format      string           `json:"format,omitempty"`
	Required    bool             `json:"required"`
	Label       string           `json:"label,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	Description string           `json:"description,omitempty"`
	Validations []ValidationRule `json:"validations,omitempty"`
}

// Rule returns the first rule of the given kind.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Title       string            `json:"title,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field looks up a field by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames returns the field names in render order.
func (m FormModel) FieldNames() []string {
	names := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		names = append(names, field.Name)
	}
	return names
}
