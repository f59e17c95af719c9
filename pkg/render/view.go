package render

import (
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// View is a point-in-time snapshot of the form a renderer draws. Errors holds
// only the annotations that should be visible; Submitted is nil until a
// submission passed validation.
type View struct {
	Form      model.FormModel
	Values    model.FieldValues
	Errors    validation.Violations
	Submitted *model.FieldValues
}

// HasSubmission reports whether the summary block should be drawn.
func (v View) HasSubmission() bool {
	return v.Submitted != nil
}

// SummaryRow is one line of the submitted values summary.
type SummaryRow struct {
	Field  string `json:"field"`
	Label  string `json:"label"`
	Value  string `json:"value"`
	TestID string `json:"testId"`
}

// Summary lists the submitted values in field order. Optional fields are
// omitted when their submitted value is empty; required fields always show.
func (v View) Summary() []SummaryRow {
	if v.Submitted == nil {
		return nil
	}
	rows := make([]SummaryRow, 0, len(v.Form.Fields))
	for _, field := range v.Form.Fields {
		value, ok := v.Submitted.Get(field.Name)
		if !ok {
			continue
		}
		if !field.Required && value == "" {
			continue
		}
		rows = append(rows, SummaryRow{
			Field:  field.Name,
			Label:  field.Label,
			Value:  value,
			TestID: DisplayTestID(field.Name),
		})
	}
	return rows
}

// DisplayTestID derives the summary marker for a field: "message" becomes
// "MessageDisplay".
func DisplayTestID(field string) string {
	if field == "" {
		return ""
	}
	runes := []rune(field)
	if runes[0] >= 'a' && runes[0] <= 'z' {
		runes[0] -= 'a' - 'A'
	}
	return string(runes) + "Display"
}
