package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-contactform/pkg/openapi"
)

func intPtr(v int) *int { return &v }

func contactOperation() pkgopenapi.Operation {
	return pkgopenapi.MustNewOperation("submitContact", "post", "/contact", pkgopenapi.Schema{
		Type:     "object",
		Required: []string{"firstName", "lastName", "email"},
		Order:    []string{"firstName", "lastName", "email"},
		Properties: map[string]pkgopenapi.Schema{
			"firstName": {Type: "string", Title: "First Name", MinLength: intPtr(5)},
			"lastName":  {Type: "string"},
			"email":     {Type: "string", Format: "email", Extensions: map[string]any{"x-placeholder": "you@example.com"}},
			"message":   {Type: "string", Extensions: map[string]any{"x-widget": "textarea"}},
		},
	})
}

func TestBuilder_Build(t *testing.T) {
	form, err := New(Options{}).Build(contactOperation())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if form.Method != "POST" || form.Endpoint != "/contact" {
		t.Fatalf("unexpected routing %s %s", form.Method, form.Endpoint)
	}

	want := []Field{
		{
			Name:     "firstName",
			Type:     FieldTypeString,
			Required: true,
			Label:    "First Name",
			Validations: []ValidationRule{
				{Kind: ValidationRuleRequired},
				{Kind: ValidationRuleMinLength, Params: map[string]string{"value": "5"}},
			},
		},
		{
			Name:        "lastName",
			Type:        FieldTypeString,
			Required:    true,
			Label:       "Last Name",
			Validations: []ValidationRule{{Kind: ValidationRuleRequired}},
		},
		{
			Name:        "email",
			Type:        FieldTypeEmail,
			Format:      "email",
			Required:    true,
			Label:       "Email",
			Placeholder: "you@example.com",
			Validations: []ValidationRule{
				{Kind: ValidationRuleRequired},
				{Kind: ValidationRuleFormat, Params: map[string]string{"format": "email"}},
			},
		},
		{
			Name:  "message",
			Type:  FieldTypeText,
			Label: "Message",
		},
	}
	if diff := cmp.Diff(want, form.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_RejectsUnknownFields(t *testing.T) {
	b := New(Options{Known: []string{"firstName", "lastName", "email"}})
	if _, err := b.Build(contactOperation()); err == nil {
		t.Fatalf("expected unsupported field error")
	}
}

func TestBuilder_RequiresProperties(t *testing.T) {
	op := pkgopenapi.MustNewOperation("empty", "POST", "/empty", pkgopenapi.Schema{Type: "object"})
	if _, err := New(Options{}).Build(op); err == nil {
		t.Fatalf("expected error for empty request body")
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"firstName":  "First Name",
		"last_name":  "Last Name",
		"email":      "Email",
		"reply-to":   "Reply To",
		"  message ": "Message",
		"":           "",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}
