package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

func contactForm() model.FormModel {
	return model.FormModel{
		OperationID: "submitContact",
		Fields: []model.Field{
			{
				Name:     model.FieldFirstName,
				Required: true,
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleRequired},
					{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "5"}},
				},
			},
			{
				Name:        model.FieldLastName,
				Required:    true,
				Validations: []model.ValidationRule{{Kind: model.ValidationRuleRequired}},
			},
			{
				Name:     model.FieldEmail,
				Required: true,
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleRequired},
					{Kind: model.ValidationRuleFormat, Params: map[string]string{"format": "email"}},
				},
			},
			{Name: model.FieldMessage},
		},
	}
}

func TestValidate(t *testing.T) {
	v := validation.New()

	cases := []struct {
		name   string
		values model.FieldValues
		want   validation.Violations
	}{
		{
			name: "all empty",
			want: validation.Violations{
				{Field: "firstName", Rule: "required", Message: "firstName is a required field"},
				{Field: "lastName", Rule: "required", Message: "lastName is a required field"},
				{Field: "email", Rule: "required", Message: "email is a required field"},
			},
		},
		{
			name:   "short first name",
			values: model.FieldValues{FirstName: "Four", LastName: "Hawaii", Email: "email@email.com"},
			want: validation.Violations{
				{Field: "firstName", Rule: "minLength", Message: "firstName must be at least 5 characters"},
			},
		},
		{
			name:   "bad email shape",
			values: model.FieldValues{FirstName: "Fiveo", LastName: "Hawaii", Email: "notaproperemail"},
			want: validation.Violations{
				{Field: "email", Rule: "format", Message: "email must be a valid email address"},
			},
		},
		{
			name:   "whitespace counts as missing",
			values: model.FieldValues{FirstName: "Fiveo", LastName: "   ", Email: "email@email.com"},
			want: validation.Violations{
				{Field: "lastName", Rule: "required", Message: "lastName is a required field"},
			},
		},
		{
			name:   "valid without message",
			values: model.FieldValues{FirstName: "Fiveo", LastName: "Hawaii", Email: "email@email.com"},
		},
		{
			name:   "multibyte names count runes",
			values: model.FieldValues{FirstName: "Zoë Ö", LastName: "Ñ", Email: "zoe@example.org"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := v.Validate(contactForm(), tc.values)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("violations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_CustomMessages(t *testing.T) {
	v := validation.New(validation.WithMessages(validation.Messages{
		Required: "please fill in {field}",
	}))

	got := v.Validate(contactForm(), model.FieldValues{FirstName: "abc"})
	want := []string{
		"firstName must be at least 5 characters",
		"please fill in lastName",
		"please fill in email",
	}
	if diff := cmp.Diff(want, got.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_PlainTextMessages(t *testing.T) {
	v := validation.New(validation.WithMessages(validation.Messages{
		Required:  "Please fill this in",
		MinLength: "Too short",
		Email:     "100% wrong: {field}",
	}))

	got := v.Validate(contactForm(), model.FieldValues{FirstName: "abc", Email: "nope"})
	want := []string{
		"Too short",
		"Please fill this in",
		"100% wrong: email",
	}
	if diff := cmp.Diff(want, got.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RequiredWithoutExplicitRule(t *testing.T) {
	field := model.Field{Name: model.FieldLastName, Required: true}
	got, ok := validation.New().ValidateField(field, "\t ")
	if !ok {
		t.Fatalf("expected required violation")
	}
	if got.Rule != model.ValidationRuleRequired || got.Message != "lastName is a required field" {
		t.Fatalf("unexpected violation %+v", got)
	}
}

func TestMessages_Check(t *testing.T) {
	if err := validation.DefaultMessages().Check(); err != nil {
		t.Fatalf("default messages should pass: %v", err)
	}
	if err := (validation.Messages{Required: "Please fill this in"}).Check(); err != nil {
		t.Fatalf("plain text should pass: %v", err)
	}
	if err := (validation.Messages{Required: "{field} needs {min}"}).Check(); err == nil {
		t.Fatalf("expected error for {min} outside min_length")
	}
	if err := (validation.Messages{Email: "{name} is wrong"}).Check(); err == nil {
		t.Fatalf("expected error for unknown placeholder")
	}
}

func TestIsEmail(t *testing.T) {
	valid := []string{"email@email.com", "a.b+c@sub.example.co", "bluebill1049@hotmail.com"}
	invalid := []string{"notaproperemail", "@example.com", "user@", "two@@example.com", "spaces in@example.com"}

	for _, value := range valid {
		if !validation.IsEmail(value) {
			t.Errorf("expected %q to be valid", value)
		}
	}
	for _, value := range invalid {
		if validation.IsEmail(value) {
			t.Errorf("expected %q to be invalid", value)
		}
	}
}

func TestViolations_Helpers(t *testing.T) {
	violations := validation.Violations{
		{Field: "firstName", Message: "a"},
		{Field: "email", Message: "b"},
	}

	if _, ok := violations.For("email"); !ok {
		t.Fatalf("expected email violation")
	}
	filtered := violations.Filter(func(field string) bool { return field == "firstName" })
	if len(filtered) != 1 || filtered[0].Field != "firstName" {
		t.Fatalf("unexpected filter result %+v", filtered)
	}
	if diff := cmp.Diff(map[string][]string{"firstName": {"a"}, "email": {"b"}}, violations.ByField()); diff != "" {
		t.Fatalf("by field mismatch (-want +got):\n%s", diff)
	}
}
