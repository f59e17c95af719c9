package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/model"
)

func TestFieldValues_SetAndGet(t *testing.T) {
	var values model.FieldValues
	for _, name := range model.FieldNames() {
		if err := values.Set(name, name+"-value"); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}

	want := model.FieldValues{
		FirstName: "firstName-value",
		LastName:  "lastName-value",
		Email:     "email-value",
		Message:   "message-value",
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	if got, ok := values.Get(model.FieldEmail); !ok || got != "email-value" {
		t.Fatalf("get email = %q, %v", got, ok)
	}
}

func TestFieldValues_UnknownField(t *testing.T) {
	var values model.FieldValues
	err := values.Set("phone", "555")
	if !errors.Is(err, model.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, ok := values.Get("phone"); ok {
		t.Fatalf("expected unknown field lookup to fail")
	}
}

func TestValuesFromMap_IgnoresUnknownKeys(t *testing.T) {
	values := model.ValuesFromMap(map[string]string{
		"firstName": "Fiveo",
		"phone":     "555",
	})
	if values.FirstName != "Fiveo" {
		t.Fatalf("expected firstName copied, got %+v", values)
	}
	if got := values.URLValues().Get("firstName"); got != "Fiveo" {
		t.Fatalf("url values firstName = %q", got)
	}
}
