package vanilla_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/testsupport"
)

func assertGoldenOutline(t *testing.T, state *form.State, name string) {
	t.Helper()
	got := renderScreen(t, state).Outline()

	goldenPath := filepath.Join("testdata", name)
	if testsupport.WriteMaybeGolden(t, goldenPath, []byte(got)) {
		return
	}

	want := testsupport.MustReadGolden(t, goldenPath)
	if diff := testsupport.CompareGolden(string(want), got); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_GoldenEmpty(t *testing.T) {
	assertGoldenOutline(t, newState(t), "form_empty.golden.txt")
}

func TestRenderer_GoldenFailedSubmit(t *testing.T) {
	state := newState(t)
	state.Submit()

	assertGoldenOutline(t, state, "form_failed_submit.golden.txt")
}

func TestRenderer_GoldenSubmitted(t *testing.T) {
	state := newState(t)
	mustType(t, state, model.FieldFirstName, "Fiveo")
	mustType(t, state, model.FieldLastName, "Lastname")
	mustType(t, state, model.FieldEmail, "a@b.com")
	mustType(t, state, model.FieldMessage, "hello <b>")
	if result := state.Submit(); !result.OK {
		t.Fatalf("expected submission to pass, got %v", result.Violations)
	}

	assertGoldenOutline(t, state, "form_submitted.golden.txt")
}
