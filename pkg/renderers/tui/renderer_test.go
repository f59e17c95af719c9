package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	textAreas    []string
	confirm      []bool
	infoMessages []string
	prompts      []string
	inputPos     int
	textPos      int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func contactView(t *testing.T) render.View {
	t.Helper()
	return render.View{Form: testsupport.ContactForm(t)}
}

func TestRenderer_PromptsInOrderAndEmitsJSON(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Fiveo", "Smith", "fiveo@example.com"},
		textAreas: []string{"Hi"},
	}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := renderer.Render(context.Background(), contactView(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `{"firstName":"Fiveo","lastName":"Smith","email":"fiveo@example.com","message":"Hi"}`
	if string(out) != want {
		t.Fatalf("unexpected output:\n got %s\nwant %s", out, want)
	}
	if diff := cmp.Diff([]string{"First Name*", "Last Name*", "Email*", "Message"}, driver.prompts); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Contact Form"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_ReasksUntilValid(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Four", "Fiveo", "", "Smith", "notaproperemail", "fiveo@example.com"},
		textAreas: []string{""},
	}
	renderer, err := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}), WithOutputFormat(OutputFormatPrettyText))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := renderer.Render(context.Background(), contactView(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	wantInfo := []string{
		"Contact Form",
		"! firstName must be at least 5 characters",
		"! lastName is a required field",
		"! email must be a valid email address",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}

	wantOut := "First Name: Fiveo\nLast Name: Smith\nEmail: fiveo@example.com\n"
	if string(out) != wantOut {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRenderer_FormOutputAndDefaults(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Fiveo", "Smith", "a@b.co"},
		textAreas: []string{"x y"},
	}
	renderer, err := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatFormURLEncoded))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if renderer.ContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}

	out, err := renderer.Render(context.Background(), contactView(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "email=a%40b.co&firstName=Fiveo&lastName=Smith&message=x+y" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderer_ConfirmDeclined(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Fiveo", "Smith", "a@b.co"},
		textAreas: []string{""},
		confirm:   []bool{false},
	}
	renderer, err := New(WithPromptDriver(driver), WithConfirmSubmit())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	_, err = renderer.Render(context.Background(), contactView(t), render.RenderOptions{})
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
}

func TestRenderer_SubmitTransformer(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Fiveo", "Smith", "a@b.co"},
		textAreas: []string{""},
	}
	renderer, err := New(WithPromptDriver(driver), WithSubmitTransformer(func(v model.FieldValues) (model.FieldValues, error) {
		v.Email = strings.ToUpper(v.Email)
		return v, nil
	}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := renderer.Render(context.Background(), contactView(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `"email":"A@B.CO"`) {
		t.Fatalf("transformer not applied: %s", out)
	}
}

func TestRenderer_PropagatesDriverErrors(t *testing.T) {
	renderer, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := renderer.Render(context.Background(), contactView(t), render.RenderOptions{}); err == nil {
		t.Fatalf("expected driver error")
	}
}

func TestParseOutputFormat(t *testing.T) {
	if got, ok := ParseOutputFormat("pretty"); !ok || got != OutputFormatPrettyText {
		t.Fatalf("expected pretty, got %q %v", got, ok)
	}
	if _, ok := ParseOutputFormat("yaml"); ok {
		t.Fatalf("yaml should be rejected")
	}
}

func TestTranslateSurveyErr_Passthrough(t *testing.T) {
	sentinel := errors.New("boom")
	if got := translateSurveyErr(sentinel); got != sentinel {
		t.Fatalf("expected passthrough, got %v", got)
	}
}
