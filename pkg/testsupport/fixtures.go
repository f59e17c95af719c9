package testsupport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/internal/openapi/parser"
	pkgmodel "github.com/goliatone/go-contactform/pkg/model"
	pkgopenapi "github.com/goliatone/go-contactform/pkg/openapi"
)

// ContactForm builds the form model from the embedded contact document.
// Testing helpers fail the test on error to keep behaviour tests concise.
func ContactForm(t testing.TB) pkgmodel.FormModel {
	t.Helper()

	form, err := LoadContactForm(context.Background(), pkgopenapi.DefaultDocument())
	if err != nil {
		t.Fatalf("load contact form: %v", err)
	}
	return form
}

// LoadContactForm parses doc and builds the default contact operation
// without requiring testing.T.
func LoadContactForm(ctx context.Context, doc pkgopenapi.Document) (pkgmodel.FormModel, error) {
	ops, err := parser.New(pkgopenapi.NewParserOptions()).Operations(ctx, doc)
	if err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("testsupport: parse document: %w", err)
	}
	op, ok := ops[pkgopenapi.DefaultOperationID]
	if !ok {
		return pkgmodel.FormModel{}, fmt.Errorf("testsupport: operation %q not found", pkgopenapi.DefaultOperationID)
	}
	return pkgmodel.NewBuilder().Build(op)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t testing.TB, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
