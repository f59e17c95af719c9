package openapi

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Source identifies where an OpenAPI document originated so parse errors can
// point back at the file or embedded resource that produced them.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the document origins.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
)

// Document wraps the raw OpenAPI payload and its origin. Exposing this type
// instead of kin-openapi structs keeps the public API decoupled from the
// parser.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// LoadFile reads a JSON or YAML document from disk.
func LoadFile(path string) (Document, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Document{}, errors.New("openapi: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return NewDocument(SourceFromFile(path), data)
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the OpenAPI payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Operation is the subset of OpenAPI operation metadata needed to build the
// contact form model.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	RequestBody Schema
}

// NewOperation validates the identifying triple of an operation.
func NewOperation(id, method, path string, body Schema) (Operation, error) {
	switch {
	case strings.TrimSpace(id) == "":
		return Operation{}, errors.New("openapi: operation id is required")
	case strings.TrimSpace(method) == "":
		return Operation{}, fmt.Errorf("openapi: operation %q: method is required", id)
	case strings.TrimSpace(path) == "":
		return Operation{}, fmt.Errorf("openapi: operation %q: path is required", id)
	}
	return Operation{
		ID:          id,
		Method:      strings.ToUpper(method),
		Path:        path,
		RequestBody: body,
	}, nil
}

// MustNewOperation panics when NewOperation fails.
func MustNewOperation(id, method, path string, body Schema) Operation {
	op, err := NewOperation(id, method, path, body)
	if err != nil {
		panic(err)
	}
	return op
}

// Schema captures the request-body constraints the form understands.
// Order carries the x-field-order extension so fields render in the
// declared sequence instead of map order.
type Schema struct {
	Type        string
	Format      string
	Title       string
	Description string
	Required    []string
	MinLength   *int
	Properties  map[string]Schema
	Order       []string
	Extensions  map[string]any
}
