package openapi

import "context"

// Parser normalises OpenAPI documents into operation wrappers keyed by
// operationId.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// ParserOptions exposes toggles for the kin-openapi backed parser.
type ParserOptions struct {
	// ValidateDocument runs the OpenAPI validator after loading. Defaults to
	// true; disable for quick experiments with partial documents.
	ValidateDocument bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithDocumentValidation toggles OpenAPI document validation.
func WithDocumentValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ValidateDocument = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{ValidateDocument: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
