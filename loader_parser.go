package contactform

import (
	internalParser "github.com/goliatone/go-contactform/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-contactform/pkg/openapi"
)

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}
