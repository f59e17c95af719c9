package model

import (
	"github.com/goliatone/go-contactform/internal/model"
	pkgopenapi "github.com/goliatone/go-contactform/pkg/openapi"
)

// Builder converts OpenAPI operations into form models.
type Builder interface {
	Build(op pkgopenapi.Operation) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler func(string) string
	lenient bool
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithUnknownFields lets the builder accept properties FieldValues cannot
// hold. Values for those fields are always empty.
func WithUnknownFields() BuilderOption {
	return func(opts *builderOptions) {
		opts.lenient = true
	}
}

// NewBuilder returns a Builder backed by the internal implementation. By
// default only the four contact fields are accepted.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	internalOpts := model.Options{}
	if cfg.labeler != nil {
		internalOpts.Labeler = cfg.labeler
	}
	if !cfg.lenient {
		internalOpts.Known = FieldNames()
	}
	return model.New(internalOpts)
}
