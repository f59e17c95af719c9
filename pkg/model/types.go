package model

import internalmodel "github.com/goliatone/go-contactform/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString = internalmodel.FieldTypeString
	FieldTypeText   = internalmodel.FieldTypeText
	FieldTypeEmail  = internalmodel.FieldTypeEmail
)

const (
	ValidationRuleRequired  = internalmodel.ValidationRuleRequired
	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength
	ValidationRuleFormat    = internalmodel.ValidationRuleFormat
	FormatEmail             = internalmodel.FormatEmail
)

type ValidationRule = internalmodel.ValidationRule
type Field = internalmodel.Field
type FormModel = internalmodel.FormModel
