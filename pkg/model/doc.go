// Package model defines the typed form model consumed by renderers and the
// FieldValues holder shared by the form state, validator and renderers.
// Builders reside in internal/model but return the types defined here.
// Validation rules are stored in evaluation order (required, minLength,
// format) so the validator can stop at the first failing rule per field.
package model
