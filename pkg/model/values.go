package model

import (
	"errors"
	"fmt"
	"net/url"
)

// Field names accepted by FieldValues.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldMessage   = "message"
)

// ErrUnknownField is returned when a value targets a field FieldValues does
// not carry.
var ErrUnknownField = errors.New("model: unknown field")

// FieldNames lists the contact fields in their canonical order.
func FieldNames() []string {
	return []string{FieldFirstName, FieldLastName, FieldEmail, FieldMessage}
}

// FieldValues holds the live (or submitted) contents of the four inputs.
type FieldValues struct {
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Email     string `json:"email" yaml:"email"`
	Message   string `json:"message" yaml:"message"`
}

// Get returns the value stored for name.
func (v FieldValues) Get(name string) (string, bool) {
	switch name {
	case FieldFirstName:
		return v.FirstName, true
	case FieldLastName:
		return v.LastName, true
	case FieldEmail:
		return v.Email, true
	case FieldMessage:
		return v.Message, true
	default:
		return "", false
	}
}

// Set stores value under name.
func (v *FieldValues) Set(name, value string) error {
	switch name {
	case FieldFirstName:
		v.FirstName = value
	case FieldLastName:
		v.LastName = value
	case FieldEmail:
		v.Email = value
	case FieldMessage:
		v.Message = value
	default:
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	return nil
}

// Map returns the values keyed by field name.
func (v FieldValues) Map() map[string]string {
	return map[string]string{
		FieldFirstName: v.FirstName,
		FieldLastName:  v.LastName,
		FieldEmail:     v.Email,
		FieldMessage:   v.Message,
	}
}

// URLValues encodes the values for form-urlencoded payloads.
func (v FieldValues) URLValues() url.Values {
	out := url.Values{}
	for _, name := range FieldNames() {
		value, _ := v.Get(name)
		out.Set(name, value)
	}
	return out
}

// ValuesFromMap builds FieldValues from a map, ignoring unknown keys.
func ValuesFromMap(in map[string]string) FieldValues {
	var out FieldValues
	for key, value := range in {
		_ = out.Set(key, value)
	}
	return out
}
