// Package orchestrator wires the OpenAPI parser, form model builder, theme
// selection and renderer registry into a single call that turns a contact
// document and a form state into rendered output.
package orchestrator
