// Package template defines the template engine seam renderers depend on, with
// a pongo2 backed implementation in the gotemplate subpackage.
package template
