package openapi

import (
	_ "embed"
)

// DefaultOperationID names the operation inside the embedded document that
// describes the contact form request body.
const DefaultOperationID = "submitContact"

const defaultDocumentName = "contact.openapi.yaml"

//go:embed contact.openapi.yaml
var defaultDocument []byte

// DefaultDocument returns the embedded contact form definition.
func DefaultDocument() Document {
	return MustNewDocument(SourceFromFS(defaultDocumentName), defaultDocument)
}
