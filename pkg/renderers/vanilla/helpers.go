package vanilla

import (
	"strings"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla/components"
)

func componentControlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "fg-" + trimmed
}

func componentLabelID(name string) string {
	controlID := componentControlID(name)
	if controlID == "" {
		return ""
	}
	return controlID + "-label"
}

func componentErrorID(name string) string {
	controlID := componentControlID(name)
	if controlID == "" {
		return ""
	}
	return controlID + "-error"
}

func resolveComponentName(field model.Field) string {
	if field.Type == model.FieldTypeText {
		return components.NameTextarea
	}
	return components.NameInput
}

func inputType(field model.Field) string {
	if field.Type == model.FieldTypeEmail {
		return "email"
	}
	return "text"
}

func formID(form model.FormModel) string {
	if id := strings.TrimSpace(form.OperationID); id != "" {
		return "fg-form-" + id
	}
	return "fg-form"
}
