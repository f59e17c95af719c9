package render_test

import "github.com/goliatone/go-contactform/pkg/model"

var contactValues = model.FieldValues{
	FirstName: "Fiveo",
	LastName:  "Hawaii",
	Email:     "email@email.com",
}

func contactModel() model.FormModel {
	return model.FormModel{
		Fields: []model.Field{
			{Name: model.FieldFirstName, Label: "First Name", Required: true},
			{Name: model.FieldLastName, Label: "Last Name", Required: true},
			{Name: model.FieldEmail, Label: "Email", Required: true},
			{Name: model.FieldMessage, Label: "Message"},
		},
	}
}
