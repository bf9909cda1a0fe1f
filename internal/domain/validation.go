package domain

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/bruinrecruit/recruitment-service/pkg/errorutil"
)

var validate = validator.New()

var fieldLabels = map[string]string{
	"Email":        "email",
	"PasswordHash": "password",
	"Name":         "name",
	"StartDate":    "startDate",
	"EndDate":      "endDate",
}

// Validate checks struct tags on an entity before it is persisted and reports
// failures as a 422 with one message per field.
func Validate(entity any) error {
	err := validate.Struct(entity)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	messages := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		label, ok := fieldLabels[fieldErr.Field()]
		if !ok {
			label = fieldErr.Field()
		}
		switch fieldErr.Tag() {
		case "required":
			messages[label] = "The " + label + " is a required field"
		case "email":
			messages[label] = "The email you entered is not valid"
		case "oneof":
			messages[label] = "The " + label + " must be one of " + fieldErr.Param()
		default:
			messages[label] = "The " + label + " is invalid"
		}
	}
	return errorutil.NewUnprocessable(messages)
}
