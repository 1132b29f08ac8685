package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nameRegex  = regexp.MustCompile(`^[\p{L}\p{N}\s.'\-_]{2,100}$`)
)

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("email", validateEmail)
	v.RegisterValidation("name", validateName)
}

// validateEmail checks if the email is structurally valid
func validateEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

// validateName checks if the name is valid
func validateName(fl validator.FieldLevel) bool {
	return nameRegex.MatchString(fl.Field().String())
}

// FirstFailedField returns the form name of the first failed field, so the
// frontend can focus it. Binding errors that are not field errors yield "".
func FirstFailedField(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			return fieldToFormName(e.Field())
		}
	}
	return ""
}

func fieldToFormName(field string) string {
	switch field {
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "Subject":
		return "subject"
	case "Message":
		return "message"
	case "Token":
		return "token"
	default:
		return ""
	}
}
