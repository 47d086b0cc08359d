package web

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// BindingErrorMsg converts a gin binding error into a message for the client.
func BindingErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + GetErrorMsg(field)
	}

	return "malformed request"
}
