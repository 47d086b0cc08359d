// Package web defines common components for a web application.
package web

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/go-petr/funds-transfer/pkg/errorspkg"
)

// Response holds the common response type for all APIs.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Error wraps a given err into json friendly struct.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// StatusCode maps the kind of err to the http status returned to the client.
func StatusCode(err error) int {
	switch errorspkg.KindOf(err) {
	case errorspkg.KindNotFound:
		return http.StatusNotFound
	case errorspkg.KindInvalidRequest:
		return http.StatusBadRequest
	case errorspkg.KindInsufficientFunds, errorspkg.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMsg returns the message suffix for the failed binding of the field.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " field is required"
	case "currency":
		return " is not supported"
	case "uuid":
		return " must be a valid UUID"
	}

	return " is invalid"
}

// Fail returns the status and the body for err.
//
// Errors without a kind carry internal detail, they are reported as errorspkg.ErrInternal.
func Fail(err error) (int, Response) {
	if errorspkg.KindOf(err) == errorspkg.KindUnknown {
		return http.StatusInternalServerError, Error(errorspkg.ErrInternal)
	}

	return StatusCode(err), Error(err)
}
