// Package server provides the HTTP API for the ATS analyzer.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/ats-analyzer/internal/report"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrBodyTooLarge indicates the request body exceeded the configured limit.
type ErrBodyTooLarge struct {
	Limit int64
}

func (e *ErrBodyTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation   *ErrValidation
		tooLarge     *ErrBodyTooLarge
		formatErr    *report.FormatError
		fieldErrors  validator.ValidationErrors
		maxBytesErrs *http.MaxBytesError
	)

	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &validation), errors.As(err, &fieldErrors), errors.As(err, &formatErr):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge), errors.As(err, &maxBytesErrs):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts the first validator failure into an ErrValidation
// naming the JSON field.
func validationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err
	}

	fe := fieldErrors[0]
	var message string
	switch fe.Tag() {
	case "notblank", "required":
		message = "is required"
	case "min":
		message = fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	case "max":
		message = fmt.Sprintf("must contain at most %s item(s)", fe.Param())
	default:
		message = fmt.Sprintf("failed %q check", fe.Tag())
	}
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	return &ErrValidation{Field: field, Message: message}
}
