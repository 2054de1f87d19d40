package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName turns "emergency_contact_phone" into "Emergency Contact Phone".
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}

func RequiredField(field string) *AppError {
	return New(CodeValidation, field+" is required", http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeValidation, field+" is invalid", http.StatusBadRequest)
}

// MapValidationError converts a gin binding error into a 400 naming the first
// offending field. Anything that is not a validator error (malformed JSON,
// wrong types) becomes a generic invalid input error.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		field := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(field)
		default:
			return InvalidField(field)
		}
	}

	return ErrInvalidInput.WithCause(err)
}

// MapBindError behaves like MapValidationError, except that a missing
// required field is reported with the resource specific message in missing.
func MapBindError(err error, missing *AppError) error {
	// field decoders may already report a domain error
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var errs validator.ValidationErrors
	if missing != nil && errors.As(err, &errs) {
		for _, e := range errs {
			if e.Tag() == "required" {
				return missing
			}
		}
	}
	return MapValidationError(err)
}
