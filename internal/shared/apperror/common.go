package apperror

import "net/http"

var (
	// ErrInternal is the only message callers ever see for unexpected failures.
	ErrInternal = New(
		CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	)

	// ErrInvalidInput backs binding failures that validator cannot describe,
	// such as malformed JSON.
	ErrInvalidInput = New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)

	ErrTooManyRequests = New(
		CodeTooManyRequests,
		"Too many requests",
		http.StatusTooManyRequests,
	)
)
