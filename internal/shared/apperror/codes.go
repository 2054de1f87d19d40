package apperror

// Codes travel in the "code" field of every error body.
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInvalidState    = "INVALID_STATE" // e.g. deleting an approved leave
	CodeTooManyRequests = "TOO_MANY_REQUESTS"

	CodeInternalError = "INTERNAL_ERROR"
)
