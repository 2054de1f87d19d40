package usererrors

import (
	"net/http"

	"hr-portal/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	// Duplicate e-mail is a client mistake, reported as 400 rather than 409.
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Email already exists",
		http.StatusBadRequest,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user id",
		http.StatusBadRequest,
	)

	ErrCreateFieldsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Name, email, and password are required",
		http.StatusBadRequest,
	)

	ErrUpdateFieldsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Name and email are required",
		http.StatusBadRequest,
	)

	ErrLoginFieldsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Email and password are required fields",
		http.StatusBadRequest,
	)

	// Same error for unknown e-mail and wrong password.
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password",
		http.StatusUnauthorized,
	)
)
