package timesheeterrors

import (
	"net/http"

	"hr-portal/internal/shared/apperror"
)

var (
	ErrSubmitFieldsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"user_id, date, project, and hours_worked are required",
		http.StatusBadRequest,
	)
	ErrInvalidHours = apperror.New(
		apperror.CodeInvalidInput,
		"hours_worked must be between 0 and 24",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format",
		http.StatusBadRequest,
	)
	ErrRangeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"start_date and end_date are required",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid status",
		http.StatusBadRequest,
	)
	ErrInvalidTimesheetID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid timesheet id",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user id",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrTimesheetNotFound = apperror.New(
		apperror.CodeNotFound,
		"Timesheet not found",
		http.StatusNotFound,
	)
	ErrTimesheetNotDeletable = apperror.New(
		apperror.CodeInvalidState,
		"Can only delete submitted timesheets",
		http.StatusBadRequest,
	)
)
