package timesheet

import (
	"errors"

	"hr-portal/internal/shared/apperror"
	timesheeterrors "hr-portal/internal/timesheet/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timesheeterrors.ErrTimesheetNotFound
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return timesheeterrors.ErrUserNotFound.WithCause(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case foreignKeyViolation:
			return timesheeterrors.ErrUserNotFound.WithCause(err)
		case checkViolation:
			return timesheeterrors.ErrInvalidHours.WithCause(err)
		}
	}

	return apperror.ErrInternal.WithCause(err)
}
