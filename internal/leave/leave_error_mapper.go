package leave

import (
	"errors"

	leaveerrors "hr-portal/internal/leave/errors"
	"hr-portal/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const foreignKeyViolation = "23503"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return leaveerrors.ErrUserNotFound.WithCause(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return leaveerrors.ErrUserNotFound.WithCause(err)
	}

	return apperror.ErrInternal.WithCause(err)
}
