package user

import (
	"errors"
	"strings"

	"hr-portal/internal/shared/apperror"
	usererrors "hr-portal/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return usererrors.ErrEmailAlreadyExists.WithCause(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return usererrors.ErrEmailAlreadyExists.WithCause(err)
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return usererrors.ErrEmailAlreadyExists.WithCause(err)
	}

	return apperror.ErrInternal.WithCause(err)
}
