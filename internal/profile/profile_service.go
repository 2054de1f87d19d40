package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	profileerrors "hr-portal/internal/profile/errors"
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/contextutil"
	"hr-portal/internal/shared/dateutil"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=profile_service.go -destination=mock/profile_service_mock.go -package=mock
type Service interface {
	GetByUser(ctx context.Context, userID uint) (*ProfileResponse, error)
	Upsert(ctx context.Context, req UpsertProfileRequest) (ProfileResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("profile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profile.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) ensureUser(ctx context.Context, userID uint) error {
	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return apperror.ErrInternal.WithCause(err)
	}
	if !exists {
		return profileerrors.ErrUserNotFound
	}
	return nil
}

func (s *service) GetByUser(ctx context.Context, userID uint) (*ProfileResponse, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.ErrInternal.WithCause(err)
	}
	if p == nil {
		return nil, nil
	}

	res := mapProfileToResponse(p)
	return &res, nil
}

func (s *service) Upsert(ctx context.Context, req UpsertProfileRequest) (ProfileResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	var dob *time.Time
	if v := req.DateOfBirth.Value; req.DateOfBirth.Set && v != nil && strings.TrimSpace(*v) != "" {
		parsed, err := dateutil.Parse(*v)
		if err != nil {
			return ProfileResponse{}, profileerrors.ErrInvalidDateFormat
		}
		dob = &parsed
	}

	if err := s.ensureUser(ctx, req.UserID); err != nil {
		return ProfileResponse{}, err
	}

	p := &Profile{UserID: req.UserID}
	columns := make([]string, 0, len(updatableColumns))
	set := func(column string, value *string, field *string) {
		if value == nil {
			return
		}
		*field = strings.TrimSpace(*value)
		columns = append(columns, column)
	}
	set("phone", req.Phone, &p.Phone)
	set("address", req.Address, &p.Address)
	set("city", req.City, &p.City)
	set("state", req.State, &p.State)
	set("country", req.Country, &p.Country)
	set("postal_code", req.PostalCode, &p.PostalCode)
	set("emergency_contact_name", req.EmergencyContactName, &p.EmergencyContactName)
	set("emergency_contact_phone", req.EmergencyContactPhone, &p.EmergencyContactPhone)
	// explicit null or "" clears the date
	if req.DateOfBirth.Set {
		p.DateOfBirth = dob
		columns = append(columns, "date_of_birth")
	}

	if err := s.repo.Upsert(ctx, p, columns); err != nil {
		s.logger.Error("upsert profile failed",
			zap.String("request_id", rid),
			zap.Uint("user_id", req.UserID),
			zap.Error(err),
		)
		return ProfileResponse{}, mapRepositoryError(err)
	}

	saved, err := s.repo.FindByUserID(ctx, req.UserID)
	if err != nil {
		return ProfileResponse{}, apperror.ErrInternal.WithCause(err)
	}
	if saved == nil {
		saved = p
	}

	s.logger.Info("profile saved", zap.String("request_id", rid), zap.Uint("user_id", req.UserID))
	return mapProfileToResponse(saved), nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return profileerrors.ErrUserNotFound.WithCause(err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return profileerrors.ErrUserNotFound.WithCause(err)
	}
	return apperror.ErrInternal.WithCause(err)
}

func mapProfileToResponse(p *Profile) ProfileResponse {
	res := ProfileResponse{
		ID:                    p.ID,
		UserID:                p.UserID,
		Phone:                 p.Phone,
		Address:               p.Address,
		City:                  p.City,
		State:                 p.State,
		Country:               p.Country,
		PostalCode:            p.PostalCode,
		EmergencyContactName:  p.EmergencyContactName,
		EmergencyContactPhone: p.EmergencyContactPhone,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
	if p.DateOfBirth != nil {
		dob := dateutil.Format(*p.DateOfBirth)
		res.DateOfBirth = &dob
	}
	return res
}
