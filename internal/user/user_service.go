package user

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"hr-portal/internal/auth"
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/contextutil"
	usererrors "hr-portal/internal/user/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	UsersCacheKey = "users:all"
	usersCacheTTL = 10 * time.Minute
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id uint) (UserResponse, error)
	Update(ctx context.Context, id uint, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id uint) error
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}

type TokenIssuer interface {
	IssueAccessToken(userID uint, email string) (auth.Token, error)
}

type service struct {
	repo   Repository
	tokens TokenIssuer
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService wires the user service. rdb may be nil, in which case the user
// list is always read from the database.
func NewService(repo Repository, tokens TokenIssuer, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		repo:   repo,
		tokens: tokens,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	email := strings.TrimSpace(req.Email)
	s.logger.Debug("create user requested",
		zap.String("request_id", rid),
		zap.String("email", email),
	)

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create user hash password failed", zap.Error(err))
		return UserResponse{}, apperror.ErrInternal.WithCause(err)
	}

	u := &User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashed),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, usererrors.ErrEmailAlreadyExists) {
			s.logger.Warn("create user duplicate email", zap.String("request_id", rid), zap.String("email", email))
		} else {
			s.logger.Error("create user persist failed", zap.String("request_id", rid), zap.Error(err))
		}
		return UserResponse{}, mapped
	}

	s.invalidateListCache(ctx)
	s.logger.Info("create user success",
		zap.String("request_id", rid),
		zap.Uint("user_id", u.ID),
	)

	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, UsersCacheKey).Result(); err == nil {
			var resp []UserResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("user list cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(UsersCacheKey, func() (interface{}, error) {
		users, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(users)
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, UsersCacheKey, data, usersCacheTTL).Err(); err != nil {
					s.logger.Warn("user list cache write failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get all users failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return v.([]UserResponse), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get user failed", zap.Uint("user_id", id), zap.Error(err))
		}
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateUserRequest) (UserResponse, error) {
	s.logger.Debug("update user requested", zap.Uint("user_id", id))

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	u.Name = strings.TrimSpace(req.Name)
	u.Email = strings.TrimSpace(req.Email)
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		mapped := mapRepositoryError(err)
		if apperror.IsInternal(mapped) {
			s.logger.Error("update user persist failed", zap.Uint("user_id", id), zap.Error(err))
		}
		return UserResponse{}, mapped
	}

	s.invalidateListCache(ctx)
	s.logger.Info("update user success", zap.Uint("user_id", id))
	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		mapped := mapRepositoryError(err)
		if apperror.IsInternal(mapped) {
			s.logger.Error("delete user failed", zap.Uint("user_id", id), zap.Error(err))
		}
		return mapped
	}

	s.invalidateListCache(ctx)
	s.logger.Info("delete user success", zap.Uint("user_id", id))
	return nil
}

// Login never writes. Unknown e-mail and wrong password produce the same
// error so callers cannot discover which addresses are registered.
func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	email := strings.TrimSpace(req.Email)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login unknown email")
			return LoginResponse{}, usererrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return LoginResponse{}, apperror.ErrInternal.WithCause(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		s.logger.Warn("login wrong password", zap.Uint("user_id", u.ID))
		return LoginResponse{}, usererrors.ErrInvalidCredentials
	}

	resp := LoginResponse{UserResponse: mapToResponse(*u), Role: auth.RoleEmployee}
	if s.tokens != nil {
		tok, err := s.tokens.IssueAccessToken(u.ID, u.Email)
		if err != nil {
			s.logger.Error("login issue token failed", zap.Uint("user_id", u.ID), zap.Error(err))
			return LoginResponse{}, apperror.ErrInternal.WithCause(err)
		}
		resp.AccessToken = tok.AccessToken
		resp.Role = tok.Role
		resp.ExpiresAt = tok.ExpiresAt
	}

	s.logger.Info("login success", zap.Uint("user_id", u.ID))
	return resp, nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, UsersCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate user list cache",
			zap.String("key", UsersCacheKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func mapToListResponse(users []User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp
}
