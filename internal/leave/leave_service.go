package leave

import (
	"context"
	"strconv"
	"strings"
	"time"

	"hr-portal/internal/domain"
	"hr-portal/internal/events"
	leaveerrors "hr-portal/internal/leave/errors"
	"hr-portal/internal/messaging/kafka"
	"hr-portal/internal/shared/contextutil"
	"hr-portal/internal/shared/dateutil"
	"hr-portal/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)
	GetByUser(ctx context.Context, userID uint) ([]LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id uint) (LeaveResponse, error)
	UpdateStatus(ctx context.Context, id uint, req UpdateStatusRequest) (LeaveResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

// NewService wires the leave service. outbox may be nil, in which case
// status changes are not published.
func NewService(db *gorm.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		logger: l,
	}
}

func (s *service) Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("apply leave requested",
		zap.String("request_id", rid),
		zap.Uint("user_id", req.UserID),
		zap.String("leave_type", req.LeaveType),
	)

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrApplyFieldsRequired
	}

	leaveType, ok := ParseType(req.LeaveType)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	start, err := dateutil.Parse(req.StartDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := dateutil.Parse(req.EndDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	if !start.Before(end) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	l := &Leave{
		UserID:    req.UserID,
		LeaveType: leaveType,
		StartDate: start,
		EndDate:   end,
		Reason:    reason,
		Days:      dateutil.InclusiveDays(start, end),
		Status:    StatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		exists, err := qtx.UserExists(ctx, req.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return leaveerrors.ErrUserNotFound
		}

		return qtx.Create(ctx, l)
	})
	if err != nil {
		mapped := mapRepositoryError(err)
		s.logger.Warn("apply leave failed",
			zap.String("request_id", rid),
			zap.Uint("user_id", req.UserID),
			zap.Error(err),
		)
		return LeaveResponse{}, mapped
	}

	s.logger.Info("leave applied",
		zap.String("request_id", rid),
		zap.Uint("leave_id", l.ID),
		zap.Int("days", l.Days),
	)
	return mapLeaveToResponse(l), nil
}

func (s *service) GetByUser(ctx context.Context, userID uint) ([]LeaveResponse, error) {
	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if !exists {
		return nil, leaveerrors.ErrUserNotFound
	}

	leaves, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapLeavesToResponse(leaves), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapLeavesToResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	return mapLeaveToResponse(l), nil
}

func (s *service) UpdateStatus(ctx context.Context, id uint, req UpdateStatusRequest) (LeaveResponse, error) {
	status, ok := ParseStatus(req.Status)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus
	}

	rid := contextutil.GetRequestID(ctx)
	var updated *Leave

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		current, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		previous := current.Status
		current.Status = status
		current.UpdatedAt = time.Now().UTC()
		if err := qtx.UpdateStatus(ctx, current); err != nil {
			return err
		}

		if s.outbox != nil {
			event, err := kafka.NewOutboxEvent(
				rid,
				domain.ResourceLeave,
				strconv.FormatUint(uint64(current.ID), 10),
				events.LeaveStatusChangedType,
				events.LeaveStatusChangedTopic,
				events.LeaveStatusChangedEvent{
					EventType:      events.LeaveStatusChangedType,
					LeaveID:        current.ID,
					UserID:         current.UserID,
					PreviousStatus: string(previous),
					Status:         string(status),
					OccurredAt:     current.UpdatedAt,
				},
			)
			if err != nil {
				return err
			}
			if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
				return err
			}
		}

		updated = current
		return nil
	})
	if err != nil {
		s.logger.Warn("update leave status failed",
			zap.String("request_id", rid),
			zap.Uint("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("leave status updated",
		zap.String("request_id", rid),
		zap.Uint("leave_id", id),
		zap.String("status", string(status)),
	)
	return mapLeaveToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	rid := contextutil.GetRequestID(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		current, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !current.Status.Deletable() {
			return leaveerrors.ErrLeaveNotDeletable
		}

		return qtx.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warn("delete leave failed",
			zap.String("request_id", rid),
			zap.Uint("leave_id", id),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}

	s.logger.Info("leave deleted", zap.String("request_id", rid), zap.Uint("leave_id", id))
	return nil
}

func mapLeavesToResponse(leaves []Leave) []LeaveResponse {
	res := make([]LeaveResponse, 0, len(leaves))
	for i := range leaves {
		res = append(res, mapLeaveToResponse(&leaves[i]))
	}
	return res
}

func mapLeaveToResponse(l *Leave) LeaveResponse {
	return LeaveResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		LeaveType: string(l.LeaveType),
		StartDate: dateutil.Format(l.StartDate),
		EndDate:   dateutil.Format(l.EndDate),
		Reason:    l.Reason,
		Days:      l.Days,
		Status:    string(l.Status),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
		User:      user.ToSummary(l.User),
	}
}
