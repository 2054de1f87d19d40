package timesheet

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"hr-portal/internal/domain"
	"hr-portal/internal/events"
	"hr-portal/internal/messaging/kafka"
	"hr-portal/internal/shared/contextutil"
	"hr-portal/internal/shared/dateutil"
	timesheeterrors "hr-portal/internal/timesheet/errors"
	"hr-portal/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req SubmitTimesheetRequest) (TimesheetResponse, error)
	GetByUser(ctx context.Context, userID uint) ([]TimesheetResponse, error)
	GetAll(ctx context.Context) ([]TimesheetResponse, error)
	GetByID(ctx context.Context, id uint) (TimesheetResponse, error)
	GetByRange(ctx context.Context, q RangeQuery) ([]TimesheetResponse, error)
	UpdateStatus(ctx context.Context, id uint, req UpdateStatusRequest) (TimesheetResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		logger: l,
	}
}

// roundHours keeps two decimals, matching the numeric(4,2) column.
func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

func (s *service) Submit(ctx context.Context, req SubmitTimesheetRequest) (TimesheetResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	project := strings.TrimSpace(req.Project)
	if req.HoursWorked == nil || project == "" {
		return TimesheetResponse{}, timesheeterrors.ErrSubmitFieldsRequired
	}
	hours := float64(*req.HoursWorked)
	if math.IsNaN(hours) || hours < MinHours || hours > MaxHours {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidHours
	}

	date, err := dateutil.Parse(req.Date)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidDateFormat
	}

	var description *string
	if req.Description != nil {
		if d := strings.TrimSpace(*req.Description); d != "" {
			description = &d
		}
	}

	ts := &Timesheet{
		UserID:      req.UserID,
		Date:        date,
		Project:     project,
		HoursWorked: roundHours(hours),
		Description: description,
		Status:      StatusSubmitted,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		exists, err := qtx.UserExists(ctx, req.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return timesheeterrors.ErrUserNotFound
		}

		return qtx.Create(ctx, ts)
	})
	if err != nil {
		s.logger.Warn("submit timesheet failed",
			zap.String("request_id", rid),
			zap.Uint("user_id", req.UserID),
			zap.Error(err),
		)
		return TimesheetResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("timesheet submitted",
		zap.String("request_id", rid),
		zap.Uint("timesheet_id", ts.ID),
		zap.Float64("hours_worked", ts.HoursWorked),
	)
	return mapTimesheetToResponse(ts), nil
}

func (s *service) GetByUser(ctx context.Context, userID uint) ([]TimesheetResponse, error) {
	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if !exists {
		return nil, timesheeterrors.ErrUserNotFound
	}

	timesheets, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapTimesheetsToResponse(timesheets), nil
}

func (s *service) GetAll(ctx context.Context) ([]TimesheetResponse, error) {
	timesheets, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapTimesheetsToResponse(timesheets), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (TimesheetResponse, error) {
	ts, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TimesheetResponse{}, mapRepositoryError(err)
	}
	return mapTimesheetToResponse(ts), nil
}

func (s *service) GetByRange(ctx context.Context, q RangeQuery) ([]TimesheetResponse, error) {
	if strings.TrimSpace(q.StartDate) == "" || strings.TrimSpace(q.EndDate) == "" {
		return nil, timesheeterrors.ErrRangeRequired
	}

	start, err := dateutil.Parse(q.StartDate)
	if err != nil {
		return nil, timesheeterrors.ErrInvalidDateFormat
	}
	end, err := dateutil.Parse(q.EndDate)
	if err != nil {
		return nil, timesheeterrors.ErrInvalidDateFormat
	}

	timesheets, err := s.repo.FindByRange(ctx, start, end, q.UserID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapTimesheetsToResponse(timesheets), nil
}

func (s *service) UpdateStatus(ctx context.Context, id uint, req UpdateStatusRequest) (TimesheetResponse, error) {
	status, ok := ParseStatus(req.Status)
	if !ok {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidStatus
	}

	rid := contextutil.GetRequestID(ctx)
	var updated *Timesheet

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
				domain.ResourceTimesheet,
				strconv.FormatUint(uint64(current.ID), 10),
				events.TimesheetStatusChangedType,
				events.TimesheetStatusChangedTopic,
				events.TimesheetStatusChangedEvent{
					EventType:      events.TimesheetStatusChangedType,
					TimesheetID:    current.ID,
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
		s.logger.Warn("update timesheet status failed",
			zap.String("request_id", rid),
			zap.Uint("timesheet_id", id),
			zap.Error(err),
		)
		return TimesheetResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("timesheet status updated",
		zap.String("request_id", rid),
		zap.Uint("timesheet_id", id),
		zap.String("status", string(status)),
	)
	return mapTimesheetToResponse(updated), nil
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
			return timesheeterrors.ErrTimesheetNotDeletable
		}

		return qtx.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warn("delete timesheet failed",
			zap.String("request_id", rid),
			zap.Uint("timesheet_id", id),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}

	s.logger.Info("timesheet deleted", zap.String("request_id", rid), zap.Uint("timesheet_id", id))
	return nil
}

func mapTimesheetsToResponse(timesheets []Timesheet) []TimesheetResponse {
	res := make([]TimesheetResponse, 0, len(timesheets))
	for i := range timesheets {
		res = append(res, mapTimesheetToResponse(&timesheets[i]))
	}
	return res
}

func mapTimesheetToResponse(ts *Timesheet) TimesheetResponse {
	return TimesheetResponse{
		ID:          ts.ID,
		UserID:      ts.UserID,
		Date:        dateutil.Format(ts.Date),
		Project:     ts.Project,
		HoursWorked: ts.HoursWorked,
		Description: ts.Description,
		Status:      string(ts.Status),
		CreatedAt:   ts.CreatedAt,
		UpdatedAt:   ts.UpdatedAt,
		User:        user.ToSummary(ts.User),
	}
}
