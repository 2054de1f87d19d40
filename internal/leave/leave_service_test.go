package leave_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hr-portal/internal/events"
	"hr-portal/internal/leave"
	leaveerrors "hr-portal/internal/leave/errors"
	"hr-portal/internal/messaging/kafka"
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeRepo struct {
	leaves     map[uint]*leave.Leave
	users      map[uint]bool
	nextID     uint
	findErr    error
	createErr  error
	updated    []leave.Status
	deletedIDs []uint
	txBound    bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		leaves: map[uint]*leave.Leave{},
		users:  map[uint]bool{1: true},
		nextID: 1,
	}
}

func (f *fakeRepo) WithTx(_ *gorm.DB) leave.Repository {
	f.txBound = true
	return f
}

func (f *fakeRepo) Create(_ context.Context, l *leave.Leave) error {
	if f.createErr != nil {
		return f.createErr
	}
	l.ID = f.nextID
	l.CreatedAt = time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
	l.UpdatedAt = l.CreatedAt
	f.nextID++
	cp := *l
	f.leaves[l.ID] = &cp
	return nil
}

func (f *fakeRepo) FindAll(_ context.Context) ([]leave.Leave, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := make([]leave.Leave, 0, len(f.leaves))
	for _, l := range f.leaves {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeRepo) FindAllByUser(_ context.Context, userID uint) ([]leave.Leave, error) {
	out := []leave.Leave{}
	for _, l := range f.leaves {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uint) (*leave.Leave, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	l, ok := f.leaves[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeRepo) FindByIDForUpdate(ctx context.Context, id uint) (*leave.Leave, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeRepo) UpdateStatus(_ context.Context, l *leave.Leave) error {
	f.updated = append(f.updated, l.Status)
	f.leaves[l.ID].Status = l.Status
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uint) error {
	f.deletedIDs = append(f.deletedIDs, id)
	delete(f.leaves, id)
	return nil
}

func (f *fakeRepo) UserExists(_ context.Context, userID uint) (bool, error) {
	return f.users[userID], nil
}

type fakeOutbox struct {
	events    []kafka.OutboxEvent
	createErr error
}

func (f *fakeOutbox) WithTx(_ *gorm.DB) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(_ context.Context, e kafka.OutboxEvent) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.events = append(f.events, e)
	return nil
}
func (f *fakeOutbox) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) { return nil, nil }
func (f *fakeOutbox) MarkSent(context.Context, string) error                        { return nil }
func (f *fakeOutbox) MarkFailed(context.Context, string, string) error              { return nil }
func (f *fakeOutbox) DeleteSentBefore(context.Context, time.Time) (int64, error)    { return 0, nil }

type serviceDeps struct {
	service leave.Service
	repo    *fakeRepo
	outbox  *fakeOutbox
	mock    sqlmock.Sqlmock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo := newFakeRepo()
	outbox := &fakeOutbox{}
	return &serviceDeps{
		service: leave.NewService(gormDB, repo, outbox, zap.NewNop()),
		repo:    repo,
		outbox:  outbox,
		mock:    mock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
		return
	}
	mock.ExpectRollback()
}

func seedLeave(deps *serviceDeps, status leave.Status) uint {
	l := &leave.Leave{
		UserID:    1,
		LeaveType: leave.TypeAnnual,
		StartDate: time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 12, 0, 0, 0, 0, time.UTC),
		Reason:    "Family trip",
		Days:      3,
		Status:    status,
	}
	_ = deps.repo.Create(context.Background(), l)
	return l.ID
}

func TestLeaveService_Apply(t *testing.T) {
	ctx := context.Background()
	valid := leave.ApplyLeaveRequest{
		UserID:    1,
		LeaveType: "Annual Leave",
		StartDate: "2025-12-10",
		EndDate:   "2025-12-12",
		Reason:    "Family trip",
	}

	t.Run("success counts inclusive days and starts pending", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.mock, true)

		res, err := deps.service.Apply(ctx, valid)

		require.NoError(t, err)
		assert.Equal(t, uint(1), res.ID)
		assert.Equal(t, 3, res.Days)
		assert.Equal(t, "Pending", res.Status)
		assert.Equal(t, "2025-12-10", res.StartDate)
		assert.Equal(t, "2025-12-12", res.EndDate)
		assert.True(t, deps.repo.txBound)
		require.NoError(t, deps.mock.ExpectationsWereMet())
	})

	t.Run("success rfc3339 dates", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.mock, true)

		req := valid
		req.StartDate = "2025-12-10T00:00:00Z"
		req.EndDate = "2025-12-11T00:00:00Z"
		res, err := deps.service.Apply(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, 2, res.Days)
	})

	t.Run("negative invalid leave type", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := valid
		req.LeaveType = "Vacation"

		_, err := deps.service.Apply(ctx, req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)
		assert.Empty(t, deps.repo.leaves)
		require.NoError(t, deps.mock.ExpectationsWereMet())
	})

	t.Run("negative blank reason", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := valid
		req.Reason = " \t\n "

		_, err := deps.service.Apply(ctx, req)

		assert.ErrorIs(t, err, leaveerrors.ErrApplyFieldsRequired)
		assert.Empty(t, deps.repo.leaves)
		require.NoError(t, deps.mock.ExpectationsWereMet())
	})

	t.Run("negative end not after start", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := valid
		req.EndDate = req.StartDate

		_, err := deps.service.Apply(ctx, req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative bad date", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := valid
		req.StartDate = "10/12/2025"

		_, err := deps.service.Apply(ctx, req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("negative unknown user rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.mock, false)
		req := valid
		req.UserID = 99

		_, err := deps.service.Apply(ctx, req)

		assert.ErrorIs(t, err, leaveerrors.ErrUserNotFound)
		assert.Empty(t, deps.repo.leaves)
		require.NoError(t, deps.mock.ExpectationsWereMet())
	})

	t.Run("negative repository failure is internal", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.mock, false)
		deps.repo.createErr = errors.New("connection reset")

		_, err := deps.service.Apply(ctx, valid)

		assert.True(t, apperror.IsInternal(err))
	})
}

func TestLeaveService_GetByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		seedLeave(deps, leave.StatusPending)

		res, err := deps.service.GetByUser(ctx, 1)

		require.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("negative unknown user", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetByUser(ctx, 7)

		assert.ErrorIs(t, err, leaveerrors.ErrUserNotFound)
	})
}

func TestLeaveService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success includes user", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := seedLeave(deps, leave.StatusPending)
		deps.repo.leaves[id].User = &user.User{ID: 1, Name: "Jane Doe", Email: "jane@corp.io"}

		res, err := deps.service.GetByID(ctx, id)

		require.NoError(t, err)
		require.NotNil(t, res.User)
		assert.Equal(t, "jane@corp.io", res.User.Email)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetByID(ctx, 404)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success writes outbox event", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := seedLeave(deps, leave.StatusPending)
		expectTx(t, deps.mock, true)

		res, err := deps.service.UpdateStatus(ctx, id, leave.UpdateStatusRequest{Status: "Approved"})

		require.NoError(t, err)
		assert.Equal(t, "Approved", res.Status)
		assert.Equal(t, []leave.Status{leave.StatusApproved}, deps.repo.updated)

		require.Len(t, deps.outbox.events, 1)
		event := deps.outbox.events[0]
		assert.Equal(t, events.LeaveStatusChangedTopic, event.Topic)
		assert.Equal(t, "1", event.AggregateID)

		var payload events.LeaveStatusChangedEvent
		require.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, "Pending", payload.PreviousStatus)
		assert.Equal(t, "Approved", payload.Status)
		require.NoError(t, deps.mock.ExpectationsWereMet())
	})

	t.Run("negative invalid status leaves record untouched", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := seedLeave(deps, leave.StatusPending)

		_, err := deps.service.UpdateStatus(ctx, id, leave.UpdateStatusRequest{Status: "Cancelled"})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatus)
		assert.Equal(t, leave.StatusPending, deps.repo.leaves[id].Status)
		assert.Empty(t, deps.outbox.events)
		require.NoError(t, deps.mock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.mock, false)

		_, err := deps.service.UpdateStatus(ctx, 9, leave.UpdateStatusRequest{Status: "Rejected"})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("negative outbox failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := seedLeave(deps, leave.StatusPending)
		deps.outbox.createErr = errors.New("insert outbox failed")
		expectTx(t, deps.mock, false)

		_, err := deps.service.UpdateStatus(ctx, id, leave.UpdateStatusRequest{Status: "Rejected"})

		assert.True(t, apperror.IsInternal(err))
		require.NoError(t, deps.mock.ExpectationsWereMet())
	})
}

func TestLeaveService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success pending", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := seedLeave(deps, leave.StatusPending)
		expectTx(t, deps.mock, true)

		err := deps.service.Delete(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, []uint{id}, deps.repo.deletedIDs)
		require.NoError(t, deps.mock.ExpectationsWereMet())
	})

	t.Run("negative approved leave persists", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := seedLeave(deps, leave.StatusApproved)
		expectTx(t, deps.mock, false)

		err := deps.service.Delete(ctx, id)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotDeletable)
		assert.Contains(t, deps.repo.leaves, id)
		assert.Empty(t, deps.repo.deletedIDs)
		require.NoError(t, deps.mock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.mock, false)

		err := deps.service.Delete(ctx, 77)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}
