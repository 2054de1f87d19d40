package timesheet

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, ts *Timesheet) error
	FindAll(ctx context.Context) ([]Timesheet, error)
	FindAllByUser(ctx context.Context, userID uint) ([]Timesheet, error)
	FindByRange(ctx context.Context, start, end time.Time, userID *uint) ([]Timesheet, error)
	FindByID(ctx context.Context, id uint) (*Timesheet, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*Timesheet, error)
	UpdateStatus(ctx context.Context, ts *Timesheet) error
	Delete(ctx context.Context, id uint) error
	UserExists(ctx context.Context, userID uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, ts *Timesheet) error {
	return r.db.WithContext(ctx).Omit("User").Create(ts).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Timesheet, error) {
	var timesheets []Timesheet
	err := r.db.WithContext(ctx).
		Joins("User").
		Order("timesheets.date DESC").
		Find(&timesheets).Error
	return timesheets, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID uint) ([]Timesheet, error) {
	var timesheets []Timesheet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&timesheets).Error
	return timesheets, err
}

func (r *repository) FindByRange(ctx context.Context, start, end time.Time, userID *uint) ([]Timesheet, error) {
	q := r.db.WithContext(ctx).
		Joins("User").
		Where("timesheets.date BETWEEN ? AND ?", start, end)
	if userID != nil {
		q = q.Where("timesheets.user_id = ?", *userID)
	}

	var timesheets []Timesheet
	err := q.Order("timesheets.date DESC").Find(&timesheets).Error
	return timesheets, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Timesheet, error) {
	var ts Timesheet
	err := r.db.WithContext(ctx).
		Joins("User").
		Where("timesheets.id = ?", id).
		Take(&ts).Error
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uint) (*Timesheet, error) {
	var ts Timesheet
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&ts).Error
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func (r *repository) UpdateStatus(ctx context.Context, ts *Timesheet) error {
	return r.db.WithContext(ctx).
		Model(&Timesheet{}).
		Where("id = ?", ts.ID).
		Updates(map[string]interface{}{
			"status":     ts.Status,
			"updated_at": ts.UpdatedAt,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Timesheet{}, id).Error
}

func (r *repository) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}
