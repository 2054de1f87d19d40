package profile

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=profile_repo.go -destination=mock/profile_repo_mock.go -package=mock
type Repository interface {
	FindByUserID(ctx context.Context, userID uint) (*Profile, error)
	Upsert(ctx context.Context, p *Profile, columns []string) error
	UserExists(ctx context.Context, userID uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindByUserID returns nil, nil when the user has no profile yet.
func (r *repository) FindByUserID(ctx context.Context, userID uint) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert inserts the user's profile, or on uq_profiles_user_id conflict
// overwrites only the given columns, in one statement.
func (r *repository) Upsert(ctx context.Context, p *Profile, columns []string) error {
	assign := make([]string, 0, len(columns)+1)
	for _, col := range columns {
		if updatableColumns[col] {
			assign = append(assign, col)
		}
	}
	assign = append(assign, "updated_at")

	return r.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(assign),
		}).
		Create(p).Error
}

func (r *repository) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}
