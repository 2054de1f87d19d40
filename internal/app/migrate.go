package app

import (
	"hr-portal/internal/leave"
	"hr-portal/internal/messaging/kafka"
	"hr-portal/internal/profile"
	"hr-portal/internal/timesheet"
	"hr-portal/internal/user"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables. Users go first since every other
// table references them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&leave.Leave{},
		&timesheet.Timesheet{},
		&profile.Profile{},
		&kafka.OutboxEvent{},
	)
}
