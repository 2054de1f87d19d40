package timesheet

import (
	"time"

	"hr-portal/internal/user"
)

type Status string

const (
	StatusSubmitted Status = "Submitted"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
)

func ParseStatus(v string) (Status, bool) {
	switch s := Status(v); s {
	case StatusSubmitted, StatusApproved, StatusRejected:
		return s, true
	default:
		return "", false
	}
}

func (s Status) Deletable() bool {
	return s == StatusSubmitted
}

const (
	MinHours = 0
	MaxHours = 24
)

type Timesheet struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index:idx_timesheets_user_date"`
	Date        time.Time `gorm:"type:date;not null;index:idx_timesheets_user_date"`
	Project     string    `gorm:"type:varchar(255);not null"`
	HoursWorked float64   `gorm:"type:numeric(4,2);not null;check:chk_timesheets_hours_worked,hours_worked >= 0 AND hours_worked <= 24"`
	Description *string   `gorm:"type:text"`
	Status      Status    `gorm:"type:varchar(20);not null;default:'Submitted';check:chk_timesheets_status,status IN ('Submitted','Approved','Rejected')"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	User *user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}
