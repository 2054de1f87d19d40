package leave

import (
	"time"

	"hr-portal/internal/user"
)

type Type string

const (
	TypeCasual    Type = "Casual Leave"
	TypeSick      Type = "Sick Leave"
	TypeAnnual    Type = "Annual Leave"
	TypeMaternity Type = "Maternity Leave"
)

var validTypes = map[Type]struct{}{
	TypeCasual:    {},
	TypeSick:      {},
	TypeAnnual:    {},
	TypeMaternity: {},
}

func ParseType(v string) (Type, bool) {
	t := Type(v)
	_, ok := validTypes[t]
	return t, ok
}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

func ParseStatus(v string) (Status, bool) {
	switch s := Status(v); s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, true
	default:
		return "", false
	}
}

// Deletable reports whether a leave in this status may still be withdrawn.
func (s Status) Deletable() bool {
	return s == StatusPending
}

type Leave struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index:idx_leaves_user_created"`
	LeaveType Type      `gorm:"type:varchar(30);not null;check:chk_leaves_leave_type,leave_type IN ('Casual Leave','Sick Leave','Annual Leave','Maternity Leave')"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Reason    string    `gorm:"type:text;not null"`
	Days      int       `gorm:"not null"`
	Status    Status    `gorm:"type:varchar(20);not null;default:'Pending';check:chk_leaves_status,status IN ('Pending','Approved','Rejected')"`
	CreatedAt time.Time `gorm:"not null;index:idx_leaves_user_created"`
	UpdatedAt time.Time `gorm:"not null"`

	User *user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Leave) TableName() string {
	return "leaves"
}
