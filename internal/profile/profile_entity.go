package profile

import (
	"time"

	"hr-portal/internal/user"
)

type Profile struct {
	ID                    uint       `gorm:"primaryKey"`
	UserID                uint       `gorm:"not null;uniqueIndex:uq_profiles_user_id"`
	Phone                 string     `gorm:"type:varchar(20)"`
	DateOfBirth           *time.Time `gorm:"type:date"`
	Address               string     `gorm:"type:text"`
	City                  string     `gorm:"type:varchar(100)"`
	State                 string     `gorm:"type:varchar(100)"`
	Country               string     `gorm:"type:varchar(100)"`
	PostalCode            string     `gorm:"type:varchar(20)"`
	EmergencyContactName  string     `gorm:"type:varchar(100)"`
	EmergencyContactPhone string     `gorm:"type:varchar(20)"`
	CreatedAt             time.Time  `gorm:"not null"`
	UpdatedAt             time.Time  `gorm:"not null"`

	User *user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Profile) TableName() string {
	return "profiles"
}

// updatableColumns may be rewritten when a profile already exists for the
// user. updated_at is always refreshed.
var updatableColumns = map[string]bool{
	"phone":                   true,
	"date_of_birth":           true,
	"address":                 true,
	"city":                    true,
	"state":                   true,
	"country":                 true,
	"postal_code":             true,
	"emergency_contact_name":  true,
	"emergency_contact_phone": true,
}
