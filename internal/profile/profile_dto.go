package profile

import (
	"encoding/json"
	"time"
)

// Omitted keys stay nil and leave the stored value untouched.
type UpsertProfileRequest struct {
	UserID                uint           `json:"user_id" binding:"required"`
	Phone                 *string        `json:"phone" binding:"omitempty,max=20"`
	DateOfBirth           NullableString `json:"date_of_birth"`
	Address               *string        `json:"address"`
	City                  *string        `json:"city" binding:"omitempty,max=100"`
	State                 *string        `json:"state" binding:"omitempty,max=100"`
	Country               *string        `json:"country" binding:"omitempty,max=100"`
	PostalCode            *string        `json:"postal_code" binding:"omitempty,max=20"`
	EmergencyContactName  *string        `json:"emergency_contact_name" binding:"omitempty,max=100"`
	EmergencyContactPhone *string        `json:"emergency_contact_phone" binding:"omitempty,max=20"`
}

// NullableString tells an omitted key (Set false) from an explicit null
// (Set true, Value nil).
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

func NullString(s string) NullableString {
	return NullableString{Set: true, Value: &s}
}

type ProfileResponse struct {
	ID                    uint      `json:"id"`
	UserID                uint      `json:"user_id"`
	Phone                 string    `json:"phone"`
	DateOfBirth           *string   `json:"date_of_birth"`
	Address               string    `json:"address"`
	City                  string    `json:"city"`
	State                 string    `json:"state"`
	Country               string    `json:"country"`
	PostalCode            string    `json:"postal_code"`
	EmergencyContactName  string    `json:"emergency_contact_name"`
	EmergencyContactPhone string    `json:"emergency_contact_phone"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
