package events

import "time"

const (
	LeaveStatusChangedTopic = "hr.leave.status.v1"
	LeaveStatusChangedType  = "leave.status_changed"
)

type LeaveStatusChangedEvent struct {
	EventType      string    `json:"event_type"`
	LeaveID        uint      `json:"leave_id"`
	UserID         uint      `json:"user_id"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}
