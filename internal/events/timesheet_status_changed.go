package events

import "time"

const (
	TimesheetStatusChangedTopic = "hr.timesheet.status.v1"
	TimesheetStatusChangedType  = "timesheet.status_changed"
)

type TimesheetStatusChangedEvent struct {
	EventType      string    `json:"event_type"`
	TimesheetID    uint      `json:"timesheet_id"`
	UserID         uint      `json:"user_id"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}
