package leave

import (
	"time"

	"hr-portal/internal/user"
)

type ApplyLeaveRequest struct {
	UserID    uint   `json:"user_id" binding:"required"`
	LeaveType string `json:"leave_type" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type LeaveResponse struct {
	ID        uint          `json:"id"`
	UserID    uint          `json:"user_id"`
	LeaveType string        `json:"leave_type"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Reason    string        `json:"reason"`
	Days      int           `json:"days"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	User      *user.Summary `json:"user,omitempty"`
}
