package timesheet

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	timesheeterrors "hr-portal/internal/timesheet/errors"
	"hr-portal/internal/user"
)

type SubmitTimesheetRequest struct {
	UserID      uint    `json:"user_id" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Project     string  `json:"project" binding:"required"`
	HoursWorked *Hours  `json:"hours_worked" binding:"required"`
	Description *string `json:"description"`
}

// Hours accepts a JSON number or a numeric string such as "8".
type Hours float64

func (h *Hours) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return timesheeterrors.ErrInvalidHours.WithCause(err)
		}
		raw = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return timesheeterrors.ErrInvalidHours.WithCause(err)
	}
	*h = Hours(v)
	return nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RangeQuery selects timesheets dated within [StartDate, EndDate].
type RangeQuery struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
	UserID    *uint  `form:"-"`
}

type TimesheetResponse struct {
	ID          uint          `json:"id"`
	UserID      uint          `json:"user_id"`
	Date        string        `json:"date"`
	Project     string        `json:"project"`
	HoursWorked float64       `json:"hours_worked"`
	Description *string       `json:"description"`
	Status      string        `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	User        *user.Summary `json:"user,omitempty"`
}
