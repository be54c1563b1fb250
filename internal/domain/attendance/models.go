package attendance

import "time"

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// Day statuses for the per-employee overview. Present and absent mirror the
// stored statuses; on_leave only exists in the derived view.
const (
	DayPresent = "present"
	DayOnLeave = "on_leave"
	DayAbsent  = "absent"
)

type Attendance struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Date         time.Time  `json:"date"`
	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// DailyView is the derived per-employee row for one date. It is recomputed
// on every request and never persisted.
type DailyView struct {
	UserID       string     `json:"userId"`
	Name         string     `json:"name"`
	Status       string     `json:"status"`
	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}
