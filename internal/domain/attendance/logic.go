package attendance

import (
	"errors"
	"time"

	"hrportal/internal/domain/leave"
)

var ErrInvalidClock = errors.New("clock time must be HH:mm")

// DeriveDayStatus resolves the tri-state status for one employee and date.
// A recorded check-in wins over any overlapping leave; approved leave
// covering the date beats absent.
func DeriveDayStatus(record *Attendance, approvedLeaves []leave.LeaveRequest, day time.Time) string {
	if record != nil && record.CheckInTime != nil {
		return DayPresent
	}
	for _, req := range approvedLeaves {
		if leave.Covers(req, day) {
			return DayOnLeave
		}
	}
	return DayAbsent
}

// CombineClock builds a full timestamp from a base date and an "HH:mm"
// wall-clock string, keeping the base's location.
func CombineClock(base time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, ErrInvalidClock
	}
	return time.Date(base.Year(), base.Month(), base.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, base.Location()), nil
}

// EditBase picks the date an edited clock value is anchored to: the record's
// date, else the existing check-in's date, else now.
func EditBase(record Attendance, now time.Time) time.Time {
	if !record.Date.IsZero() {
		return record.Date
	}
	if record.CheckInTime != nil {
		return *record.CheckInTime
	}
	return now
}
