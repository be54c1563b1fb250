package leave

import (
	"fmt"
	"time"
)

// BusinessDays counts Monday through Friday in the inclusive range
// [start, end], ignoring holidays. Returns 0 when end is before start.
func BusinessDays(start, end time.Time) int {
	start = dateOnly(start)
	end = dateOnly(end)
	if end.Before(start) {
		return 0
	}

	count := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		switch day.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

// UsedUnits is the cost of a single request: half-day requests always cost
// one unit regardless of their date span, everything else costs its
// business-day count.
func UsedUnits(req LeaveRequest) int {
	if req.Type == TypeHalfDay {
		return 1
	}
	return BusinessDays(req.StartDate, req.EndDate)
}

// ComputeBalance sums the cost of the user's approved requests of the given
// type against its fixed allowance. Remaining is not clamped and may go
// negative. An unknown type yields a zero balance.
func ComputeBalance(requests []LeaveRequest, leaveType string) Balance {
	total, ok := Allowances[leaveType]
	if !ok {
		return Balance{Type: leaveType}
	}

	used := 0
	for _, req := range requests {
		if req.Status != StatusApproved || req.Type != leaveType {
			continue
		}
		used += UsedUnits(req)
	}

	return Balance{
		Type:      leaveType,
		Total:     total,
		Used:      used,
		Remaining: total - used,
	}
}

// FormatDateRange renders "Jan 2, 2006 - Jan 5, 2006".
func FormatDateRange(start, end time.Time) string {
	return start.Format("Jan 2, 2006") + " - " + end.Format("Jan 2, 2006")
}

// FormatDuration renders the working-day span of a range, "0 days" when the
// range is inverted.
func FormatDuration(start, end time.Time) string {
	if dateOnly(end).Before(dateOnly(start)) {
		return "0 days"
	}
	days := BusinessDays(start, end)
	if days == 1 {
		return "1 working day"
	}
	return fmt.Sprintf("%d working days", days)
}

// Covers reports whether the request's [start 00:00, end 23:59:59.999]
// interval contains the given day. The day is compared at noon so timezone
// boundary drift cannot move it across midnight.
func Covers(req LeaveRequest, day time.Time) bool {
	noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, day.Location())
	from := dateOnly(req.StartDate)
	until := dateOnly(req.EndDate).AddDate(0, 0, 1)
	return !noon.Before(from) && noon.Before(until)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
