package attendance

import (
	"errors"
	"testing"
	"time"

	"hrportal/internal/domain/leave"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeriveDayStatusOnLeave(t *testing.T) {
	leaves := []leave.LeaveRequest{{
		Status:    leave.StatusApproved,
		StartDate: day(2024, 5, 6),
		EndDate:   day(2024, 5, 10),
	}}

	if got := DeriveDayStatus(nil, leaves, day(2024, 5, 8)); got != DayOnLeave {
		t.Fatalf("expected on_leave, got %s", got)
	}
}

func TestDeriveDayStatusPresentWinsOverLeave(t *testing.T) {
	checkIn := time.Date(2024, 5, 8, 9, 2, 0, 0, time.UTC)
	record := &Attendance{Date: day(2024, 5, 8), CheckInTime: &checkIn}
	leaves := []leave.LeaveRequest{{
		Status:    leave.StatusApproved,
		StartDate: day(2024, 5, 6),
		EndDate:   day(2024, 5, 10),
	}}

	if got := DeriveDayStatus(record, leaves, day(2024, 5, 8)); got != DayPresent {
		t.Fatalf("expected present, got %s", got)
	}
}

func TestDeriveDayStatusAbsent(t *testing.T) {
	if got := DeriveDayStatus(nil, nil, day(2024, 5, 8)); got != DayAbsent {
		t.Fatalf("expected absent, got %s", got)
	}

	// A record without a check-in does not count as present.
	record := &Attendance{Date: day(2024, 5, 8)}
	if got := DeriveDayStatus(record, nil, day(2024, 5, 8)); got != DayAbsent {
		t.Fatalf("expected absent for record without check-in, got %s", got)
	}
}

func TestDeriveDayStatusLeaveBoundaries(t *testing.T) {
	leaves := []leave.LeaveRequest{{
		Status:    leave.StatusApproved,
		StartDate: day(2024, 5, 6),
		EndDate:   day(2024, 5, 10),
	}}

	if got := DeriveDayStatus(nil, leaves, day(2024, 5, 10)); got != DayOnLeave {
		t.Fatalf("expected last leave day to be on_leave, got %s", got)
	}
	if got := DeriveDayStatus(nil, leaves, day(2024, 5, 11)); got != DayAbsent {
		t.Fatalf("expected day after leave to be absent, got %s", got)
	}
}

func TestCombineClock(t *testing.T) {
	base := time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)

	at, err := CombineClock(base, "09:15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 5, 8, 9, 15, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Fatalf("expected %v, got %v", want, at)
	}

	if _, err := CombineClock(base, "9am"); !errors.Is(err, ErrInvalidClock) {
		t.Fatalf("expected ErrInvalidClock, got %v", err)
	}
}

func TestEditBaseFallbacks(t *testing.T) {
	now := time.Date(2024, 5, 20, 14, 0, 0, 0, time.UTC)

	withDate := Attendance{Date: day(2024, 5, 8)}
	if got := EditBase(withDate, now); !got.Equal(day(2024, 5, 8)) {
		t.Fatalf("expected record date, got %v", got)
	}

	checkIn := time.Date(2024, 5, 9, 8, 30, 0, 0, time.UTC)
	withCheckIn := Attendance{CheckInTime: &checkIn}
	if got := EditBase(withCheckIn, now); !got.Equal(checkIn) {
		t.Fatalf("expected check-in date, got %v", got)
	}

	if got := EditBase(Attendance{}, now); !got.Equal(now) {
		t.Fatalf("expected now, got %v", got)
	}
}
