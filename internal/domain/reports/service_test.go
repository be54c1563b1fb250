package reports

import (
	"bytes"
	"context"
	"testing"
	"time"

	"hrportal/internal/domain/attendance"
)

type fakeAttendance struct {
	presentDays map[int]bool
	leaveDays   map[int]bool
}

func (f fakeAttendance) DailyOverview(_ context.Context, day time.Time) ([]attendance.DailyView, error) {
	status := attendance.DayAbsent
	if f.presentDays[day.Day()] {
		status = attendance.DayPresent
	} else if f.leaveDays[day.Day()] {
		status = attendance.DayOnLeave
	}
	return []attendance.DailyView{{UserID: "emp-1", Name: "Jane Doe", Status: status}}, nil
}

func TestMonthlySheetTotals(t *testing.T) {
	service := NewService(fakeAttendance{
		presentDays: map[int]bool{1: true, 2: true, 3: true},
		leaveDays:   map[int]bool{4: true, 5: true},
	})

	sheet, err := service.MonthlySheet(context.Background(), 2024, time.February)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sheet.Days != 29 {
		t.Fatalf("expected 29 days in Feb 2024, got %d", sheet.Days)
	}
	if len(sheet.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(sheet.Rows))
	}

	row := sheet.Rows[0]
	if row.Present != 3 || row.OnLeave != 2 || row.Absent != 24 {
		t.Fatalf("unexpected totals: %+v", row)
	}
	if row.Statuses[0] != attendance.DayPresent || row.Statuses[3] != attendance.DayOnLeave {
		t.Fatalf("unexpected statuses: %v", row.Statuses[:5])
	}
}

func TestRenderPDF(t *testing.T) {
	service := NewService(fakeAttendance{presentDays: map[int]bool{1: true}})
	sheet, err := service.MonthlySheet(context.Background(), 2024, time.January)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := RenderPDF(sheet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("expected PDF output")
	}
}
