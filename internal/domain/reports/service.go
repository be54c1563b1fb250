package reports

import (
	"context"
	"time"

	"hrportal/internal/domain/attendance"
)

type AttendanceAPI interface {
	DailyOverview(ctx context.Context, day time.Time) ([]attendance.DailyView, error)
}

type Service struct {
	Attendance AttendanceAPI
}

func NewService(att AttendanceAPI) *Service {
	return &Service{Attendance: att}
}

type SheetRow struct {
	UserID   string
	Name     string
	Statuses []string // one per day of month, attendance day statuses
	Present  int
	OnLeave  int
	Absent   int
}

type MonthlySheet struct {
	Year  int
	Month time.Month
	Days  int
	Rows  []SheetRow
}

// MonthlySheet derives the per-day status for every employee across one
// month. Each day is computed the same way as the daily overview page.
func (s *Service) MonthlySheet(ctx context.Context, year int, month time.Month) (MonthlySheet, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	sheet := MonthlySheet{Year: year, Month: month, Days: days}
	rowIndex := map[string]int{}

	for day := 1; day <= days; day++ {
		views, err := s.Attendance.DailyOverview(ctx, first.AddDate(0, 0, day-1))
		if err != nil {
			return MonthlySheet{}, err
		}
		for _, view := range views {
			idx, ok := rowIndex[view.UserID]
			if !ok {
				idx = len(sheet.Rows)
				rowIndex[view.UserID] = idx
				sheet.Rows = append(sheet.Rows, SheetRow{
					UserID:   view.UserID,
					Name:     view.Name,
					Statuses: make([]string, days),
				})
			}
			sheet.Rows[idx].Statuses[day-1] = view.Status
			switch view.Status {
			case attendance.DayPresent:
				sheet.Rows[idx].Present++
			case attendance.DayOnLeave:
				sheet.Rows[idx].OnLeave++
			default:
				sheet.Rows[idx].Absent++
			}
		}
	}

	return sheet, nil
}
