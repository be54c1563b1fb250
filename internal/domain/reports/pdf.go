package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"hrportal/internal/domain/attendance"
)

var statusMarks = map[string]string{
	attendance.DayPresent: "P",
	attendance.DayOnLeave: "L",
	attendance.DayAbsent:  "A",
}

// RenderPDF lays out a monthly attendance sheet, one row per employee and
// one column per day, with P/L/A totals at the right edge.
func RenderPDF(sheet MonthlySheet) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Attendance %s %d", sheet.Month, sheet.Year), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Attendance Sheet - %s %d", sheet.Month, sheet.Year),
		"", 1, "L", false, 0, "")

	const nameWidth = 50.0
	const totalWidth = 12.0
	dayWidth := (277 - nameWidth - 3*totalWidth) / float64(sheet.Days)

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(nameWidth, 6, "Employee", "1", 0, "L", false, 0, "")
	for day := 1; day <= sheet.Days; day++ {
		pdf.CellFormat(dayWidth, 6, fmt.Sprintf("%d", day), "1", 0, "C", false, 0, "")
	}
	pdf.CellFormat(totalWidth, 6, "P", "1", 0, "C", false, 0, "")
	pdf.CellFormat(totalWidth, 6, "L", "1", 0, "C", false, 0, "")
	pdf.CellFormat(totalWidth, 6, "A", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, row := range sheet.Rows {
		pdf.CellFormat(nameWidth, 6, row.Name, "1", 0, "L", false, 0, "")
		for _, status := range row.Statuses {
			pdf.CellFormat(dayWidth, 6, statusMarks[status], "1", 0, "C", false, 0, "")
		}
		pdf.CellFormat(totalWidth, 6, fmt.Sprintf("%d", row.Present), "1", 0, "C", false, 0, "")
		pdf.CellFormat(totalWidth, 6, fmt.Sprintf("%d", row.OnLeave), "1", 0, "C", false, 0, "")
		pdf.CellFormat(totalWidth, 6, fmt.Sprintf("%d", row.Absent), "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
