package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/attendance"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/importer"
)

var attendanceFieldAliases = map[string][]string{
	"employee_id": {"ma nhan vien", "ma nv", "manv", "employee id"},
	"full_name":   {"ho ten", "ho va ten", "full name"},
}

// ParsedAttendanceRow is one employee's parsed month: the surviving daily
// rows plus the monthly aggregate.
type ParsedAttendanceRow struct {
	Row        int
	EmployeeID string
	Daily      []attendance.AttendanceDaily
	Monthly    attendance.AttendanceMonthly
}

func (p ParsedAttendanceRow) Key() (int, string) {
	return p.Row, p.EmployeeID
}

// dayColumns finds the fixed per-day layout: header cells that are a bare
// day number or "Ngày N", mapped to the day they represent.
func dayColumns(header []string, year, month int) map[int]int {
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	columns := make(map[int]int)
	for i, h := range header {
		s := NormalizeHeader(h)
		s = strings.TrimPrefix(s, "ngay ")
		day, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || day < 1 || day > daysInMonth {
			continue
		}
		if _, taken := columns[day]; !taken {
			columns[day] = i
		}
	}
	return columns
}

// parseDayCell splits a day cell into working and overtime units. Supported
// shapes: "8", "8/2" (working/overtime) and "8+2". Anything else counts as
// zero units.
func parseDayCell(cell string) (working, overtime decimal.Decimal) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return decimal.Zero, decimal.Zero
	}

	sep := ""
	switch {
	case strings.Contains(s, "/"):
		sep = "/"
	case strings.Contains(s, "+"):
		sep = "+"
	}
	if sep == "" {
		return parseDecimal(s), decimal.Zero
	}

	parts := strings.SplitN(s, sep, 2)
	return parseDecimal(parts[0]), parseDecimal(parts[1])
}

// ParseAttendanceFile parses the fixed day-column attendance layout for one
// period. Days with zero units are treated as non-work days and skipped
// silently; they are not errors.
func ParseAttendanceFile(data []byte, filename string, year, month int, collector *importer.Collector) (importer.ParseResult[ParsedAttendanceRow], error) {
	var result importer.ParseResult[ParsedAttendanceRow]

	if month < 1 || month > 12 || year < importer.MinSalaryYear {
		return result, fmt.Errorf("invalid attendance period %d-%02d", year, month)
	}

	rows, err := openSheet(data)
	if err != nil {
		return result, err
	}

	columns := resolveHeaders(rows[0], attendanceFieldAliases)
	idCol, ok := columns["employee_id"]
	if !ok {
		return result, fmt.Errorf("no employee_id column found in %q", filename)
	}

	days := dayColumns(rows[0], year, month)
	if len(days) == 0 {
		return result, fmt.Errorf("no day columns found in %q", filename)
	}

	for i, row := range rows[1:] {
		rowNum := i + 2

		empID := cellAt(row, idCol)
		if empID == "" {
			continue
		}
		if errRec := collector.ValidateEmployeeID(rowNum, empID); errRec != nil {
			result.Errors = append(result.Errors, *errRec)
			continue
		}
		empID = strings.TrimSpace(empID)

		parsed := ParsedAttendanceRow{
			Row:        rowNum,
			EmployeeID: empID,
			Monthly: attendance.AttendanceMonthly{
				EmployeeID:  empID,
				PeriodYear:  year,
				PeriodMonth: month,
				SourceFile:  filename,
			},
		}

		for day, col := range days {
			working, overtime := parseDayCell(cellAt(row, col))
			daily := attendance.AttendanceDaily{
				EmployeeID:    empID,
				WorkDate:      time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
				WorkingUnits:  working,
				OvertimeUnits: overtime,
				SourceFile:    filename,
			}
			if daily.IsNonWorkDay() {
				continue
			}
			parsed.Daily = append(parsed.Daily, daily)
			parsed.Monthly.TotalWorkingUnits = parsed.Monthly.TotalWorkingUnits.Add(working)
			parsed.Monthly.TotalOvertimeUnits = parsed.Monthly.TotalOvertimeUnits.Add(overtime)
			parsed.Monthly.WorkDays++
		}

		result.Records = append(result.Records, parsed)
	}

	result.Success = len(result.Records) > 0
	return result, nil
}
