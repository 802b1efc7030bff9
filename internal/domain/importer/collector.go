// Package importer holds the validation and error-taxonomy layer shared by
// every Excel importer. It performs no I/O: all checks run on already-parsed
// values so the same rules apply to payroll, attendance and employee imports.
package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/validator"
)

// ErrorType classifies import failures.
type ErrorType string

const (
	ErrorValidation       ErrorType = "validation"
	ErrorDuplicate        ErrorType = "duplicate"
	ErrorEmployeeNotFound ErrorType = "employee_not_found"
	ErrorDatabase         ErrorType = "database"
	ErrorFormat           ErrorType = "format"
)

// ImportErrorRecord is one row-level failure. Row numbers are 1-based
// spreadsheet rows, including the header.
type ImportErrorRecord struct {
	Row         int       `json:"row"`
	EmployeeID  string    `json:"employee_id,omitempty"`
	SalaryMonth string    `json:"salary_month,omitempty"`
	Field       string    `json:"field,omitempty"`
	Message     string    `json:"error"`
	Type        ErrorType `json:"errorType"`
}

// ParseResult is what every ingestion parser returns. Success is false only
// when zero valid records were produced; partial success is allowed.
type ParseResult[T any] struct {
	Records []T
	Errors  []ImportErrorRecord
	Success bool
}

// MinSalaryYear is the oldest importable payroll year.
const MinSalaryYear = 2020

var salaryMonthShapeRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Collector validates parsed rows. The clock is injected so the
// year-upper-bound rule (currentYear+1) is testable.
type Collector struct {
	now func() time.Time
}

func NewCollector(now func() time.Time) *Collector {
	if now == nil {
		now = time.Now
	}
	return &Collector{now: now}
}

// ValidateEmployeeID returns nil when the id is well formed.
func (c *Collector) ValidateEmployeeID(row int, employeeID string) *ImportErrorRecord {
	id := strings.TrimSpace(employeeID)
	if id == "" {
		return &ImportErrorRecord{
			Row:     row,
			Field:   "employee_id",
			Message: "Mã nhân viên không được để trống",
			Type:    ErrorValidation,
		}
	}
	if !validator.IsValidEmployeeID(id) {
		return &ImportErrorRecord{
			Row:        row,
			EmployeeID: id,
			Field:      "employee_id",
			Message:    fmt.Sprintf("Mã nhân viên không hợp lệ: %q", id),
			Type:       ErrorValidation,
		}
	}
	return nil
}

// ValidateSalaryMonth returns nil when month is valid for the mode.
// Monthly months must match YYYY-MM with the month in 1..12; the 13th-month
// mode accepts only YYYY-13. Years are bounded to [2020, currentYear+1].
func (c *Collector) ValidateSalaryMonth(row int, month string, isT13 bool) *ImportErrorRecord {
	month = strings.TrimSpace(month)

	fail := func(msg string) *ImportErrorRecord {
		return &ImportErrorRecord{
			Row:         row,
			SalaryMonth: month,
			Field:       "salary_month",
			Message:     msg,
			Type:        ErrorValidation,
		}
	}

	if !salaryMonthShapeRegex.MatchString(month) {
		return fail(fmt.Sprintf("Tháng lương không đúng định dạng YYYY-MM: %q", month))
	}

	year, _ := strconv.Atoi(month[:4])
	m, _ := strconv.Atoi(month[5:])

	if isT13 {
		if m != 13 {
			return fail(fmt.Sprintf("Lương tháng 13 phải có định dạng YYYY-13: %q", month))
		}
	} else if m < 1 || m > 12 {
		return fail(fmt.Sprintf("Tháng phải nằm trong khoảng 01-12: %q", month))
	}

	maxYear := c.now().Year() + 1
	if year < MinSalaryYear || year > maxYear {
		return fail(fmt.Sprintf("Năm phải nằm trong khoảng %d-%d: %q", MinSalaryYear, maxYear, month))
	}

	return nil
}

// Keyed is the minimal view of a parsed record the existence pass needs.
type Keyed interface {
	Key() (row int, employeeID string)
}

// CheckEmployeeExists is a separate pass run after all structural validation,
// so a malformed row is reported for its format problem rather than for a
// lookup that was never meaningful. Rows listed in alreadyInvalid are skipped.
func CheckEmployeeExists[T Keyed](records []T, knownIDs map[string]struct{}, alreadyInvalid map[int]struct{}) []ImportErrorRecord {
	var errs []ImportErrorRecord
	for _, rec := range records {
		row, id := rec.Key()
		if _, bad := alreadyInvalid[row]; bad {
			continue
		}
		if _, ok := knownIDs[strings.TrimSpace(id)]; !ok {
			errs = append(errs, ImportErrorRecord{
				Row:        row,
				EmployeeID: id,
				Field:      "employee_id",
				Message:    fmt.Sprintf("Không tìm thấy nhân viên %q trong hệ thống", id),
				Type:       ErrorEmployeeNotFound,
			})
		}
	}
	return errs
}

// InvalidRows indexes the rows already carrying an error, for the
// existence-pass skip rule.
func InvalidRows(errs []ImportErrorRecord) map[int]struct{} {
	rows := make(map[int]struct{}, len(errs))
	for _, e := range errs {
		rows[e.Row] = struct{}{}
	}
	return rows
}
