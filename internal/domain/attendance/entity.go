package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceDaily is one employee's work units for one calendar day,
// keyed by (employee_id, work_date). Re-imports replace the row.
type AttendanceDaily struct {
	ID            int64
	EmployeeID    string
	WorkDate      time.Time
	WorkingUnits  decimal.Decimal
	OvertimeUnits decimal.Decimal
	CheckIn       *string
	CheckOut      *string
	SourceFile    string
	ImportBatchID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AttendanceMonthly aggregates one employee's month, keyed by
// (employee_id, period_year, period_month).
type AttendanceMonthly struct {
	ID                 int64
	EmployeeID         string
	PeriodYear         int
	PeriodMonth        int
	TotalWorkingUnits  decimal.Decimal
	TotalOvertimeUnits decimal.Decimal
	WorkDays           int
	SourceFile         string
	ImportBatchID      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsNonWorkDay reports whether a parsed daily row carries no information at
// all; such rows are skipped silently by the importer rather than reported.
func (d AttendanceDaily) IsNonWorkDay() bool {
	return d.WorkingUnits.IsZero() && d.OvertimeUnits.IsZero() && d.CheckIn == nil && d.CheckOut == nil
}
