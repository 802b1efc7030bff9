package payroll

import (
	"context"
	"time"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/employee"
)

// RecordFilter narrows ListRecords. Zero values mean "no filter".
type RecordFilter struct {
	SalaryMonth string
	PayrollType PayrollType
	EmployeeID  string
	Department  string
	SignedOnly  *bool
	Limit       int
	Offset      int
}

// SignRecordParams carries everything the atomic sign operation needs:
// the record key, the resolved signer name, the server-side timestamp and
// the request metadata for the audit log row.
type SignRecordParams struct {
	EmployeeID  string
	SalaryMonth string
	PayrollType PayrollType
	SignedBy    string
	SignedAt    time.Time
	IPAddress   string
	UserAgent   string
}

// BatchResult reports one upsert batch independently; a failed batch never
// rolls back earlier batches.
type BatchResult struct {
	BatchIndex int
	Attempted  int
	Affected   int
	Err        error
}

// UnsignedEmployee is the status endpoint's sample of who has not signed yet.
type UnsignedEmployee struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
}

// SignedActivity is one entry of the recent-activity feed.
type SignedActivity struct {
	EmployeeID string    `json:"employee_id"`
	FullName   string    `json:"full_name"`
	SignedAt   time.Time `json:"signed_at"`
}

type PayrollRepository interface {
	GetRecord(ctx context.Context, employeeID, salaryMonth string, t PayrollType) (PayrollRecord, error)
	ListRecords(ctx context.Context, scope employee.ScopeFilter, filter RecordFilter) ([]PayrollRecord, int64, error)

	// BatchUpsert writes records in chunks of batchSize with
	// ON CONFLICT (employee_id, salary_month, payroll_type) DO UPDATE.
	BatchUpsert(ctx context.Context, records []PayrollRecord, batchSize int) ([]BatchResult, error)

	// SignRecord flips is_signed under a single transaction using a
	// conditional update (WHERE is_signed = false) and appends the
	// signature log row. Returns ErrAlreadySigned when the record exists
	// but was signed before, ErrPayrollRecordNotFound when it does not
	// exist at all.
	SignRecord(ctx context.Context, params SignRecordParams) (PayrollRecord, error)

	// CompletionCounts returns signed and total record counts for one
	// (salary_month, payroll_type) pair from a single query.
	CompletionCounts(ctx context.Context, salaryMonth string, t PayrollType) (signed int, total int, err error)

	UnsignedSample(ctx context.Context, salaryMonth string, t PayrollType, limit int) ([]UnsignedEmployee, error)
	RecentSigned(ctx context.Context, salaryMonth string, t PayrollType, limit int) ([]SignedActivity, error)
}
