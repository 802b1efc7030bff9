package signature

import (
	"context"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
)

// CreateParams is the management co-sign insert. The repository re-reads the
// employee completion counts inside the same transaction as the insert, so
// the 100% gate can never be satisfied by a stale read.
type CreateParams struct {
	SalaryMonth   string
	PayrollType   payroll.PayrollType
	SignatureType Type
	SignedByID    string
	SignedByName  string
	Department    string
	Notes         string
}

type SignatureRepository interface {
	// Create inserts a management signature after re-checking the
	// employee-completion gate transactionally. Returns
	// ErrIncompleteEmployees or ErrSignatureExists on gate failures.
	Create(ctx context.Context, params CreateParams) (ManagementSignature, error)

	// ListActive returns the active signatures for one period.
	// A missing management_signatures relation degrades to an empty list.
	ListActive(ctx context.Context, salaryMonth string, t payroll.PayrollType) ([]ManagementSignature, error)

	RecentManagementSigns(ctx context.Context, salaryMonth string, t payroll.PayrollType, limit int) ([]ManagementSignature, error)

	InsertSecurityLog(ctx context.Context, log SecurityLog) error
}
