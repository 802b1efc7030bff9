package employee

import "context"

// ScopeFilter is applied as SQL predicates, never as a post-filter, so
// pagination totals cannot leak rows outside the caller's scope.
type ScopeFilter struct {
	Scope      ViewScope
	EmployeeID string
	Department string
}

type EmployeeRepository interface {
	GetByID(ctx context.Context, employeeID string) (Employee, error)
	List(ctx context.Context, scope ScopeFilter, limit, offset int) ([]Employee, int64, error)
	// KnownIDs returns every employee_id, used by the import existence pass.
	KnownIDs(ctx context.Context) (map[string]struct{}, error)
	BatchUpsert(ctx context.Context, employees []Employee) (int, error)
	UpdatePassword(ctx context.Context, employeeID, passwordHash string) error
}
