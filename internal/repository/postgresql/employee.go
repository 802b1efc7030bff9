package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/employee"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `employee_id, full_name, department, chuc_vu, cccd_hash, password_hash,
	credential_kind, last_password_change_at, is_active, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.EmployeeID, &e.FullName, &e.Department, &e.ChucVu, &e.CCCDHash, &e.PasswordHash,
		&e.CredentialKind, &e.LastPasswordChangeAt, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) GetByID(ctx context.Context, employeeID string) (employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`

	e, err := scanEmployee(r.db.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// List applies the caller's scope as SQL predicates so pagination totals can
// never include rows outside the scope.
func (r *employeeRepository) List(ctx context.Context, scope employee.ScopeFilter, limit, offset int) ([]employee.Employee, int64, error) {
	where := []string{"is_active = true"}
	args := []interface{}{}

	switch scope.Scope {
	case employee.ScopeOwn:
		args = append(args, scope.EmployeeID)
		where = append(where, fmt.Sprintf("employee_id = $%d", len(args)))
	case employee.ScopeDepartment:
		args = append(args, scope.Department)
		where = append(where, fmt.Sprintf("department = $%d", len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM employees WHERE ` + whereClause
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE %s ORDER BY employee_id LIMIT $%d OFFSET $%d`,
		employeeColumns, whereClause, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.EmployeeID, &e.FullName, &e.Department, &e.ChucVu, &e.CCCDHash, &e.PasswordHash,
			&e.CredentialKind, &e.LastPasswordChangeAt, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

func (r *employeeRepository) KnownIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT employee_id FROM employees`)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func (r *employeeRepository) BatchUpsert(ctx context.Context, employees []employee.Employee) (int, error) {
	affected := 0
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		for _, e := range employees {
			tag, err := tx.Exec(ctx, `
				INSERT INTO employees (employee_id, full_name, department, chuc_vu, cccd_hash, credential_kind, is_active)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (employee_id) DO UPDATE SET
					full_name = EXCLUDED.full_name,
					department = EXCLUDED.department,
					chuc_vu = EXCLUDED.chuc_vu,
					is_active = EXCLUDED.is_active,
					updated_at = NOW()
			`, e.EmployeeID, e.FullName, e.Department, e.ChucVu, e.CCCDHash, e.CredentialKind, e.IsActive)
			if err != nil {
				return fmt.Errorf("failed to upsert employee %s: %w", e.EmployeeID, err)
			}
			affected += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// UpdatePassword switches the employee to password credentials in one
// statement so credential_kind and last_password_change_at cannot drift.
func (r *employeeRepository) UpdatePassword(ctx context.Context, employeeID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE employees
		SET password_hash = $2,
			credential_kind = $3,
			last_password_change_at = NOW(),
			updated_at = NOW()
		WHERE employee_id = $1
	`, employeeID, passwordHash, employee.CredentialPassword)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
