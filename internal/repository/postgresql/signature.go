package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/signature"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/database"
)

const (
	pgUniqueViolation = "23505"
	pgUndefinedTable  = "42P01"
)

type signatureRepository struct {
	db *database.DB
}

func NewSignatureRepository(db *database.DB) signature.SignatureRepository {
	return &signatureRepository{db: db}
}

const managementSignatureColumns = `id, salary_month, payroll_type, signature_type, signed_by_id,
	signed_by_name, department, signed_at, notes, is_active`

func scanManagementSignature(row pgx.Row) (signature.ManagementSignature, error) {
	var s signature.ManagementSignature
	err := row.Scan(
		&s.ID, &s.SalaryMonth, &s.PayrollType, &s.SignatureType, &s.SignedByID,
		&s.SignedByName, &s.Department, &s.SignedAt, &s.Notes, &s.IsActive,
	)
	return s, err
}

// Create inserts a management co-signature. The employee-completion gate is
// re-read inside the same transaction as the insert, and the partial unique
// index on (salary_month, payroll_type, signature_type) WHERE is_active
// turns a concurrent duplicate into ErrSignatureExists.
func (r *signatureRepository) Create(ctx context.Context, params signature.CreateParams) (signature.ManagementSignature, error) {
	var created signature.ManagementSignature

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var signed, total int
		err := tx.QueryRow(ctx, `
			SELECT COUNT(*) FILTER (WHERE is_signed), COUNT(*)
			FROM payrolls
			WHERE salary_month = $1 AND payroll_type = $2
		`, params.SalaryMonth, params.PayrollType).Scan(&signed, &total)
		if err != nil {
			return fmt.Errorf("failed to count employee completion: %w", err)
		}
		if total == 0 || signed != total {
			return signature.ErrIncompleteEmployees
		}

		var exists bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM management_signatures
				WHERE salary_month = $1 AND payroll_type = $2 AND signature_type = $3 AND is_active = true
			)
		`, params.SalaryMonth, params.PayrollType, params.SignatureType).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check existing signature: %w", err)
		}
		if exists {
			return signature.ErrSignatureExists
		}

		created, err = scanManagementSignature(tx.QueryRow(ctx, `
			INSERT INTO management_signatures
				(salary_month, payroll_type, signature_type, signed_by_id, signed_by_name, department, signed_at, notes, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), $7, true)
			RETURNING `+managementSignatureColumns,
			params.SalaryMonth, params.PayrollType, params.SignatureType,
			params.SignedByID, params.SignedByName, params.Department, params.Notes))
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return signature.ErrSignatureExists
			}
			return fmt.Errorf("failed to insert management signature: %w", err)
		}
		return nil
	})
	if err != nil {
		return signature.ManagementSignature{}, err
	}
	return created, nil
}

// ListActive degrades to an empty list when the management_signatures table
// has not been migrated yet, so employee progress stays visible.
func (r *signatureRepository) ListActive(ctx context.Context, salaryMonth string, t payroll.PayrollType) ([]signature.ManagementSignature, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+managementSignatureColumns+`
		FROM management_signatures
		WHERE salary_month = $1 AND payroll_type = $2 AND is_active = true
		ORDER BY signed_at
	`, salaryMonth, t)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list management signatures: %w", err)
	}
	defer rows.Close()

	var signatures []signature.ManagementSignature
	for rows.Next() {
		s, err := scanManagementSignature(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan management signature: %w", err)
		}
		signatures = append(signatures, s)
	}
	return signatures, rows.Err()
}

func (r *signatureRepository) RecentManagementSigns(ctx context.Context, salaryMonth string, t payroll.PayrollType, limit int) ([]signature.ManagementSignature, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+managementSignatureColumns+`
		FROM management_signatures
		WHERE salary_month = $1 AND payroll_type = $2 AND is_active = true
		ORDER BY signed_at DESC
		LIMIT $3
	`, salaryMonth, t, limit)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list recent management signatures: %w", err)
	}
	defer rows.Close()

	var signatures []signature.ManagementSignature
	for rows.Next() {
		s, err := scanManagementSignature(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan management signature: %w", err)
		}
		signatures = append(signatures, s)
	}
	return signatures, rows.Err()
}

func (r *signatureRepository) InsertSecurityLog(ctx context.Context, log signature.SecurityLog) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO security_logs (employee_id, event, detail, ip_address)
		VALUES ($1, $2, $3, $4)
	`, log.EmployeeID, log.Event, log.Detail, log.IPAddress)
	if err != nil {
		return fmt.Errorf("failed to insert security log: %w", err)
	}
	return nil
}
