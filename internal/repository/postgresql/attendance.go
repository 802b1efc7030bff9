package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/attendance"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// UpsertDaily replaces rows on re-import via the (employee_id, work_date)
// conflict key. Each chunk commits independently.
func (r *attendanceRepository) UpsertDaily(ctx context.Context, records []attendance.AttendanceDaily, batchSize int) ([]payroll.BatchResult, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	var results []payroll.BatchResult
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]

		affected := 0
		err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
			for _, rec := range chunk {
				tag, err := tx.Exec(ctx, `
					INSERT INTO attendance_daily
						(employee_id, work_date, working_units, overtime_units, check_in, check_out, source_file, import_batch_id)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
					ON CONFLICT (employee_id, work_date) DO UPDATE SET
						working_units = EXCLUDED.working_units,
						overtime_units = EXCLUDED.overtime_units,
						check_in = EXCLUDED.check_in,
						check_out = EXCLUDED.check_out,
						source_file = EXCLUDED.source_file,
						import_batch_id = EXCLUDED.import_batch_id,
						updated_at = NOW()
				`, rec.EmployeeID, rec.WorkDate, rec.WorkingUnits, rec.OvertimeUnits,
					rec.CheckIn, rec.CheckOut, rec.SourceFile, rec.ImportBatchID)
				if err != nil {
					return fmt.Errorf("failed to upsert daily attendance for %s: %w", rec.EmployeeID, err)
				}
				affected += int(tag.RowsAffected())
			}
			return nil
		})

		results = append(results, payroll.BatchResult{
			BatchIndex: start / batchSize,
			Attempted:  len(chunk),
			Affected:   affected,
			Err:        err,
		})
	}
	return results, nil
}

func (r *attendanceRepository) UpsertMonthly(ctx context.Context, records []attendance.AttendanceMonthly, batchSize int) ([]payroll.BatchResult, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	var results []payroll.BatchResult
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]

		affected := 0
		err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
			for _, rec := range chunk {
				tag, err := tx.Exec(ctx, `
					INSERT INTO attendance_monthly
						(employee_id, period_year, period_month, total_working_units, total_overtime_units, work_days, source_file, import_batch_id)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
					ON CONFLICT (employee_id, period_year, period_month) DO UPDATE SET
						total_working_units = EXCLUDED.total_working_units,
						total_overtime_units = EXCLUDED.total_overtime_units,
						work_days = EXCLUDED.work_days,
						source_file = EXCLUDED.source_file,
						import_batch_id = EXCLUDED.import_batch_id,
						updated_at = NOW()
				`, rec.EmployeeID, rec.PeriodYear, rec.PeriodMonth, rec.TotalWorkingUnits,
					rec.TotalOvertimeUnits, rec.WorkDays, rec.SourceFile, rec.ImportBatchID)
				if err != nil {
					return fmt.Errorf("failed to upsert monthly attendance for %s: %w", rec.EmployeeID, err)
				}
				affected += int(tag.RowsAffected())
			}
			return nil
		})

		results = append(results, payroll.BatchResult{
			BatchIndex: start / batchSize,
			Attempted:  len(chunk),
			Affected:   affected,
			Err:        err,
		})
	}
	return results, nil
}

func (r *attendanceRepository) ListDaily(ctx context.Context, employeeID string, year, month int) ([]attendance.AttendanceDaily, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, employee_id, work_date, working_units, overtime_units, check_in, check_out,
			source_file, import_batch_id, created_at, updated_at
		FROM attendance_daily
		WHERE employee_id = $1
			AND EXTRACT(YEAR FROM work_date) = $2
			AND EXTRACT(MONTH FROM work_date) = $3
		ORDER BY work_date
	`, employeeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceDaily
	for rows.Next() {
		var d attendance.AttendanceDaily
		if err := rows.Scan(
			&d.ID, &d.EmployeeID, &d.WorkDate, &d.WorkingUnits, &d.OvertimeUnits, &d.CheckIn, &d.CheckOut,
			&d.SourceFile, &d.ImportBatchID, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily attendance: %w", err)
		}
		records = append(records, d)
	}
	return records, rows.Err()
}

func (r *attendanceRepository) GetMonthly(ctx context.Context, employeeID string, year, month int) (attendance.AttendanceMonthly, error) {
	var m attendance.AttendanceMonthly
	err := r.db.QueryRow(ctx, `
		SELECT id, employee_id, period_year, period_month, total_working_units, total_overtime_units,
			work_days, source_file, import_batch_id, created_at, updated_at
		FROM attendance_monthly
		WHERE employee_id = $1 AND period_year = $2 AND period_month = $3
	`, employeeID, year, month).Scan(
		&m.ID, &m.EmployeeID, &m.PeriodYear, &m.PeriodMonth, &m.TotalWorkingUnits, &m.TotalOvertimeUnits,
		&m.WorkDays, &m.SourceFile, &m.ImportBatchID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceMonthly{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceMonthly{}, fmt.Errorf("failed to get monthly attendance: %w", err)
	}
	return m, nil
}
