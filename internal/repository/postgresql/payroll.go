package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/employee"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// numericColumns lists the compensation columns in entity order. Insert and
// select statements are generated from this list so the two can never drift.
var numericColumns = []string{
	"he_so_lam_viec", "he_so_phu_cap_ket_qua", "he_so_luong_co_ban", "luong_toi_thieu_cty",
	"ngay_cong_trong_gio", "gio_cong_tang_ca", "gio_an_ca", "tong_gio_lam_viec", "tong_he_so_quy_doi", "ngay_cong_chu_nhat",
	"tong_luong_san_pham_cong_doan", "don_gia_tien_luong_tren_gio", "tien_luong_quy_doi", "tien_luong_san_pham_trong_gio", "tien_luong_tang_ca", "tien_luong_30p", "tien_luong_chu_nhat",
	"tien_khen_thuong_chuyen_can", "luong_hoc_viec_pc_luong", "tien_thuong_chat_luong", "luong_cncn_quy_doi",
	"tien_tang_ca_vuot", "phu_cap_tien_an", "phu_cap_xang_xe", "phu_cap_dien_thoai", "phu_cap_khac", "ho_tro_thoi_tiet", "bo_sung_luong", "tien_boc_vac", "ho_tro_xang_xe",
	"bhxh_bhtn_bhyt", "thue_tncn", "thue_tncn_nam_nhan_lai", "truy_thu_the_bhyt",
	"tam_ung", "doan_phi", "tien_nha_tro", "tru_bhxh",
	"tong_cong_tien_luong", "tien_luong_thuc_nhan_cuoi_ky",
}

var payrollColumns = "id, employee_id, salary_month, payroll_type, " +
	strings.Join(numericColumns, ", ") +
	", is_signed, signed_at, signed_by_name, source_file, import_batch_id, created_at, updated_at"

func numericFields(r *payroll.PayrollRecord) []interface{} {
	return []interface{}{
		&r.HeSoLamViec, &r.HeSoPhuCapKetQua, &r.HeSoLuongCoBan, &r.LuongToiThieuCty,
		&r.NgayCongTrongGio, &r.GioCongTangCa, &r.GioAnCa, &r.TongGioLamViec, &r.TongHeSoQuyDoi, &r.NgayCongChuNhat,
		&r.TongLuongSanPhamCongDoan, &r.DonGiaTienLuongTrenGio, &r.TienLuongQuyDoi, &r.TienLuongSanPhamTrongGio, &r.TienLuongTangCa, &r.TienLuong30p, &r.TienLuongChuNhat,
		&r.TienKhenThuongChuyenCan, &r.LuongHocViecPCLuong, &r.TienThuongChatLuong, &r.LuongCNCNQuyDoi,
		&r.TienTangCaVuot, &r.PhuCapTienAn, &r.PhuCapXangXe, &r.PhuCapDienThoai, &r.PhuCapKhac, &r.HoTroThoiTiet, &r.BoSungLuong, &r.TienBocVac, &r.HoTroXangXe,
		&r.BHXHBHTNBHYT, &r.ThueTNCN, &r.ThueTNCNNamNhanLai, &r.TruyThuTheBHYT,
		&r.TamUng, &r.DoanPhi, &r.TienNhaTro, &r.TruBHXH,
		&r.TongCongTienLuong, &r.TienLuongThucNhanCuoiKy,
	}
}

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var r payroll.PayrollRecord
	dest := []interface{}{&r.ID, &r.EmployeeID, &r.SalaryMonth, &r.PayrollType}
	dest = append(dest, numericFields(&r)...)
	dest = append(dest, &r.IsSigned, &r.SignedAt, &r.SignedByName, &r.SourceFile, &r.ImportBatchID, &r.CreatedAt, &r.UpdatedAt)
	err := row.Scan(dest...)
	return r, err
}

func (r *payrollRepository) GetRecord(ctx context.Context, employeeID, salaryMonth string, t payroll.PayrollType) (payroll.PayrollRecord, error) {
	query := `SELECT ` + payrollColumns + ` FROM payrolls WHERE employee_id = $1 AND salary_month = $2 AND payroll_type = $3`

	rec, err := scanPayrollRecord(r.db.QueryRow(ctx, query, employeeID, salaryMonth, t))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

func (r *payrollRepository) ListRecords(ctx context.Context, scope employee.ScopeFilter, filter payroll.RecordFilter) ([]payroll.PayrollRecord, int64, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	add := func(clause string, value interface{}) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	// Scope predicates come first; they are never applied as a post-filter.
	switch scope.Scope {
	case employee.ScopeOwn:
		add("p.employee_id = $%d", scope.EmployeeID)
	case employee.ScopeDepartment:
		add("e.department = $%d", scope.Department)
	}

	if filter.SalaryMonth != "" {
		add("p.salary_month = $%d", filter.SalaryMonth)
	}
	if filter.PayrollType != "" {
		add("p.payroll_type = $%d", filter.PayrollType)
	}
	if filter.EmployeeID != "" {
		add("p.employee_id = $%d", filter.EmployeeID)
	}
	if filter.Department != "" {
		add("e.department = $%d", filter.Department)
	}
	if filter.SignedOnly != nil {
		add("p.is_signed = $%d", *filter.SignedOnly)
	}

	whereClause := strings.Join(where, " AND ")
	from := `FROM payrolls p JOIN employees e ON e.employee_id = p.employee_id`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) `+from+` WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, filter.Offset)

	cols := strings.ReplaceAll(payrollColumns, "id, employee_id", "p.id, p.employee_id")
	query := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY p.employee_id, p.salary_month LIMIT $%d OFFSET $%d`,
		cols, from, whereClause, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

func upsertPayrollSQL() string {
	insertCols := append([]string{"employee_id", "salary_month", "payroll_type"}, numericColumns...)
	insertCols = append(insertCols, "source_file", "import_batch_id")

	placeholders := make([]string, len(insertCols))
	for i := range insertCols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	// Signing columns are deliberately left out of the update list: a
	// re-import refreshes the numbers but never unwinds a signature.
	updates := make([]string, 0, len(numericColumns)+3)
	for _, c := range numericColumns {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	updates = append(updates,
		"source_file = EXCLUDED.source_file",
		"import_batch_id = EXCLUDED.import_batch_id",
		"updated_at = NOW()",
	)

	return fmt.Sprintf(`INSERT INTO payrolls (%s) VALUES (%s)
		ON CONFLICT (employee_id, salary_month, payroll_type) DO UPDATE SET %s`,
		strings.Join(insertCols, ", "), strings.Join(placeholders, ", "), strings.Join(updates, ", "))
}

var upsertPayrollQuery = upsertPayrollSQL()

func upsertPayrollArgs(rec payroll.PayrollRecord) []interface{} {
	args := []interface{}{rec.EmployeeID, rec.SalaryMonth, rec.PayrollType}
	for _, f := range numericFields(&rec) {
		args = append(args, f)
	}
	return append(args, rec.SourceFile, rec.ImportBatchID)
}

// BatchUpsert writes records in independent chunks. A failed chunk is
// reported in its BatchResult and never rolls back earlier chunks.
func (r *payrollRepository) BatchUpsert(ctx context.Context, records []payroll.PayrollRecord, batchSize int) ([]payroll.BatchResult, error) {
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
				tag, err := tx.Exec(ctx, upsertPayrollQuery, upsertPayrollArgs(rec)...)
				if err != nil {
					return fmt.Errorf("failed to upsert payroll for %s %s: %w", rec.EmployeeID, rec.SalaryMonth, err)
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

// SignRecord is the atomic employee-sign step: a conditional update on
// is_signed = false plus the audit log insert, committed together. Exactly
// one of two concurrent attempts can win the update; the loser observes
// ErrAlreadySigned from the follow-up existence check.
func (r *payrollRepository) SignRecord(ctx context.Context, params payroll.SignRecordParams) (payroll.PayrollRecord, error) {
	var signed payroll.PayrollRecord

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE payrolls
			SET is_signed = true,
				signed_at = $4,
				signed_by_name = $5,
				updated_at = NOW()
			WHERE employee_id = $1 AND salary_month = $2 AND payroll_type = $3 AND is_signed = false
			RETURNING ` + payrollColumns

		rec, err := scanPayrollRecord(tx.QueryRow(ctx, query,
			params.EmployeeID, params.SalaryMonth, params.PayrollType, params.SignedAt, params.SignedBy))
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("failed to sign payroll record: %w", err)
			}
			// Distinguish "no such record" from "lost the race".
			var isSigned bool
			err := tx.QueryRow(ctx,
				`SELECT is_signed FROM payrolls WHERE employee_id = $1 AND salary_month = $2 AND payroll_type = $3`,
				params.EmployeeID, params.SalaryMonth, params.PayrollType).Scan(&isSigned)
			if errors.Is(err, pgx.ErrNoRows) {
				return payroll.ErrPayrollRecordNotFound
			}
			if err != nil {
				return fmt.Errorf("failed to check payroll record: %w", err)
			}
			return payroll.ErrAlreadySigned
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO signature_logs (employee_id, salary_month, payroll_type, signed_at, ip_address, user_agent)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, params.EmployeeID, params.SalaryMonth, params.PayrollType, params.SignedAt, params.IPAddress, params.UserAgent)
		if err != nil {
			return fmt.Errorf("failed to insert signature log: %w", err)
		}

		signed = rec
		return nil
	})
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	return signed, nil
}

func (r *payrollRepository) CompletionCounts(ctx context.Context, salaryMonth string, t payroll.PayrollType) (int, int, error) {
	var signed, total int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE is_signed), COUNT(*)
		FROM payrolls
		WHERE salary_month = $1 AND payroll_type = $2
	`, salaryMonth, t).Scan(&signed, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count payroll completion: %w", err)
	}
	return signed, total, nil
}

func (r *payrollRepository) UnsignedSample(ctx context.Context, salaryMonth string, t payroll.PayrollType, limit int) ([]payroll.UnsignedEmployee, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.employee_id, e.full_name, e.department
		FROM payrolls p
		JOIN employees e ON e.employee_id = p.employee_id
		WHERE p.salary_month = $1 AND p.payroll_type = $2 AND p.is_signed = false
		ORDER BY e.department, p.employee_id
		LIMIT $3
	`, salaryMonth, t, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsigned employees: %w", err)
	}
	defer rows.Close()

	var sample []payroll.UnsignedEmployee
	for rows.Next() {
		var u payroll.UnsignedEmployee
		if err := rows.Scan(&u.EmployeeID, &u.FullName, &u.Department); err != nil {
			return nil, fmt.Errorf("failed to scan unsigned employee: %w", err)
		}
		sample = append(sample, u)
	}
	return sample, rows.Err()
}

func (r *payrollRepository) RecentSigned(ctx context.Context, salaryMonth string, t payroll.PayrollType, limit int) ([]payroll.SignedActivity, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.employee_id, e.full_name, p.signed_at
		FROM payrolls p
		JOIN employees e ON e.employee_id = p.employee_id
		WHERE p.salary_month = $1 AND p.payroll_type = $2 AND p.is_signed = true
		ORDER BY p.signed_at DESC
		LIMIT $3
	`, salaryMonth, t, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent signs: %w", err)
	}
	defer rows.Close()

	var activity []payroll.SignedActivity
	for rows.Next() {
		var a payroll.SignedActivity
		if err := rows.Scan(&a.EmployeeID, &a.FullName, &a.SignedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent sign: %w", err)
		}
		activity = append(activity, a)
	}
	return activity, rows.Err()
}
