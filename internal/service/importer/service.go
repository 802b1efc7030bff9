package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/config"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/attendance"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/employee"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/importer"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/mapping"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/cache"
)

const knownIDsCacheKey = "employee_ids"

type PayrollImportRequest struct {
	File1           []byte
	File1Name       string
	File2           []byte
	File2Name       string
	DefaultMonth    string
	IsT13           bool
	MappingConfigID *int64
}

type PayrollImportResult struct {
	ImportBatchID   string                       `json:"import_batch_id"`
	TotalRecords    int                          `json:"total_records"`
	InsertedRecords int                          `json:"inserted_records"`
	SkippedRecords  int                          `json:"skipped_records"`
	Errors          []importer.ImportErrorRecord `json:"errors"`
	Merge           *MergeResult                 `json:"merge,omitempty"`
	OriginalRows    map[int]map[string]string    `json:"-"`
}

type AttendanceImportRequest struct {
	File     []byte
	Filename string
	Year     int
	Month    int
}

type AttendanceImportResult struct {
	ImportBatchID   string                       `json:"import_batch_id"`
	TotalRecords    int                          `json:"total_records"`
	InsertedDaily   int                          `json:"inserted_daily"`
	InsertedMonthly int                          `json:"inserted_monthly"`
	SkippedRecords  int                          `json:"skipped_records"`
	Errors          []importer.ImportErrorRecord `json:"errors"`
}

type EmployeeImportRequest struct {
	File     []byte
	Filename string
}

type EmployeeImportResult struct {
	TotalRecords    int                          `json:"total_records"`
	InsertedRecords int                          `json:"inserted_records"`
	SkippedRecords  int                          `json:"skipped_records"`
	Errors          []importer.ImportErrorRecord `json:"errors"`
}

type Service interface {
	ImportPayroll(ctx context.Context, req PayrollImportRequest) (*PayrollImportResult, error)
	ImportAttendance(ctx context.Context, req AttendanceImportRequest) (*AttendanceImportResult, error)
	ImportEmployees(ctx context.Context, req EmployeeImportRequest) (*EmployeeImportResult, error)
	PayrollTemplate() ([]byte, error)
	ErrorReport(errs []importer.ImportErrorRecord, originalRows map[int]map[string]string) ([]byte, error)
}

type serviceImpl struct {
	employeeRepo   employee.EmployeeRepository
	payrollRepo    payroll.PayrollRepository
	attendanceRepo attendance.AttendanceRepository
	mappingRepo    mapping.MappingRepository
	knownIDs       *cache.Cache[string, map[string]struct{}]
	batchSize      int
	now            func() time.Time
}

func NewService(
	employeeRepo employee.EmployeeRepository,
	payrollRepo payroll.PayrollRepository,
	attendanceRepo attendance.AttendanceRepository,
	mappingRepo mapping.MappingRepository,
	cfg config.ImportConfig,
	now func() time.Time,
) Service {
	if now == nil {
		now = time.Now
	}
	return &serviceImpl{
		employeeRepo:   employeeRepo,
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		mappingRepo:    mappingRepo,
		knownIDs:       cache.New[string, map[string]struct{}](cfg.EmployeeCacheTTL, 1, cache.Clock(now)),
		batchSize:      cfg.BatchSize,
		now:            now,
	}
}

func (s *serviceImpl) ImportPayroll(ctx context.Context, req PayrollImportRequest) (*PayrollImportResult, error) {
	collector := importer.NewCollector(s.now)

	var overrides map[string]int
	if req.MappingConfigID != nil {
		cfg, err := s.mappingRepo.GetConfig(ctx, *req.MappingConfigID)
		if err != nil {
			return nil, err
		}
		overrides, err = overridesFor(req.File1, cfg.Mappings)
		if err != nil {
			return nil, err
		}
	}

	parsed1, rawRows, err := ParsePayrollFile(req.File1, req.File1Name, req.DefaultMonth, req.IsT13, collector, overrides)
	if err != nil {
		return nil, err
	}

	result := &PayrollImportResult{
		Errors:       parsed1.Errors,
		OriginalRows: rawRows,
	}

	records := parsed1.Records
	if len(req.File2) > 0 {
		parsed2, rawRows2, err := ParsePayrollFile(req.File2, req.File2Name, req.DefaultMonth, req.IsT13, collector, nil)
		if err != nil {
			return nil, err
		}
		result.Errors = append(result.Errors, parsed2.Errors...)
		for row, raw := range rawRows2 {
			if _, ok := result.OriginalRows[row]; !ok {
				result.OriginalRows[row] = raw
			}
		}

		merged := MergeDualFiles(parsed1.Records, parsed2.Records)
		records = merged.Records
		merged.Records = nil
		result.Merge = &merged
	}

	known, err := s.knownEmployeeIDs(ctx)
	if err != nil {
		return nil, err
	}
	// Records keep file-1 row numbers, also after a merge, so the skip set
	// for the existence pass must come from file 1's errors alone. A file-2
	// parse error on the same row number refers to a different row.
	existErrs := importer.CheckEmployeeExists(records, known, importer.InvalidRows(parsed1.Errors))
	result.Errors = append(result.Errors, existErrs...)
	records = dropInvalid(records, importer.InvalidRows(existErrs))

	result.TotalRecords = len(records) + len(importer.InvalidRows(result.Errors))

	if len(records) == 0 {
		result.SkippedRecords = result.TotalRecords
		return result, nil
	}

	batchID := uuid.NewString()
	result.ImportBatchID = batchID
	for i := range records {
		records[i].Record.ImportBatchID = batchID
	}

	recs := make([]payroll.PayrollRecord, len(records))
	for i, r := range records {
		recs[i] = r.Record
	}
	batches, err := s.payrollRepo.BatchUpsert(ctx, recs, s.batchSize)
	if err != nil {
		return nil, err
	}
	for _, b := range batches {
		result.InsertedRecords += int(b.Affected)
		if b.Err != nil {
			result.Errors = append(result.Errors, importer.ImportErrorRecord{
				Message: fmt.Sprintf("Lỗi ghi dữ liệu (lô %d): %v", b.BatchIndex, b.Err),
				Type:    importer.ErrorDatabase,
			})
		}
	}
	result.SkippedRecords = result.TotalRecords - result.InsertedRecords

	slog.Info("payroll import finished",
		"import_batch_id", batchID,
		"total", result.TotalRecords,
		"inserted", result.InsertedRecords,
		"errors", len(result.Errors),
	)
	return result, nil
}

func (s *serviceImpl) ImportAttendance(ctx context.Context, req AttendanceImportRequest) (*AttendanceImportResult, error) {
	collector := importer.NewCollector(s.now)

	parsed, err := ParseAttendanceFile(req.File, req.Filename, req.Year, req.Month, collector)
	if err != nil {
		return nil, err
	}

	result := &AttendanceImportResult{Errors: parsed.Errors}

	known, err := s.knownEmployeeIDs(ctx)
	if err != nil {
		return nil, err
	}
	existErrs := importer.CheckEmployeeExists(parsed.Records, known, importer.InvalidRows(result.Errors))
	result.Errors = append(result.Errors, existErrs...)
	records := dropInvalid(parsed.Records, importer.InvalidRows(existErrs))

	result.TotalRecords = len(records) + len(importer.InvalidRows(result.Errors))
	if len(records) == 0 {
		result.SkippedRecords = result.TotalRecords
		return result, nil
	}

	batchID := uuid.NewString()
	result.ImportBatchID = batchID

	var daily []attendance.AttendanceDaily
	var monthly []attendance.AttendanceMonthly
	for _, r := range records {
		for _, d := range r.Daily {
			d.ImportBatchID = batchID
			daily = append(daily, d)
		}
		m := r.Monthly
		m.ImportBatchID = batchID
		monthly = append(monthly, m)
	}

	dailyBatches, err := s.attendanceRepo.UpsertDaily(ctx, daily, s.batchSize)
	if err != nil {
		return nil, err
	}
	for _, b := range dailyBatches {
		result.InsertedDaily += int(b.Affected)
		if b.Err != nil {
			result.Errors = append(result.Errors, importer.ImportErrorRecord{
				Message: fmt.Sprintf("Lỗi ghi chấm công ngày (lô %d): %v", b.BatchIndex, b.Err),
				Type:    importer.ErrorDatabase,
			})
		}
	}

	monthlyBatches, err := s.attendanceRepo.UpsertMonthly(ctx, monthly, s.batchSize)
	if err != nil {
		return nil, err
	}
	for _, b := range monthlyBatches {
		result.InsertedMonthly += int(b.Affected)
		if b.Err != nil {
			result.Errors = append(result.Errors, importer.ImportErrorRecord{
				Message: fmt.Sprintf("Lỗi ghi chấm công tháng (lô %d): %v", b.BatchIndex, b.Err),
				Type:    importer.ErrorDatabase,
			})
		}
	}

	result.SkippedRecords = result.TotalRecords - len(records)

	slog.Info("attendance import finished",
		"import_batch_id", batchID,
		"period", fmt.Sprintf("%d-%02d", req.Year, req.Month),
		"employees", len(records),
		"daily_rows", result.InsertedDaily,
	)
	return result, nil
}

func (s *serviceImpl) ImportEmployees(ctx context.Context, req EmployeeImportRequest) (*EmployeeImportResult, error) {
	collector := importer.NewCollector(s.now)

	parsed, err := ParseEmployeeFile(req.File, req.Filename, collector)
	if err != nil {
		return nil, err
	}

	result := &EmployeeImportResult{Errors: parsed.Errors}
	result.TotalRecords = len(parsed.Records) + len(importer.InvalidRows(parsed.Errors))

	if len(parsed.Records) == 0 {
		result.SkippedRecords = result.TotalRecords
		return result, nil
	}

	employees := make([]employee.Employee, 0, len(parsed.Records))
	for _, r := range parsed.Records {
		hash, err := bcrypt.GenerateFromPassword([]byte(r.CCCD), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash cccd for %s: %w", r.EmployeeID, err)
		}
		employees = append(employees, employee.Employee{
			EmployeeID:     r.EmployeeID,
			FullName:       r.FullName,
			Department:     r.Department,
			ChucVu:         r.ChucVu,
			CCCDHash:       string(hash),
			CredentialKind: employee.CredentialCCCD,
			IsActive:       true,
		})
	}

	inserted, err := s.employeeRepo.BatchUpsert(ctx, employees)
	if err != nil {
		return nil, err
	}
	result.InsertedRecords = inserted
	result.SkippedRecords = result.TotalRecords - inserted

	// The roster changed, so the import existence pass must re-read it.
	s.knownIDs.Delete(knownIDsCacheKey)

	slog.Info("employee import finished", "total", result.TotalRecords, "inserted", inserted)
	return result, nil
}

func (s *serviceImpl) PayrollTemplate() ([]byte, error) {
	return BuildPayrollTemplate()
}

func (s *serviceImpl) ErrorReport(errs []importer.ImportErrorRecord, originalRows map[int]map[string]string) ([]byte, error) {
	return BuildErrorReport(importer.CreateErrorReportData(errs, originalRows))
}

func (s *serviceImpl) knownEmployeeIDs(ctx context.Context) (map[string]struct{}, error) {
	if ids, ok := s.knownIDs.Get(knownIDsCacheKey); ok {
		return ids, nil
	}
	ids, err := s.employeeRepo.KnownIDs(ctx)
	if err != nil {
		return nil, err
	}
	s.knownIDs.Set(knownIDsCacheKey, ids)
	return ids, nil
}

// overridesFor resolves a saved mapping configuration against the file's
// actual header row.
func overridesFor(fileData []byte, mappings []mapping.ColumnMapping) (map[string]int, error) {
	rows, err := openSheet(fileData)
	if err != nil {
		return nil, err
	}
	return columnOverrides(rows[0], mappings), nil
}

// dropInvalid removes records whose row failed the existence pass.
func dropInvalid[T importer.Keyed](records []T, invalid map[int]struct{}) []T {
	if len(invalid) == 0 {
		return records
	}
	kept := records[:0]
	for _, r := range records {
		row, _ := r.Key()
		if _, bad := invalid[row]; !bad {
			kept = append(kept, r)
		}
	}
	return kept
}
