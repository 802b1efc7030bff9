package importer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/mapping"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
)

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "he so lam viec", NormalizeHeader("Hệ Số Làm Việc"))
	assert.Equal(t, "he so lam viec", NormalizeHeader("  he_so-lam/viec  "))
	assert.Equal(t, "ma nhan vien", NormalizeHeader("Mã Nhân Viên (bắt buộc)")[:12])
	assert.Equal(t, "", NormalizeHeader("   "))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("Hệ Số Làm Việc", "he_so_lam_viec"))
	assert.Equal(t, 0.9, similarity("Tổng Hệ Số Làm Việc Quy Đổi Thêm", "he_so_lam_viec"))
	assert.Greater(t, similarity("He So Viec Lam", "he_so_lam_viec"), 0.5)
	assert.Equal(t, 0.0, similarity("Ghi chú", "he_so_lam_viec"))
}

func TestProposeMappings(t *testing.T) {
	headers := []string{"Mã Nhân Viên", "Hệ Số Làm Việc", "Ghi chú nội bộ", "Tiền Lương Tăng Ca"}
	fields := []string{"employee_id", "he_so_lam_viec", "tien_luong_tang_ca"}

	proposals := ProposeMappings(headers, fields)
	require.Len(t, proposals, 2)

	byField := make(map[string]mapping.ProposedMapping)
	for _, p := range proposals {
		byField[p.DatabaseField] = p
	}

	hs := byField["he_so_lam_viec"]
	assert.Equal(t, "Hệ Số Làm Việc", hs.ExcelColumnName)
	assert.Equal(t, 1.0, hs.ConfidenceScore)
	assert.Equal(t, mapping.MappingExact, hs.MappingType)

	tc := byField["tien_luong_tang_ca"]
	assert.Equal(t, "Tiền Lương Tăng Ca", tc.ExcelColumnName)

	// "employee_id" has no overlap with the Vietnamese header, so it is
	// not proposed; the unrelated header is never consumed.
	_, proposed := byField["employee_id"]
	assert.False(t, proposed)
}

func TestProposeMappingsConsumesHeaderOnce(t *testing.T) {
	headers := []string{"Tiền Lương Tăng Ca"}
	fields := []string{"tien_luong_tang_ca", "tien_tang_ca_vuot"}

	proposals := ProposeMappings(headers, fields)
	require.Len(t, proposals, 1)
	assert.Equal(t, "tien_luong_tang_ca", proposals[0].DatabaseField)
}

func TestColumnOverrides(t *testing.T) {
	header := []string{"Cột A", "Mã NV", "Lương Cơ Bản"}
	mappings := []mapping.ColumnMapping{
		{DatabaseField: "employee_id", ExcelColumnName: "Mã NV"},
		{DatabaseField: "he_so_luong_co_ban", ExcelColumnName: "lương cơ bản"},
		{DatabaseField: "tam_ung", ExcelColumnName: "Không Tồn Tại"},
	}

	overrides := columnOverrides(header, mappings)
	assert.Equal(t, map[string]int{"employee_id": 1, "he_so_luong_co_ban": 2}, overrides)
}

func payrollRow(row int, id string, month string, fields map[string]decimal.Decimal) ParsedPayrollRow {
	rec := payroll.PayrollRecord{EmployeeID: id, SalaryMonth: month, PayrollType: payroll.TypeMonthly, SourceFile: "f"}
	for field, v := range fields {
		payrollFieldSetters[field](&rec, v)
	}
	return ParsedPayrollRow{Row: row, EmployeeID: id, SalaryMonth: month, Record: rec}
}

func TestMergeDualFiles(t *testing.T) {
	file1 := []ParsedPayrollRow{
		payrollRow(2, "NV001", "2025-05", map[string]decimal.Decimal{"tong_cong_tien_luong": decimal.NewFromInt(100)}),
		payrollRow(3, "NV002", "2025-05", map[string]decimal.Decimal{"tong_cong_tien_luong": decimal.NewFromInt(200)}),
	}
	file2 := []ParsedPayrollRow{
		payrollRow(2, "NV001", "2025-05", map[string]decimal.Decimal{"bhxh_bhtn_bhyt": decimal.NewFromInt(7)}),
		payrollRow(3, "NV003", "2025-05", map[string]decimal.Decimal{"bhxh_bhtn_bhyt": decimal.NewFromInt(9)}),
	}

	result := MergeDualFiles(file1, file2)

	assert.Equal(t, 2, result.File1Processed)
	assert.Equal(t, 2, result.File2Processed)
	assert.Equal(t, 1, result.MatchedRecords)
	assert.Equal(t, []string{"NV002"}, result.UnmatchedFile1)
	assert.Equal(t, []string{"NV003"}, result.UnmatchedFile2)

	require.Len(t, result.Records, 1)
	merged := result.Records[0].Record
	assert.True(t, merged.TongCongTienLuong.Equal(decimal.NewFromInt(100)))
	assert.True(t, merged.BHXHBHTNBHYT.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, "f+f", merged.SourceFile)
}
