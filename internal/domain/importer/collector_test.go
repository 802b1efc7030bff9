package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
}

func TestValidateEmployeeID(t *testing.T) {
	c := NewCollector(fixedNow)

	t.Run("valid ids pass", func(t *testing.T) {
		assert.Nil(t, c.ValidateEmployeeID(2, "NV001"))
		assert.Nil(t, c.ValidateEmployeeID(2, "  NV001  "))
		assert.Nil(t, c.ValidateEmployeeID(2, "ab_01-X"))
	})

	t.Run("empty id", func(t *testing.T) {
		errRec := c.ValidateEmployeeID(3, "   ")
		require.NotNil(t, errRec)
		assert.Equal(t, 3, errRec.Row)
		assert.Equal(t, "employee_id", errRec.Field)
		assert.Equal(t, ErrorValidation, errRec.Type)
	})

	t.Run("malformed id", func(t *testing.T) {
		errRec := c.ValidateEmployeeID(4, "nv 001")
		require.NotNil(t, errRec)
		assert.Equal(t, ErrorValidation, errRec.Type)
	})
}

func TestValidateSalaryMonth(t *testing.T) {
	c := NewCollector(fixedNow)

	tests := []struct {
		name  string
		month string
		isT13 bool
		valid bool
	}{
		{"monthly ok", "2025-05", false, true},
		{"monthly december", "2024-12", false, true},
		{"monthly rejects month 13", "2024-13", false, false},
		{"monthly rejects month 00", "2024-00", false, false},
		{"t13 ok", "2025-13", true, true},
		{"t13 rejects regular month", "2025-05", true, false},
		{"short year", "24-01", false, false},
		{"single digit month", "2024-1", false, false},
		{"garbage", "abcd-ef", false, false},
		{"empty", "", false, false},
		{"year below floor", "2019-05", false, false},
		{"next year allowed", "2026-01", false, true},
		{"year beyond horizon", "2027-01", false, false},
		{"t13 year bounds apply", "2019-13", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errRec := c.ValidateSalaryMonth(5, tt.month, tt.isT13)
			if tt.valid {
				assert.Nil(t, errRec)
			} else {
				require.NotNil(t, errRec)
				assert.Equal(t, "salary_month", errRec.Field)
				assert.Equal(t, ErrorValidation, errRec.Type)
			}
		})
	}
}

type keyedRow struct {
	row int
	id  string
}

func (k keyedRow) Key() (int, string) { return k.row, k.id }

func TestCheckEmployeeExists(t *testing.T) {
	known := map[string]struct{}{"NV001": {}, "NV002": {}}

	records := []keyedRow{
		{row: 2, id: "NV001"},
		{row: 3, id: "NV999"},
		{row: 4, id: "NV888"},
	}

	t.Run("reports unknown ids", func(t *testing.T) {
		errs := CheckEmployeeExists(records, known, nil)
		require.Len(t, errs, 2)
		assert.Equal(t, 3, errs[0].Row)
		assert.Equal(t, ErrorEmployeeNotFound, errs[0].Type)
		assert.Equal(t, "NV888", errs[1].EmployeeID)
	})

	t.Run("skips rows that already failed structural validation", func(t *testing.T) {
		errs := CheckEmployeeExists(records, known, map[int]struct{}{3: {}})
		require.Len(t, errs, 1)
		assert.Equal(t, 4, errs[0].Row)
	})
}

func TestCreateErrorReportDataOrdersByRow(t *testing.T) {
	errs := []ImportErrorRecord{
		{Row: 9, Field: "salary_month", Message: "bad month"},
		{Row: 3, Field: "employee_id", Message: "bad id"},
	}
	original := map[int]map[string]string{
		3: {"Mã Nhân Viên": "x y"},
		9: {"Tháng Lương": "2024-99"},
	}

	report := CreateErrorReportData(errs, original)
	require.Len(t, report, 2)
	assert.Equal(t, 3, report[0].Row)
	assert.Equal(t, "x y", report[0].Original["Mã Nhân Viên"])
	assert.Equal(t, 9, report[1].Row)
}
