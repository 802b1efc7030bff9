package importer

import (
	"fmt"
	"strings"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/employee"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/importer"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/validator"
)

var employeeFieldAliases = map[string][]string{
	"employee_id": {"ma nhan vien", "ma nv", "manv", "employee id"},
	"full_name":   {"ho ten", "ho va ten", "full name"},
	"department":  {"bo phan", "phong ban", "department", "don vi"},
	"chuc_vu":     {"chuc vu", "vi tri", "position", "role"},
	"cccd":        {"cccd", "can cuoc", "cmnd"},
}

// ParsedEmployeeRow is a roster row before CCCD hashing and persistence.
type ParsedEmployeeRow struct {
	Row        int
	EmployeeID string
	FullName   string
	Department string
	ChucVu     employee.Role
	CCCD       string
}

func (p ParsedEmployeeRow) Key() (int, string) {
	return p.Row, p.EmployeeID
}

// ParseEmployeeFile parses a roster workbook. employee_id, full_name and
// cccd are required; a missing or unknown chuc_vu defaults to nhan_vien.
func ParseEmployeeFile(data []byte, filename string, collector *importer.Collector) (importer.ParseResult[ParsedEmployeeRow], error) {
	var result importer.ParseResult[ParsedEmployeeRow]

	rows, err := openSheet(data)
	if err != nil {
		return result, err
	}

	columns := resolveHeaders(rows[0], employeeFieldAliases)
	if _, ok := columns["employee_id"]; !ok {
		return result, fmt.Errorf("no employee_id column found in %q", filename)
	}

	seen := make(map[string]int)
	for i, row := range rows[1:] {
		rowNum := i + 2

		empID := cellAt(row, columns["employee_id"])
		fullName := ""
		if idx, ok := columns["full_name"]; ok {
			fullName = cellAt(row, idx)
		}
		if empID == "" && fullName == "" {
			continue
		}

		if errRec := collector.ValidateEmployeeID(rowNum, empID); errRec != nil {
			result.Errors = append(result.Errors, *errRec)
			continue
		}
		empID = strings.TrimSpace(empID)

		if firstRow, dup := seen[empID]; dup {
			result.Errors = append(result.Errors, importer.ImportErrorRecord{
				Row:        rowNum,
				EmployeeID: empID,
				Field:      "employee_id",
				Message:    fmt.Sprintf("Mã nhân viên %q bị trùng với dòng %d", empID, firstRow),
				Type:       importer.ErrorDuplicate,
			})
			continue
		}
		seen[empID] = rowNum

		if fullName == "" {
			result.Errors = append(result.Errors, importer.ImportErrorRecord{
				Row:        rowNum,
				EmployeeID: empID,
				Field:      "full_name",
				Message:    "Họ tên không được để trống",
				Type:       importer.ErrorValidation,
			})
			continue
		}

		cccd := ""
		if idx, ok := columns["cccd"]; ok {
			cccd = cellAt(row, idx)
		}
		if !validator.IsValidCCCD(cccd) {
			result.Errors = append(result.Errors, importer.ImportErrorRecord{
				Row:        rowNum,
				EmployeeID: empID,
				Field:      "cccd",
				Message:    "Số CCCD phải gồm 12 chữ số",
				Type:       importer.ErrorValidation,
			})
			continue
		}

		department := ""
		if idx, ok := columns["department"]; ok {
			department = cellAt(row, idx)
		}

		chucVu := employee.RoleNhanVien
		if idx, ok := columns["chuc_vu"]; ok {
			if role := employee.Role(strings.ToLower(cellAt(row, idx))); role.Valid() {
				chucVu = role
			}
		}

		result.Records = append(result.Records, ParsedEmployeeRow{
			Row:        rowNum,
			EmployeeID: empID,
			FullName:   fullName,
			Department: department,
			ChucVu:     chucVu,
			CCCD:       cccd,
		})
	}

	result.Success = len(result.Records) > 0
	return result, nil
}
