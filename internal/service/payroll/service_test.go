package payroll

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/employee"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
)

type fakeEmployeeRepo struct {
	employee.EmployeeRepository

	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, employeeID string) (employee.Employee, error) {
	emp, ok := f.employees[employeeID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakePayrollRepo struct {
	payroll.PayrollRepository

	records    map[string]payroll.PayrollRecord
	listScope  employee.ScopeFilter
	listFilter payroll.RecordFilter
}

func (f *fakePayrollRepo) GetRecord(_ context.Context, employeeID, salaryMonth string, t payroll.PayrollType) (payroll.PayrollRecord, error) {
	rec, ok := f.records[employeeID+"|"+salaryMonth+"|"+string(t)]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return rec, nil
}

func (f *fakePayrollRepo) ListRecords(_ context.Context, scope employee.ScopeFilter, filter payroll.RecordFilter) ([]payroll.PayrollRecord, int64, error) {
	f.listScope = scope
	f.listFilter = filter
	return []payroll.PayrollRecord{{EmployeeID: "NV001", SalaryMonth: "2025-05"}}, 1, nil
}

func monthlyRecord(employeeID, month string) payroll.PayrollRecord {
	return payroll.PayrollRecord{
		EmployeeID:  employeeID,
		SalaryMonth: month,
		PayrollType: payroll.TypeMonthly,
	}
}

func TestGetRecordOwnScope(t *testing.T) {
	payrolls := &fakePayrollRepo{records: map[string]payroll.PayrollRecord{
		"NV001|2025-05|monthly": monthlyRecord("NV001", "2025-05"),
	}}
	svc := NewService(&fakeEmployeeRepo{}, payrolls, nil)

	viewer := Viewer{EmployeeID: "NV001", Role: employee.RoleNhanVien}
	rec, err := svc.GetRecord(context.Background(), viewer, "NV001", "2025-05", false)
	require.NoError(t, err)
	assert.Equal(t, "NV001", rec.EmployeeID)

	// Employee id comparison is case-insensitive, matching the lookup form.
	_, err = svc.GetRecord(context.Background(), viewer, "nv001", "2025-05", false)
	assert.NoError(t, err)

	_, err = svc.GetRecord(context.Background(), viewer, "NV002", "2025-05", false)
	assert.ErrorIs(t, err, employee.ErrForbiddenScope)
}

func TestGetRecordDepartmentScope(t *testing.T) {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"NV001": {EmployeeID: "NV001", Department: "May 1"},
		"NV002": {EmployeeID: "NV002", Department: "May 2"},
	}}
	payrolls := &fakePayrollRepo{records: map[string]payroll.PayrollRecord{
		"NV001|2025-05|monthly": monthlyRecord("NV001", "2025-05"),
	}}
	svc := NewService(employees, payrolls, nil)

	viewer := Viewer{EmployeeID: "TT001", Role: employee.RoleToTruong, Department: "May 1"}
	_, err := svc.GetRecord(context.Background(), viewer, "NV001", "2025-05", false)
	assert.NoError(t, err)

	_, err = svc.GetRecord(context.Background(), viewer, "NV002", "2025-05", false)
	assert.ErrorIs(t, err, employee.ErrForbiddenScope)

	_, err = svc.GetRecord(context.Background(), viewer, "NV404", "2025-05", false)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGetRecordAllScope(t *testing.T) {
	payrolls := &fakePayrollRepo{records: map[string]payroll.PayrollRecord{
		"NV001|2025-05|monthly": monthlyRecord("NV001", "2025-05"),
	}}
	svc := NewService(&fakeEmployeeRepo{}, payrolls, nil)

	viewer := Viewer{EmployeeID: "GD001", Role: employee.RoleGiamDoc}
	_, err := svc.GetRecord(context.Background(), viewer, "NV001", "2025-05", false)
	assert.NoError(t, err)

	_, err = svc.GetRecord(context.Background(), viewer, "NV404", "2025-05", false)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestGetRecordInvalidMonth(t *testing.T) {
	svc := NewService(&fakeEmployeeRepo{}, &fakePayrollRepo{}, nil)

	viewer := Viewer{EmployeeID: "GD001", Role: employee.RoleGiamDoc}
	_, err := svc.GetRecord(context.Background(), viewer, "NV001", "2025-5", false)
	assert.ErrorIs(t, err, payroll.ErrInvalidSalaryMonth)

	_, err = svc.GetRecord(context.Background(), viewer, "NV001", "2025-13", false)
	assert.ErrorIs(t, err, payroll.ErrInvalidSalaryMonth)
}

func TestListRecords(t *testing.T) {
	payrolls := &fakePayrollRepo{}
	svc := NewService(&fakeEmployeeRepo{}, payrolls, nil)

	viewer := Viewer{EmployeeID: "TT001", Role: employee.RoleToTruong, Department: "May 1"}
	resp, err := svc.ListRecords(context.Background(), viewer, ListRequest{SalaryMonth: "2025-05"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, defaultListLimit, resp.Limit)
	require.Len(t, resp.Records, 1)

	assert.Equal(t, employee.ScopeDepartment, payrolls.listScope.Scope)
	assert.Equal(t, "May 1", payrolls.listScope.Department)
	assert.Equal(t, payroll.TypeMonthly, payrolls.listFilter.PayrollType)
}

func TestListRecordsClampsPaging(t *testing.T) {
	payrolls := &fakePayrollRepo{}
	svc := NewService(&fakeEmployeeRepo{}, payrolls, nil)

	viewer := Viewer{EmployeeID: "GD001", Role: employee.RoleGiamDoc}
	resp, err := svc.ListRecords(context.Background(), viewer, ListRequest{Limit: 1000, Offset: -5})
	require.NoError(t, err)

	assert.Equal(t, defaultListLimit, resp.Limit)
	assert.Equal(t, 0, resp.Offset)
	// No month filter means no payroll type filter either.
	assert.Equal(t, payroll.PayrollType(""), payrolls.listFilter.PayrollType)
}

func TestListRecordsInvalidMonth(t *testing.T) {
	svc := NewService(&fakeEmployeeRepo{}, &fakePayrollRepo{}, nil)

	viewer := Viewer{EmployeeID: "GD001", Role: employee.RoleGiamDoc}
	_, err := svc.ListRecords(context.Background(), viewer, ListRequest{SalaryMonth: "05-2025"})
	assert.ErrorIs(t, err, payroll.ErrInvalidSalaryMonth)
}
