// Package payroll implements role-scoped payroll lookups. The caller's view
// scope is translated into a repository ScopeFilter once, here, so every
// query below it is bounded by SQL predicates.
package payroll

import (
	"context"
	"strings"
	"time"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/employee"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
)

// Viewer identifies who is reading payroll data.
type Viewer struct {
	EmployeeID string
	Role       employee.Role
	Department string
}

type ListRequest struct {
	SalaryMonth string
	IsT13       bool
	EmployeeID  string
	Department  string
	Limit       int
	Offset      int
}

type ListResponse struct {
	Records []payroll.PayrollRecordResponse `json:"records"`
	Total   int64                           `json:"total"`
	Limit   int                             `json:"limit"`
	Offset  int                             `json:"offset"`
}

type Service interface {
	// GetRecord returns one payroll record if the viewer's scope covers it.
	GetRecord(ctx context.Context, viewer Viewer, employeeID, salaryMonth string, isT13 bool) (payroll.PayrollRecordResponse, error)
	ListRecords(ctx context.Context, viewer Viewer, req ListRequest) (ListResponse, error)
}

type serviceImpl struct {
	employeeRepo employee.EmployeeRepository
	payrollRepo  payroll.PayrollRepository
	now          func() time.Time
}

func NewService(employeeRepo employee.EmployeeRepository, payrollRepo payroll.PayrollRepository, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &serviceImpl{employeeRepo: employeeRepo, payrollRepo: payrollRepo, now: now}
}

const defaultListLimit = 50

// scopeFor maps the viewer to the SQL scope filter.
func scopeFor(viewer Viewer) employee.ScopeFilter {
	cap := employee.Capabilities(viewer.Role)
	return employee.ScopeFilter{
		Scope:      cap.Scope,
		EmployeeID: viewer.EmployeeID,
		Department: viewer.Department,
	}
}

func (s *serviceImpl) GetRecord(ctx context.Context, viewer Viewer, employeeID, salaryMonth string, isT13 bool) (payroll.PayrollRecordResponse, error) {
	if !payroll.ValidSalaryMonth(salaryMonth, payroll.TypeForMonth(isT13)) {
		return payroll.PayrollRecordResponse{}, payroll.ErrInvalidSalaryMonth
	}

	cap := employee.Capabilities(viewer.Role)
	switch cap.Scope {
	case employee.ScopeOwn:
		if !strings.EqualFold(employeeID, viewer.EmployeeID) {
			return payroll.PayrollRecordResponse{}, employee.ErrForbiddenScope
		}
	case employee.ScopeDepartment:
		// Department lives on the employee row, not the payroll record.
		target, err := s.employeeRepo.GetByID(ctx, employeeID)
		if err != nil {
			return payroll.PayrollRecordResponse{}, err
		}
		if !strings.EqualFold(target.Department, viewer.Department) {
			return payroll.PayrollRecordResponse{}, employee.ErrForbiddenScope
		}
	}

	rec, err := s.payrollRepo.GetRecord(ctx, employeeID, salaryMonth, payroll.TypeForMonth(isT13))
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.ToResponse(rec), nil
}

func (s *serviceImpl) ListRecords(ctx context.Context, viewer Viewer, req ListRequest) (ListResponse, error) {
	if req.SalaryMonth != "" && !payroll.ValidSalaryMonth(req.SalaryMonth, payroll.TypeForMonth(req.IsT13)) {
		return ListResponse{}, payroll.ErrInvalidSalaryMonth
	}

	limit := req.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	filter := payroll.RecordFilter{
		SalaryMonth: req.SalaryMonth,
		EmployeeID:  req.EmployeeID,
		Department:  req.Department,
		Limit:       limit,
		Offset:      offset,
	}
	if req.SalaryMonth != "" {
		filter.PayrollType = payroll.TypeForMonth(req.IsT13)
	}

	records, total, err := s.payrollRepo.ListRecords(ctx, scopeFor(viewer), filter)
	if err != nil {
		return ListResponse{}, err
	}

	responses := make([]payroll.PayrollRecordResponse, len(records))
	for i, rec := range records {
		responses[i] = payroll.ToResponse(rec)
	}
	return ListResponse{Records: responses, Total: total, Limit: limit, Offset: offset}, nil
}
