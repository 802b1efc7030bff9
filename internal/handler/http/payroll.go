package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/handler/http/response"
	payrollService "github.com/levanminhduc/LuongHoaThoNew-sub004/internal/service/payroll"
)

type PayrollHandler interface {
	GetRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payrollService.Service
}

func NewPayrollHandler(svc payrollService.Service) PayrollHandler {
	return &payrollHandlerImpl{payrollService: svc}
}

func viewerFrom(r *http.Request) payrollService.Viewer {
	p := principalFrom(r)
	return payrollService.Viewer{
		EmployeeID: p.EmployeeID,
		Role:       p.Role,
		Department: p.Department,
	}
}

func (h *payrollHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	month := chi.URLParam(r, "month")

	result, err := h.payrollService.GetRecord(r.Context(), viewerFrom(r), employeeID, month, isT13Param(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	req := payrollService.ListRequest{
		SalaryMonth: q.Get("salary_month"),
		IsT13:       q.Get("is_t13") == "true",
		EmployeeID:  q.Get("employee_id"),
		Department:  q.Get("department"),
		Limit:       limit,
		Offset:      offset,
	}

	result, err := h.payrollService.ListRecords(r.Context(), viewerFrom(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, &response.Meta{
		Limit:      result.Limit,
		TotalItems: result.Total,
	})
}
