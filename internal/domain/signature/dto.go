package signature

import (
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/validator"
)

type EmployeeSignRequest struct {
	EmployeeID  string `json:"employee_id"`
	CCCD        string `json:"cccd"`
	SalaryMonth string `json:"salary_month"`
	IsT13       bool   `json:"is_t13"`
}

func (r *EmployeeSignRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "Mã nhân viên không hợp lệ"})
	}
	if validator.IsEmpty(r.CCCD) {
		errs = append(errs, validator.ValidationError{Field: "cccd", Message: "Vui lòng nhập số CCCD hoặc mật khẩu"})
	}
	if !payroll.ValidSalaryMonth(r.SalaryMonth, payroll.TypeForMonth(r.IsT13)) {
		errs = append(errs, validator.ValidationError{Field: "salary_month", Message: "Tháng lương không đúng định dạng"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeSignResponse struct {
	EmployeeName       string `json:"employee_name"`
	SignedAt           string `json:"signed_at"`
	SignedAtDisplay    string `json:"signed_at_display"`
	SalaryMonth        string `json:"salary_month"`
	SalaryMonthDisplay string `json:"salary_month_display"`
}

type ManagementSignRequest struct {
	SalaryMonth   string `json:"salary_month"`
	SignatureType Type   `json:"signature_type"`
	IsT13         bool   `json:"is_t13"`
	Notes         string `json:"notes,omitempty"`
}

func (r *ManagementSignRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.SignatureType.Valid() {
		errs = append(errs, validator.ValidationError{Field: "signature_type", Message: "Loại chữ ký không hợp lệ"})
	}
	if !payroll.ValidSalaryMonth(r.SalaryMonth, payroll.TypeForMonth(r.IsT13)) {
		errs = append(errs, validator.ValidationError{Field: "salary_month", Message: "Tháng lương không đúng định dạng"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ManagementSignatureResponse struct {
	SalaryMonth   string              `json:"salary_month"`
	PayrollType   payroll.PayrollType `json:"payroll_type"`
	SignatureType Type                `json:"signature_type"`
	SignedByID    string              `json:"signed_by_id"`
	SignedByName  string              `json:"signed_by_name"`
	Department    string              `json:"department"`
	SignedAt      string              `json:"signed_at"`
	Notes         string              `json:"notes,omitempty"`
}

func ToResponse(s ManagementSignature) ManagementSignatureResponse {
	return ManagementSignatureResponse{
		SalaryMonth:   s.SalaryMonth,
		PayrollType:   s.PayrollType,
		SignatureType: s.SignatureType,
		SignedByID:    s.SignedByID,
		SignedByName:  s.SignedByName,
		Department:    s.Department,
		SignedAt:      s.SignedAt.Format("2006-01-02T15:04:05Z07:00"),
		Notes:         s.Notes,
	}
}
