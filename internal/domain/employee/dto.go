package employee

import "github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/validator"

type ChangePasswordRequest struct {
	EmployeeID      string `json:"employee_id"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "Mã nhân viên không hợp lệ"})
	}
	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{Field: "current_password", Message: "Vui lòng nhập mật khẩu hiện tại"})
	}
	if len(r.NewPassword) < 6 {
		errs = append(errs, validator.ValidationError{Field: "new_password", Message: "Mật khẩu mới phải có ít nhất 6 ký tự"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
	ChucVu     Role   `json:"chuc_vu"`
	IsActive   bool   `json:"is_active"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID: e.EmployeeID,
		FullName:   e.FullName,
		Department: e.Department,
		ChucVu:     e.ChucVu,
		IsActive:   e.IsActive,
	}
}
