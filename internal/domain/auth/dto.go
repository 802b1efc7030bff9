package auth

import "github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/validator"

type LoginRequest struct {
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "Mã nhân viên không hợp lệ"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "Vui lòng nhập mật khẩu"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	EmployeeID  string `json:"employee_id"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	Department  string `json:"department"`

	// The refresh token travels in an HttpOnly cookie, never in the body.
	RefreshToken     string `json:"-"`
	RefreshExpiresAt int64  `json:"-"`
}
