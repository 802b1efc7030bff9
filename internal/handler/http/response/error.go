package response

import (
	"errors"
	"net/http"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/auth"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/employee"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/mapping"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/signature"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Thông tin đăng nhập không đúng")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Phiên đăng nhập không hợp lệ")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Phiên đăng nhập đã hết hạn")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Không tìm thấy nhân viên")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Nhân viên đã ngừng hoạt động")
	case errors.Is(err, employee.ErrEmployeeIDExists):
		Conflict(w, "Mã nhân viên đã tồn tại")
	case errors.Is(err, employee.ErrInvalidCCCD):
		Unauthorized(w, "Số CCCD không đúng")
	case errors.Is(err, employee.ErrInvalidPassword):
		Unauthorized(w, "Mật khẩu không đúng")
	case errors.Is(err, employee.ErrWeakPassword):
		BadRequest(w, "Mật khẩu mới quá yếu", nil)
	case errors.Is(err, employee.ErrForbiddenScope):
		Forbidden(w, "Bạn không có quyền xem dữ liệu này")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Không tìm thấy dữ liệu lương cho tháng này")
	case errors.Is(err, payroll.ErrAlreadySigned):
		Conflict(w, "Bảng lương này đã được ký trước đó")
	case errors.Is(err, payroll.ErrInvalidSalaryMonth):
		BadRequest(w, "Tháng lương không đúng định dạng", nil)
	case errors.Is(err, payroll.ErrInvalidPayrollType):
		BadRequest(w, "Loại bảng lương không hợp lệ", nil)

	// Signature domain errors
	case errors.Is(err, signature.ErrInvalidSignatureType):
		BadRequest(w, "Loại chữ ký không hợp lệ", nil)
	case errors.Is(err, signature.ErrUnauthorizedType):
		Forbidden(w, "Vai trò của bạn không được ký loại chữ ký này")
	case errors.Is(err, signature.ErrIncompleteEmployees):
		BadRequest(w, "Chưa đủ 100% nhân viên ký tên, không thể ký xác nhận", nil)
	case errors.Is(err, signature.ErrSignatureExists):
		Conflict(w, "Chữ ký này đã tồn tại cho tháng lương")

	// Mapping domain errors
	case errors.Is(err, mapping.ErrConfigNotFound):
		NotFound(w, "Không tìm thấy cấu hình ánh xạ cột")
	case errors.Is(err, mapping.ErrConfigNameExists):
		Conflict(w, "Tên cấu hình đã tồn tại")

	// Default
	default:
		InternalServerError(w, "Đã xảy ra lỗi, vui lòng thử lại sau")
	}
}
