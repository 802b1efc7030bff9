package http

import (
	"encoding/json"
	"net/http"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/auth"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/employee"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/handler/http/response"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/jwt"
	authService "github.com/levanminhduc/LuongHoaThoNew-sub004/internal/service/auth"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService authService.Service
	jwtService  jwt.Service
}

func NewAuthHandler(svc authService.Service, jwtService jwt.Service) AuthHandler {
	return &authHandlerImpl{authService: svc, jwtService: jwtService}
}

func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req, r.RemoteAddr)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(result.RefreshToken, result.RefreshExpiresAt))
	response.SuccessWithMessage(w, "Đăng nhập thành công", result)
}

// Refresh exchanges the refresh-token cookie for a new token pair and
// rotates the cookie.
func (h *authHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(result.RefreshToken, result.RefreshExpiresAt))
	response.Success(w, result)
}

func (h *authHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req employee.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	// A caller may only change their own password.
	p := principalFrom(r)
	if p.EmployeeID != req.EmployeeID {
		response.HandleError(w, employee.ErrForbiddenScope)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), req, r.RemoteAddr); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Đổi mật khẩu thành công", nil)
}
