package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/employee"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/signature"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/handler/http/response"
)

func roleFromRequest(r *http.Request) (employee.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return employee.Role(roleStr), true
}

// RequireAdmin admits only the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromRequest(r)
		if !ok || !employee.Capabilities(role).IsAdmin {
			response.Forbidden(w, "Chỉ quản trị viên được thực hiện thao tác này")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireManagementSigner admits roles that may create at least one
// management signature type, and the admin.
func RequireManagementSigner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromRequest(r)
		if !ok {
			response.HandleError(w, signature.ErrUnauthorizedType)
			return
		}
		cap := employee.Capabilities(role)
		if !cap.IsAdmin && cap.SignType == "" {
			response.HandleError(w, signature.ErrUnauthorizedType)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSupervisor admits roles whose view scope reaches beyond their own
// records (department or all).
func RequireSupervisor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromRequest(r)
		if !ok || employee.Capabilities(role).Scope == employee.ScopeOwn {
			response.HandleError(w, employee.ErrForbiddenScope)
			return
		}
		next.ServeHTTP(w, r)
	})
}
