package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/jwt"
)

// principalFrom extracts the verified token claims. The AuthRequired
// middleware runs first, so missing claims only happen on public routes.
func principalFrom(r *http.Request) jwt.Principal {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return jwt.Principal{}
	}
	return jwt.PrincipalFromClaims(claims)
}
