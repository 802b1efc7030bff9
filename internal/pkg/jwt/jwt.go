package jwt

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/employee"
)

// Principal is the authenticated identity every handler consumes.
type Principal struct {
	EmployeeID  string
	Username    string
	Role        employee.Role
	Department  string
	Permissions []string
}

// IsRole reports whether the principal has the named role.
func (p Principal) IsRole(name employee.Role) bool {
	return p.Role == name
}

type Service interface {
	GenerateAccessToken(p Principal) (token string, expiresAt int64, err error)
	GenerateRefreshToken(employeeID string) (token string, expiresAt int64, err error)
	// ParseRefreshToken verifies a refresh token and returns the employee id
	// it was issued to.
	ParseRefreshToken(token string) (employeeID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
}

type JWTService struct {
	secretKey                  string
	accessTokenExpirationTime  string
	refreshTokenExpirationTime string
	tokenAuth                  *jwtauth.JWTAuth
}

func NewJWTService(secretKey, accessTokenExpirationTime, refreshTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                  secretKey,
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(p Principal) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"employee_id": p.EmployeeID,
		"username":    p.Username,
		"role":        string(p.Role),
		"department":  p.Department,
		"permissions": p.Permissions,
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(employeeID string) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.refreshTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"type":        "refresh",
		"exp":         expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) ParseRefreshToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", err
	}
	if kind, _ := claims["type"].(string); kind != "refresh" {
		return "", errors.New("not a refresh token")
	}
	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" {
		return "", errors.New("refresh token has no employee_id")
	}
	return employeeID, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
}

// PrincipalFromClaims rebuilds the principal from decoded JWT claims.
func PrincipalFromClaims(claims map[string]interface{}) Principal {
	p := Principal{}
	if v, ok := claims["employee_id"].(string); ok {
		p.EmployeeID = v
	}
	if v, ok := claims["username"].(string); ok {
		p.Username = v
	}
	if v, ok := claims["role"].(string); ok {
		p.Role = employee.Role(v)
	}
	if v, ok := claims["department"].(string); ok {
		p.Department = v
	}
	if vs, ok := claims["permissions"].([]interface{}); ok {
		for _, v := range vs {
			if s, ok := v.(string); ok {
				p.Permissions = append(p.Permissions, s)
			}
		}
	}
	return p
}
