package auth

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/auth"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/employee"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/signature"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/jwt"
)

type Service interface {
	Login(ctx context.Context, req auth.LoginRequest, ipAddress string) (auth.LoginResponse, error)
	// Refresh exchanges a valid refresh token for a fresh token pair.
	Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error)
	ChangePassword(ctx context.Context, req employee.ChangePasswordRequest, ipAddress string) error
}

type serviceImpl struct {
	employeeRepo  employee.EmployeeRepository
	signatureRepo signature.SignatureRepository
	jwtService    jwt.Service
}

func NewAuthService(employeeRepo employee.EmployeeRepository, signatureRepo signature.SignatureRepository, jwtService jwt.Service) Service {
	return &serviceImpl{
		employeeRepo:  employeeRepo,
		signatureRepo: signatureRepo,
		jwtService:    jwtService,
	}
}

// permissionsFor flattens the role capability table into the JWT claim.
func permissionsFor(role employee.Role) []string {
	c := employee.Capabilities(role)
	perms := []string{"view_" + string(c.Scope)}
	if c.SignType != "" {
		perms = append(perms, "sign_management")
	}
	if c.IsAdmin {
		perms = append(perms, "admin")
	}
	return perms
}

// Login authenticates a dashboard user (supervisor and up, or any employee
// who has set a password) and issues an access token.
func (s *serviceImpl) Login(ctx context.Context, req auth.LoginRequest, ipAddress string) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		// An unknown id gets the same answer as a bad password.
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if !emp.IsActive {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.VerificationHash()), []byte(req.Password)); err != nil {
		s.logSecurity(ctx, emp.EmployeeID, signature.EventLoginFailed, "password mismatch", ipAddress)
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	resp, err := s.tokenPair(emp)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	s.logSecurity(ctx, emp.EmployeeID, signature.EventLoginSuccess, "", ipAddress)
	return resp, nil
}

// Refresh rotates the token pair. Any verification failure, including a
// deactivated account, collapses into ErrInvalidToken.
func (s *serviceImpl) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	employeeID, err := s.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	if !emp.IsActive {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	return s.tokenPair(emp)
}

func (s *serviceImpl) tokenPair(emp employee.Employee) (auth.LoginResponse, error) {
	token, expiresAt, err := s.jwtService.GenerateAccessToken(jwt.Principal{
		EmployeeID:  emp.EmployeeID,
		Username:    emp.FullName,
		Role:        emp.ChucVu,
		Department:  emp.Department,
		Permissions: permissionsFor(emp.ChucVu),
	})
	if err != nil {
		return auth.LoginResponse{}, err
	}

	refresh, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(emp.EmployeeID)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken:      token,
		ExpiresAt:        expiresAt,
		EmployeeID:       emp.EmployeeID,
		FullName:         emp.FullName,
		Role:             string(emp.ChucVu),
		Department:       emp.Department,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

// ChangePassword verifies the current credential (CCCD on first change,
// password afterwards) and switches the employee to password credentials.
func (s *serviceImpl) ChangePassword(ctx context.Context, req employee.ChangePasswordRequest, ipAddress string) error {
	if err := req.Validate(); err != nil {
		return err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.VerificationHash()), []byte(req.CurrentPassword)); err != nil {
		s.logSecurity(ctx, emp.EmployeeID, signature.EventLoginFailed, "password change rejected", ipAddress)
		if emp.CredentialKind == employee.CredentialPassword {
			return employee.ErrInvalidPassword
		}
		return employee.ErrInvalidCCCD
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.UpdatePassword(ctx, emp.EmployeeID, string(hash)); err != nil {
		return err
	}

	s.logSecurity(ctx, emp.EmployeeID, signature.EventPasswordChanged, "", ipAddress)
	return nil
}

func (s *serviceImpl) logSecurity(ctx context.Context, employeeID, event, detail, ipAddress string) {
	err := s.signatureRepo.InsertSecurityLog(ctx, signature.SecurityLog{
		EmployeeID: employeeID,
		Event:      event,
		Detail:     detail,
		IPAddress:  ipAddress,
	})
	if err != nil {
		slog.Error("failed to write security log", "employee_id", employeeID, "event", event, "error", err)
	}
}
