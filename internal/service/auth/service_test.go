package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/auth"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/employee"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/signature"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/jwt"
)

type fakeEmployeeRepo struct {
	employee.EmployeeRepository

	employees   map[string]employee.Employee
	updatedID   string
	updatedHash string
	updateErr   error
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, employeeID string) (employee.Employee, error) {
	emp, ok := f.employees[employeeID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) UpdatePassword(_ context.Context, employeeID, passwordHash string) error {
	f.updatedID = employeeID
	f.updatedHash = passwordHash
	return f.updateErr
}

type fakeSignatureRepo struct {
	signature.SignatureRepository

	securityLogs []signature.SecurityLog
}

func (f *fakeSignatureRepo) InsertSecurityLog(_ context.Context, log signature.SecurityLog) error {
	f.securityLogs = append(f.securityLogs, log)
	return nil
}

func hashOf(t *testing.T, secret string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newTestService(employees *fakeEmployeeRepo, signatures *fakeSignatureRepo) Service {
	return NewAuthService(employees, signatures, jwt.NewJWTService("test-secret", "15m", "168h"))
}

func TestLogin(t *testing.T) {
	pwHash := hashOf(t, "secret123")
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"TT001": {
			EmployeeID:     "TT001",
			FullName:       "Trần Văn B",
			Department:     "May 1",
			ChucVu:         employee.RoleToTruong,
			PasswordHash:   &pwHash,
			CredentialKind: employee.CredentialPassword,
			IsActive:       true,
		},
	}}
	signatures := &fakeSignatureRepo{}
	svc := newTestService(employees, signatures)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		EmployeeID: "TT001",
		Password:   "secret123",
	}, "10.0.0.1")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "TT001", resp.EmployeeID)
	assert.Equal(t, "to_truong", resp.Role)
	assert.Equal(t, "May 1", resp.Department)
	assert.Greater(t, resp.ExpiresAt, int64(0))

	require.Len(t, signatures.securityLogs, 1)
	assert.Equal(t, signature.EventLoginSuccess, signatures.securityLogs[0].Event)
	assert.Equal(t, "10.0.0.1", signatures.securityLogs[0].IPAddress)
}

func TestLoginWithCCCDBeforeFirstPasswordChange(t *testing.T) {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"NV001": {
			EmployeeID:     "NV001",
			CCCDHash:       hashOf(t, "012345678901"),
			CredentialKind: employee.CredentialCCCD,
			IsActive:       true,
		},
	}}
	svc := newTestService(employees, &fakeSignatureRepo{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		EmployeeID: "NV001",
		Password:   "012345678901",
	}, "")
	assert.NoError(t, err)
}

func TestLoginRejections(t *testing.T) {
	pwHash := hashOf(t, "secret123")
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"TT001": {
			EmployeeID:     "TT001",
			PasswordHash:   &pwHash,
			CredentialKind: employee.CredentialPassword,
			IsActive:       true,
		},
		"NV002": {
			EmployeeID:     "NV002",
			PasswordHash:   &pwHash,
			CredentialKind: employee.CredentialPassword,
		},
	}}
	signatures := &fakeSignatureRepo{}
	svc := newTestService(employees, signatures)

	// Unknown id, wrong password and inactive account are indistinguishable
	// to the caller.
	for _, req := range []auth.LoginRequest{
		{EmployeeID: "NV404", Password: "secret123"},
		{EmployeeID: "TT001", Password: "wrong"},
		{EmployeeID: "NV002", Password: "secret123"},
	} {
		_, err := svc.Login(context.Background(), req, "")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials, "req %+v", req)
	}

	// Only the wrong-password attempt is an authentication event worth
	// logging against a real account.
	require.Len(t, signatures.securityLogs, 1)
	assert.Equal(t, signature.EventLoginFailed, signatures.securityLogs[0].Event)
}

func TestRefresh(t *testing.T) {
	pwHash := hashOf(t, "secret123")
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"TT001": {
			EmployeeID:     "TT001",
			FullName:       "Trần Văn B",
			PasswordHash:   &pwHash,
			CredentialKind: employee.CredentialPassword,
			IsActive:       true,
		},
	}}
	svc := newTestService(employees, &fakeSignatureRepo{})

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		EmployeeID: "TT001",
		Password:   "secret123",
	}, "")
	require.NoError(t, err)
	require.NotEmpty(t, login.RefreshToken)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "TT001", refreshed.EmployeeID)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)

	// An access token is not accepted as a refresh token.
	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshInactiveEmployee(t *testing.T) {
	pwHash := hashOf(t, "secret123")
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"TT001": {
			EmployeeID:     "TT001",
			PasswordHash:   &pwHash,
			CredentialKind: employee.CredentialPassword,
			IsActive:       true,
		},
	}}
	svc := newTestService(employees, &fakeSignatureRepo{})

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		EmployeeID: "TT001",
		Password:   "secret123",
	}, "")
	require.NoError(t, err)

	// Deactivation between issue and refresh invalidates the token.
	emp := employees.employees["TT001"]
	emp.IsActive = false
	employees.employees["TT001"] = emp

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"NV001": {
			EmployeeID:     "NV001",
			CCCDHash:       hashOf(t, "012345678901"),
			CredentialKind: employee.CredentialCCCD,
			IsActive:       true,
		},
	}}
	signatures := &fakeSignatureRepo{}
	svc := newTestService(employees, signatures)

	err := svc.ChangePassword(context.Background(), employee.ChangePasswordRequest{
		EmployeeID:      "NV001",
		CurrentPassword: "012345678901",
		NewPassword:     "newsecret",
	}, "10.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, "NV001", employees.updatedID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(employees.updatedHash), []byte("newsecret")))

	require.Len(t, signatures.securityLogs, 1)
	assert.Equal(t, signature.EventPasswordChanged, signatures.securityLogs[0].Event)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"NV001": {
			EmployeeID:     "NV001",
			CCCDHash:       hashOf(t, "012345678901"),
			CredentialKind: employee.CredentialCCCD,
			IsActive:       true,
		},
	}}
	svc := newTestService(employees, &fakeSignatureRepo{})

	err := svc.ChangePassword(context.Background(), employee.ChangePasswordRequest{
		EmployeeID:      "NV001",
		CurrentPassword: "999999999999",
		NewPassword:     "newsecret",
	}, "")
	assert.ErrorIs(t, err, employee.ErrInvalidCCCD)
	assert.Empty(t, employees.updatedID)
}

func TestChangePasswordTooShort(t *testing.T) {
	svc := newTestService(&fakeEmployeeRepo{}, &fakeSignatureRepo{})

	err := svc.ChangePassword(context.Background(), employee.ChangePasswordRequest{
		EmployeeID:      "NV001",
		CurrentPassword: "012345678901",
		NewPassword:     "short",
	}, "")
	assert.Error(t, err)
}
