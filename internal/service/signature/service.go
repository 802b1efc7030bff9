package signature

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/employee"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/signature"
)

// RequestMeta carries request metadata into the audit log rows.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// Signer identifies the authenticated caller of the management sign
// operation, as extracted from the JWT.
type Signer struct {
	EmployeeID string
	Role       employee.Role
}

type Service interface {
	EmployeeSign(ctx context.Context, req signature.EmployeeSignRequest, meta RequestMeta) (signature.EmployeeSignResponse, error)
	ManagementSign(ctx context.Context, req signature.ManagementSignRequest, signer Signer) (signature.ManagementSignatureResponse, error)
}

type serviceImpl struct {
	employeeRepo  employee.EmployeeRepository
	payrollRepo   payroll.PayrollRepository
	signatureRepo signature.SignatureRepository
	loc           *time.Location
	now           func() time.Time
}

// NewService wires the signature state machine. loc is the zone signed_at
// timestamps are recorded in (Vietnam in production); now is injectable for
// tests and defaults to time.Now.
func NewService(
	employeeRepo employee.EmployeeRepository,
	payrollRepo payroll.PayrollRepository,
	signatureRepo signature.SignatureRepository,
	loc *time.Location,
	now func() time.Time,
) Service {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &serviceImpl{
		employeeRepo:  employeeRepo,
		payrollRepo:   payrollRepo,
		signatureRepo: signatureRepo,
		loc:           loc,
		now:           now,
	}
}

const signedAtDisplayLayout = "15:04 ngày 02/01/2006"

// EmployeeSign verifies the employee's credential and flips the payroll
// record unsigned -> signed. The flip itself runs as a single transactional
// compare-and-swap in the repository, so a concurrent duplicate attempt
// surfaces as ErrAlreadySigned rather than a second log row.
func (s *serviceImpl) EmployeeSign(ctx context.Context, req signature.EmployeeSignRequest, meta RequestMeta) (signature.EmployeeSignResponse, error) {
	if err := req.Validate(); err != nil {
		return signature.EmployeeSignResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return signature.EmployeeSignResponse{}, err
	}
	if !emp.IsActive {
		return signature.EmployeeSignResponse{}, employee.ErrEmployeeInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.VerificationHash()), []byte(req.CCCD)); err != nil {
		s.logSecurity(ctx, emp.EmployeeID, signature.EventSignFailed, "credential mismatch", meta)
		// The error picks the field label the client should show, without
		// revealing which hash was actually compared.
		if emp.CredentialKind == employee.CredentialPassword {
			return signature.EmployeeSignResponse{}, employee.ErrInvalidPassword
		}
		return signature.EmployeeSignResponse{}, employee.ErrInvalidCCCD
	}

	signedAt := s.now().In(s.loc)
	rec, err := s.payrollRepo.SignRecord(ctx, payroll.SignRecordParams{
		EmployeeID:  emp.EmployeeID,
		SalaryMonth: req.SalaryMonth,
		PayrollType: payroll.TypeForMonth(req.IsT13),
		SignedBy:    emp.FullName,
		SignedAt:    signedAt,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
	})
	if err != nil {
		if errors.Is(err, payroll.ErrAlreadySigned) {
			s.logSecurity(ctx, emp.EmployeeID, signature.EventSignFailed, "already signed "+req.SalaryMonth, meta)
		}
		return signature.EmployeeSignResponse{}, err
	}

	s.logSecurity(ctx, emp.EmployeeID, signature.EventSignSuccess, "signed "+req.SalaryMonth, meta)

	return signature.EmployeeSignResponse{
		EmployeeName:       emp.FullName,
		SignedAt:           rec.SignedAt.Format(time.RFC3339),
		SignedAtDisplay:    rec.SignedAt.In(s.loc).Format(signedAtDisplayLayout),
		SalaryMonth:        rec.SalaryMonth,
		SalaryMonthDisplay: payroll.DisplayMonth(rec.SalaryMonth),
	}, nil
}

// ManagementSign checks preconditions in a fixed order: the caller's role
// must match the requested signature type (admin may act for any type),
// then the repository transactionally re-checks 100% employee completion
// and the no-duplicate rule before inserting.
func (s *serviceImpl) ManagementSign(ctx context.Context, req signature.ManagementSignRequest, signer Signer) (signature.ManagementSignatureResponse, error) {
	if err := req.Validate(); err != nil {
		return signature.ManagementSignatureResponse{}, err
	}

	if !signer.Role.CanCreateSignature(string(req.SignatureType)) {
		return signature.ManagementSignatureResponse{}, signature.ErrUnauthorizedType
	}

	emp, err := s.employeeRepo.GetByID(ctx, signer.EmployeeID)
	if err != nil {
		return signature.ManagementSignatureResponse{}, err
	}

	created, err := s.signatureRepo.Create(ctx, signature.CreateParams{
		SalaryMonth:   req.SalaryMonth,
		PayrollType:   payroll.TypeForMonth(req.IsT13),
		SignatureType: req.SignatureType,
		SignedByID:    emp.EmployeeID,
		SignedByName:  emp.FullName,
		Department:    emp.Department,
		Notes:         req.Notes,
	})
	if err != nil {
		return signature.ManagementSignatureResponse{}, err
	}

	slog.Info("management signature created",
		"salary_month", created.SalaryMonth,
		"signature_type", created.SignatureType,
		"signed_by", created.SignedByID,
	)
	return signature.ToResponse(created), nil
}

// logSecurity is best-effort: an audit insert failure must not fail the
// signing operation it describes.
func (s *serviceImpl) logSecurity(ctx context.Context, employeeID, event, detail string, meta RequestMeta) {
	err := s.signatureRepo.InsertSecurityLog(ctx, signature.SecurityLog{
		EmployeeID: employeeID,
		Event:      event,
		Detail:     detail,
		IPAddress:  meta.IPAddress,
	})
	if err != nil {
		slog.Error("failed to write security log", "employee_id", employeeID, "event", event, "error", err)
	}
}
