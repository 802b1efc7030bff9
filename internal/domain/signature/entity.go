package signature

import (
	"time"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
)

// Type is a management signature type. The three values double as the role
// names that may create them.
type Type string

const (
	TypeGiamDoc      Type = "giam_doc"
	TypeKeToan       Type = "ke_toan"
	TypeNguoiLapBieu Type = "nguoi_lap_bieu"
)

// ManagementTypes is the full co-sign set for a payroll period. Completion
// math derives its denominator from len(ManagementTypes), never a literal.
var ManagementTypes = []Type{TypeGiamDoc, TypeKeToan, TypeNguoiLapBieu}

func (t Type) Valid() bool {
	switch t {
	case TypeGiamDoc, TypeKeToan, TypeNguoiLapBieu:
		return true
	}
	return false
}

// ManagementSignature is one management role's co-signature on a payroll
// period. At most one active row exists per (salary_month, payroll_type,
// signature_type).
type ManagementSignature struct {
	ID            int64
	SalaryMonth   string
	PayrollType   payroll.PayrollType
	SignatureType Type
	SignedByID    string
	SignedByName  string
	Department    string
	SignedAt      time.Time
	Notes         string
	IsActive      bool
}

// SignatureLog is the append-only audit trail of employee signing events.
type SignatureLog struct {
	ID          int64
	EmployeeID  string
	SalaryMonth string
	PayrollType payroll.PayrollType
	SignedAt    time.Time
	IPAddress   string
	UserAgent   string
}

// SecurityLog records authentication outcomes for auditing.
type SecurityLog struct {
	ID         int64
	EmployeeID string
	Event      string
	Detail     string
	IPAddress  string
	CreatedAt  time.Time
}

const (
	EventSignSuccess     = "sign_success"
	EventSignFailed      = "sign_failed"
	EventLoginSuccess    = "login_success"
	EventLoginFailed     = "login_failed"
	EventPasswordChanged = "password_changed"
)
