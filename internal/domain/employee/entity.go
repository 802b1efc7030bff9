package employee

import "time"

// Role is the closed set of positions (chuc_vu) in the company.
type Role string

const (
	RoleNhanVien     Role = "nhan_vien"
	RoleToTruong     Role = "to_truong"
	RoleTruongPhong  Role = "truong_phong"
	RoleGiamDoc      Role = "giam_doc"
	RoleKeToan       Role = "ke_toan"
	RoleNguoiLapBieu Role = "nguoi_lap_bieu"
	RoleAdmin        Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleNhanVien, RoleToTruong, RoleTruongPhong, RoleGiamDoc, RoleKeToan, RoleNguoiLapBieu, RoleAdmin:
		return true
	}
	return false
}

// ViewScope bounds which payroll rows a role may read.
type ViewScope string

const (
	ScopeOwn        ViewScope = "own"
	ScopeDepartment ViewScope = "department"
	ScopeAll        ViewScope = "all"
)

// Capability describes what a role is allowed to do. SignType is the
// management signature type the role may create ("" means none); admin may
// sign on behalf of any type.
type Capability struct {
	Scope    ViewScope
	SignType string
	IsAdmin  bool
}

var capabilities = map[Role]Capability{
	RoleNhanVien:     {Scope: ScopeOwn},
	RoleToTruong:     {Scope: ScopeDepartment},
	RoleTruongPhong:  {Scope: ScopeDepartment},
	RoleGiamDoc:      {Scope: ScopeAll, SignType: string(RoleGiamDoc)},
	RoleKeToan:       {Scope: ScopeAll, SignType: string(RoleKeToan)},
	RoleNguoiLapBieu: {Scope: ScopeAll, SignType: string(RoleNguoiLapBieu)},
	RoleAdmin:        {Scope: ScopeAll, IsAdmin: true},
}

// Capabilities returns the capability entry for a role. Unknown roles get
// the most restrictive scope.
func Capabilities(r Role) Capability {
	if c, ok := capabilities[r]; ok {
		return c
	}
	return Capability{Scope: ScopeOwn}
}

// CanCreateSignature reports whether the role may create a management
// signature of the given type.
func (r Role) CanCreateSignature(signatureType string) bool {
	c := Capabilities(r)
	return c.IsAdmin || (c.SignType != "" && c.SignType == signatureType)
}

// CredentialKind selects which hash authenticates the employee.
type CredentialKind string

const (
	CredentialCCCD     CredentialKind = "cccd"
	CredentialPassword CredentialKind = "password"
)

type Employee struct {
	EmployeeID           string
	FullName             string
	Department           string
	ChucVu               Role
	CCCDHash             string
	PasswordHash         *string
	CredentialKind       CredentialKind
	LastPasswordChangeAt *time.Time
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// VerificationHash returns the hash the sign operation must compare against.
func (e Employee) VerificationHash() string {
	if e.CredentialKind == CredentialPassword && e.PasswordHash != nil {
		return *e.PasswordHash
	}
	return e.CCCDHash
}
