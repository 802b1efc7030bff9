package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollType distinguishes the regular monthly payroll from the 13th-month
// bonus payroll. The two use different salary_month formats (YYYY-MM vs
// YYYY-13) and are signed independently.
type PayrollType string

const (
	TypeMonthly PayrollType = "monthly"
	TypeT13     PayrollType = "t13"
)

// PayrollRecord is one employee's compensation for one salary month.
// At most one record exists per (employee_id, salary_month, payroll_type).
type PayrollRecord struct {
	ID          int64
	EmployeeID  string
	SalaryMonth string
	PayrollType PayrollType

	// Coefficients and base figures
	HeSoLamViec      decimal.Decimal
	HeSoPhuCapKetQua decimal.Decimal
	HeSoLuongCoBan   decimal.Decimal
	LuongToiThieuCty decimal.Decimal

	// Working time
	NgayCongTrongGio decimal.Decimal
	GioCongTangCa    decimal.Decimal
	GioAnCa          decimal.Decimal
	TongGioLamViec   decimal.Decimal
	TongHeSoQuyDoi   decimal.Decimal
	NgayCongChuNhat  decimal.Decimal

	// Piece-rate and hourly pay
	TongLuongSanPhamCongDoan decimal.Decimal
	DonGiaTienLuongTrenGio   decimal.Decimal
	TienLuongQuyDoi          decimal.Decimal
	TienLuongSanPhamTrongGio decimal.Decimal
	TienLuongTangCa          decimal.Decimal
	TienLuong30p             decimal.Decimal
	TienLuongChuNhat         decimal.Decimal

	// Bonuses and training pay
	TienKhenThuongChuyenCan decimal.Decimal
	LuongHocViecPCLuong     decimal.Decimal
	TienThuongChatLuong     decimal.Decimal
	LuongCNCNQuyDoi         decimal.Decimal

	// Allowances and supports
	TienTangCaVuot  decimal.Decimal
	PhuCapTienAn    decimal.Decimal
	PhuCapXangXe    decimal.Decimal
	PhuCapDienThoai decimal.Decimal
	PhuCapKhac      decimal.Decimal
	HoTroThoiTiet   decimal.Decimal
	BoSungLuong     decimal.Decimal
	TienBocVac      decimal.Decimal
	HoTroXangXe     decimal.Decimal

	// Insurance and tax
	BHXHBHTNBHYT       decimal.Decimal
	ThueTNCN           decimal.Decimal
	ThueTNCNNamNhanLai decimal.Decimal
	TruyThuTheBHYT     decimal.Decimal

	// Deductions and advances
	TamUng     decimal.Decimal
	DoanPhi    decimal.Decimal
	TienNhaTro decimal.Decimal
	TruBHXH    decimal.Decimal

	// Totals
	TongCongTienLuong       decimal.Decimal
	TienLuongThucNhanCuoiKy decimal.Decimal

	// Signing state (mutated exactly once, unsigned -> signed)
	IsSigned     bool
	SignedAt     *time.Time
	SignedByName *string

	// Import provenance
	SourceFile    string
	ImportBatchID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
