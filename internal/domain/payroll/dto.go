package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayrollRecordResponse struct {
	EmployeeID  string      `json:"employee_id"`
	SalaryMonth string      `json:"salary_month"`
	PayrollType PayrollType `json:"payroll_type"`

	HeSoLamViec      decimal.Decimal `json:"he_so_lam_viec"`
	HeSoPhuCapKetQua decimal.Decimal `json:"he_so_phu_cap_ket_qua"`
	HeSoLuongCoBan   decimal.Decimal `json:"he_so_luong_co_ban"`
	LuongToiThieuCty decimal.Decimal `json:"luong_toi_thieu_cty"`

	NgayCongTrongGio decimal.Decimal `json:"ngay_cong_trong_gio"`
	GioCongTangCa    decimal.Decimal `json:"gio_cong_tang_ca"`
	GioAnCa          decimal.Decimal `json:"gio_an_ca"`
	TongGioLamViec   decimal.Decimal `json:"tong_gio_lam_viec"`
	TongHeSoQuyDoi   decimal.Decimal `json:"tong_he_so_quy_doi"`
	NgayCongChuNhat  decimal.Decimal `json:"ngay_cong_chu_nhat"`

	TongLuongSanPhamCongDoan decimal.Decimal `json:"tong_luong_san_pham_cong_doan"`
	DonGiaTienLuongTrenGio   decimal.Decimal `json:"don_gia_tien_luong_tren_gio"`
	TienLuongQuyDoi          decimal.Decimal `json:"tien_luong_quy_doi"`
	TienLuongSanPhamTrongGio decimal.Decimal `json:"tien_luong_san_pham_trong_gio"`
	TienLuongTangCa          decimal.Decimal `json:"tien_luong_tang_ca"`
	TienLuong30p             decimal.Decimal `json:"tien_luong_30p"`
	TienLuongChuNhat         decimal.Decimal `json:"tien_luong_chu_nhat"`

	TienKhenThuongChuyenCan decimal.Decimal `json:"tien_khen_thuong_chuyen_can"`
	LuongHocViecPCLuong     decimal.Decimal `json:"luong_hoc_viec_pc_luong"`
	TienThuongChatLuong     decimal.Decimal `json:"tien_thuong_chat_luong"`
	LuongCNCNQuyDoi         decimal.Decimal `json:"luong_cncn_quy_doi"`

	TienTangCaVuot  decimal.Decimal `json:"tien_tang_ca_vuot"`
	PhuCapTienAn    decimal.Decimal `json:"phu_cap_tien_an"`
	PhuCapXangXe    decimal.Decimal `json:"phu_cap_xang_xe"`
	PhuCapDienThoai decimal.Decimal `json:"phu_cap_dien_thoai"`
	PhuCapKhac      decimal.Decimal `json:"phu_cap_khac"`
	HoTroThoiTiet   decimal.Decimal `json:"ho_tro_thoi_tiet"`
	BoSungLuong     decimal.Decimal `json:"bo_sung_luong"`
	TienBocVac      decimal.Decimal `json:"tien_boc_vac"`
	HoTroXangXe     decimal.Decimal `json:"ho_tro_xang_xe"`

	BHXHBHTNBHYT       decimal.Decimal `json:"bhxh_bhtn_bhyt"`
	ThueTNCN           decimal.Decimal `json:"thue_tncn"`
	ThueTNCNNamNhanLai decimal.Decimal `json:"thue_tncn_nam_nhan_lai"`
	TruyThuTheBHYT     decimal.Decimal `json:"truy_thu_the_bhyt"`

	TamUng     decimal.Decimal `json:"tam_ung"`
	DoanPhi    decimal.Decimal `json:"doan_phi"`
	TienNhaTro decimal.Decimal `json:"tien_nha_tro"`
	TruBHXH    decimal.Decimal `json:"tru_bhxh"`

	TongCongTienLuong       decimal.Decimal `json:"tong_cong_tien_luong"`
	TienLuongThucNhanCuoiKy decimal.Decimal `json:"tien_luong_thuc_nhan_cuoi_ky"`

	IsSigned     bool       `json:"is_signed"`
	SignedAt     *time.Time `json:"signed_at,omitempty"`
	SignedByName *string    `json:"signed_by_name,omitempty"`
	SourceFile   string     `json:"source_file,omitempty"`
}

func ToResponse(r PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		EmployeeID:  r.EmployeeID,
		SalaryMonth: r.SalaryMonth,
		PayrollType: r.PayrollType,

		HeSoLamViec:      r.HeSoLamViec,
		HeSoPhuCapKetQua: r.HeSoPhuCapKetQua,
		HeSoLuongCoBan:   r.HeSoLuongCoBan,
		LuongToiThieuCty: r.LuongToiThieuCty,

		NgayCongTrongGio: r.NgayCongTrongGio,
		GioCongTangCa:    r.GioCongTangCa,
		GioAnCa:          r.GioAnCa,
		TongGioLamViec:   r.TongGioLamViec,
		TongHeSoQuyDoi:   r.TongHeSoQuyDoi,
		NgayCongChuNhat:  r.NgayCongChuNhat,

		TongLuongSanPhamCongDoan: r.TongLuongSanPhamCongDoan,
		DonGiaTienLuongTrenGio:   r.DonGiaTienLuongTrenGio,
		TienLuongQuyDoi:          r.TienLuongQuyDoi,
		TienLuongSanPhamTrongGio: r.TienLuongSanPhamTrongGio,
		TienLuongTangCa:          r.TienLuongTangCa,
		TienLuong30p:             r.TienLuong30p,
		TienLuongChuNhat:         r.TienLuongChuNhat,

		TienKhenThuongChuyenCan: r.TienKhenThuongChuyenCan,
		LuongHocViecPCLuong:     r.LuongHocViecPCLuong,
		TienThuongChatLuong:     r.TienThuongChatLuong,
		LuongCNCNQuyDoi:         r.LuongCNCNQuyDoi,

		TienTangCaVuot:  r.TienTangCaVuot,
		PhuCapTienAn:    r.PhuCapTienAn,
		PhuCapXangXe:    r.PhuCapXangXe,
		PhuCapDienThoai: r.PhuCapDienThoai,
		PhuCapKhac:      r.PhuCapKhac,
		HoTroThoiTiet:   r.HoTroThoiTiet,
		BoSungLuong:     r.BoSungLuong,
		TienBocVac:      r.TienBocVac,
		HoTroXangXe:     r.HoTroXangXe,

		BHXHBHTNBHYT:       r.BHXHBHTNBHYT,
		ThueTNCN:           r.ThueTNCN,
		ThueTNCNNamNhanLai: r.ThueTNCNNamNhanLai,
		TruyThuTheBHYT:     r.TruyThuTheBHYT,

		TamUng:     r.TamUng,
		DoanPhi:    r.DoanPhi,
		TienNhaTro: r.TienNhaTro,
		TruBHXH:    r.TruBHXH,

		TongCongTienLuong:       r.TongCongTienLuong,
		TienLuongThucNhanCuoiKy: r.TienLuongThucNhanCuoiKy,

		IsSigned:     r.IsSigned,
		SignedAt:     r.SignedAt,
		SignedByName: r.SignedByName,
		SourceFile:   r.SourceFile,
	}
}
