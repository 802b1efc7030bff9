package importer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/importer"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
)

// payrollFieldAliases maps each canonical payroll field to the header
// fragments that identify it. Matching is substring-based on the normalized
// header, so "Hệ số làm việc (T5)" still resolves to he_so_lam_viec.
var payrollFieldAliases = map[string][]string{
	"employee_id":  {"ma nhan vien", "ma nv", "manv", "employee id"},
	"full_name":    {"ho ten", "ho va ten", "full name"},
	"salary_month": {"thang luong", "ky luong", "salary month"},

	"he_so_lam_viec":        {"he so lam viec"},
	"he_so_phu_cap_ket_qua": {"he so phu cap ket qua"},
	"he_so_luong_co_ban":    {"he so luong co ban"},
	"luong_toi_thieu_cty":   {"luong toi thieu"},

	"ngay_cong_trong_gio": {"ngay cong trong gio"},
	"gio_cong_tang_ca":    {"gio cong tang ca"},
	"gio_an_ca":           {"gio an ca"},
	"tong_gio_lam_viec":   {"tong gio lam viec"},
	"tong_he_so_quy_doi":  {"tong he so quy doi"},
	"ngay_cong_chu_nhat":  {"ngay cong chu nhat"},

	"tong_luong_san_pham_cong_doan": {"tong luong san pham cong doan"},
	"don_gia_tien_luong_tren_gio":   {"don gia tien luong tren gio"},
	"tien_luong_quy_doi":            {"tien luong quy doi"},
	"tien_luong_san_pham_trong_gio": {"tien luong san pham trong gio"},
	"tien_luong_tang_ca":            {"tien luong tang ca"},
	"tien_luong_30p":                {"tien luong 30p"},
	"tien_luong_chu_nhat":           {"tien luong chu nhat"},

	"tien_khen_thuong_chuyen_can": {"khen thuong chuyen can"},
	"luong_hoc_viec_pc_luong":     {"luong hoc viec"},
	"tien_thuong_chat_luong":      {"thuong chat luong"},
	"luong_cncn_quy_doi":          {"luong cncn"},

	"tien_tang_ca_vuot":  {"tang ca vuot"},
	"phu_cap_tien_an":    {"phu cap tien an"},
	"phu_cap_xang_xe":    {"phu cap xang xe"},
	"phu_cap_dien_thoai": {"phu cap dien thoai"},
	"phu_cap_khac":       {"phu cap khac"},
	"ho_tro_thoi_tiet":   {"ho tro thoi tiet"},
	"bo_sung_luong":      {"bo sung luong"},
	"tien_boc_vac":       {"tien boc vac"},
	"ho_tro_xang_xe":     {"ho tro xang xe"},

	"bhxh_bhtn_bhyt":         {"bhxh", "bao hiem"},
	"thue_tncn":              {"thue tncn"},
	"thue_tncn_nam_nhan_lai": {"thue tncn nam"},
	"truy_thu_the_bhyt":      {"truy thu the bhyt"},

	"tam_ung":      {"tam ung"},
	"doan_phi":     {"doan phi"},
	"tien_nha_tro": {"tien nha tro"},
	"tru_bhxh":     {"tru bhxh"},

	"tong_cong_tien_luong":         {"tong cong tien luong"},
	"tien_luong_thuc_nhan_cuoi_ky": {"thuc nhan cuoi ky", "thuc linh"},
}

// payrollFieldSetters binds canonical field names to record fields; the
// import pipeline and the mapping resolver both address columns by these
// names.
var payrollFieldSetters = map[string]func(*payroll.PayrollRecord, decimal.Decimal){
	"he_so_lam_viec":        func(r *payroll.PayrollRecord, v decimal.Decimal) { r.HeSoLamViec = v },
	"he_so_phu_cap_ket_qua": func(r *payroll.PayrollRecord, v decimal.Decimal) { r.HeSoPhuCapKetQua = v },
	"he_so_luong_co_ban":    func(r *payroll.PayrollRecord, v decimal.Decimal) { r.HeSoLuongCoBan = v },
	"luong_toi_thieu_cty":   func(r *payroll.PayrollRecord, v decimal.Decimal) { r.LuongToiThieuCty = v },

	"ngay_cong_trong_gio": func(r *payroll.PayrollRecord, v decimal.Decimal) { r.NgayCongTrongGio = v },
	"gio_cong_tang_ca":    func(r *payroll.PayrollRecord, v decimal.Decimal) { r.GioCongTangCa = v },
	"gio_an_ca":           func(r *payroll.PayrollRecord, v decimal.Decimal) { r.GioAnCa = v },
	"tong_gio_lam_viec":   func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TongGioLamViec = v },
	"tong_he_so_quy_doi":  func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TongHeSoQuyDoi = v },
	"ngay_cong_chu_nhat":  func(r *payroll.PayrollRecord, v decimal.Decimal) { r.NgayCongChuNhat = v },

	"tong_luong_san_pham_cong_doan": func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TongLuongSanPhamCongDoan = v },
	"don_gia_tien_luong_tren_gio":   func(r *payroll.PayrollRecord, v decimal.Decimal) { r.DonGiaTienLuongTrenGio = v },
	"tien_luong_quy_doi":            func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TienLuongQuyDoi = v },
	"tien_luong_san_pham_trong_gio": func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TienLuongSanPhamTrongGio = v },
	"tien_luong_tang_ca":            func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TienLuongTangCa = v },
	"tien_luong_30p":                func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TienLuong30p = v },
	"tien_luong_chu_nhat":           func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TienLuongChuNhat = v },

	"tien_khen_thuong_chuyen_can": func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TienKhenThuongChuyenCan = v },
	"luong_hoc_viec_pc_luong":     func(r *payroll.PayrollRecord, v decimal.Decimal) { r.LuongHocViecPCLuong = v },
	"tien_thuong_chat_luong":      func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TienThuongChatLuong = v },
	"luong_cncn_quy_doi":          func(r *payroll.PayrollRecord, v decimal.Decimal) { r.LuongCNCNQuyDoi = v },

	"tien_tang_ca_vuot":  func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TienTangCaVuot = v },
	"phu_cap_tien_an":    func(r *payroll.PayrollRecord, v decimal.Decimal) { r.PhuCapTienAn = v },
	"phu_cap_xang_xe":    func(r *payroll.PayrollRecord, v decimal.Decimal) { r.PhuCapXangXe = v },
	"phu_cap_dien_thoai": func(r *payroll.PayrollRecord, v decimal.Decimal) { r.PhuCapDienThoai = v },
	"phu_cap_khac":       func(r *payroll.PayrollRecord, v decimal.Decimal) { r.PhuCapKhac = v },
	"ho_tro_thoi_tiet":   func(r *payroll.PayrollRecord, v decimal.Decimal) { r.HoTroThoiTiet = v },
	"bo_sung_luong":      func(r *payroll.PayrollRecord, v decimal.Decimal) { r.BoSungLuong = v },
	"tien_boc_vac":       func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TienBocVac = v },
	"ho_tro_xang_xe":     func(r *payroll.PayrollRecord, v decimal.Decimal) { r.HoTroXangXe = v },

	"bhxh_bhtn_bhyt":         func(r *payroll.PayrollRecord, v decimal.Decimal) { r.BHXHBHTNBHYT = v },
	"thue_tncn":              func(r *payroll.PayrollRecord, v decimal.Decimal) { r.ThueTNCN = v },
	"thue_tncn_nam_nhan_lai": func(r *payroll.PayrollRecord, v decimal.Decimal) { r.ThueTNCNNamNhanLai = v },
	"truy_thu_the_bhyt":      func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TruyThuTheBHYT = v },

	"tam_ung":      func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TamUng = v },
	"doan_phi":     func(r *payroll.PayrollRecord, v decimal.Decimal) { r.DoanPhi = v },
	"tien_nha_tro": func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TienNhaTro = v },
	"tru_bhxh":     func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TruBHXH = v },

	"tong_cong_tien_luong":         func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TongCongTienLuong = v },
	"tien_luong_thuc_nhan_cuoi_ky": func(r *payroll.PayrollRecord, v decimal.Decimal) { r.TienLuongThucNhanCuoiKy = v },
}

// PayrollFields lists the canonical numeric fields in a stable order, for
// template generation and mapping detection.
func PayrollFields() []string {
	fields := make([]string, 0, len(payrollFieldSetters))
	for f := range payrollFieldSetters {
		fields = append(fields, f)
	}
	return fields
}

// ParsedPayrollRow is one spreadsheet row after header resolution, before
// the existence pass and persistence.
type ParsedPayrollRow struct {
	Row         int
	EmployeeID  string
	FullName    string
	SalaryMonth string
	Record      payroll.PayrollRecord
}

func (p ParsedPayrollRow) Key() (int, string) {
	return p.Row, p.EmployeeID
}

// openSheet opens the workbook and returns all rows of the first sheet.
// A workbook that cannot be opened, has no sheets or no header row is a
// structural failure and reported as an error, not a row-level problem.
func openSheet(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unreadable workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 1 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheets[0])
	}
	return rows, nil
}

// resolveHeaders maps canonical fields to column indexes by alias substring
// match on the normalized header cells.
func resolveHeaders(header []string, aliases map[string][]string) map[string]int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = NormalizeHeader(h)
	}

	resolved := make(map[string]int)
	for field, names := range aliases {
		for i, h := range normalized {
			if h == "" {
				continue
			}
			matched := false
			for _, alias := range names {
				if strings.Contains(h, alias) {
					matched = true
					break
				}
			}
			if matched {
				if _, taken := resolved[field]; !taken {
					resolved[field] = i
				}
				break
			}
		}
	}
	return resolved
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDecimal coerces a spreadsheet cell to a decimal, tolerating both
// "1.234.567,89" and "1,234,567.89" styles. Empty or unparsable cells
// become zero.
func parseDecimal(cell string) decimal.Decimal {
	s := strings.TrimSpace(cell)
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || s == "-" {
		return decimal.Zero
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			// 1.234.567,89
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// 1,234,567.89
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParsePayrollFile parses a payroll workbook into records. defaultMonth is
// used when the sheet carries no salary_month column; column resolution can
// be overridden with explicit mappings from a saved configuration.
func ParsePayrollFile(data []byte, filename, defaultMonth string, isT13 bool, collector *importer.Collector, overrides map[string]int) (importer.ParseResult[ParsedPayrollRow], map[int]map[string]string, error) {
	var result importer.ParseResult[ParsedPayrollRow]

	rows, err := openSheet(data)
	if err != nil {
		return result, nil, err
	}

	columns := resolveHeaders(rows[0], payrollFieldAliases)
	for field, idx := range overrides {
		columns[field] = idx
	}
	if _, ok := columns["employee_id"]; !ok {
		return result, nil, fmt.Errorf("no employee_id column found in %q", filename)
	}

	payrollType := payroll.TypeMonthly
	if isT13 {
		payrollType = payroll.TypeT13
	}

	rawRows := make(map[int]map[string]string)
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		raw := make(map[string]string, len(rows[0]))
		for c, h := range rows[0] {
			raw[h] = cellAt(row, c)
		}
		rawRows[rowNum] = raw

		empID := cellAt(row, columns["employee_id"])
		fullName := ""
		if idx, ok := columns["full_name"]; ok {
			fullName = cellAt(row, idx)
		}

		// Fully empty trailing rows are common in exported sheets.
		if empID == "" && fullName == "" {
			continue
		}

		if errRec := collector.ValidateEmployeeID(rowNum, empID); errRec != nil {
			result.Errors = append(result.Errors, *errRec)
			continue
		}

		month := defaultMonth
		if idx, ok := columns["salary_month"]; ok {
			if cell := cellAt(row, idx); cell != "" {
				month = cell
			}
		}
		if errRec := collector.ValidateSalaryMonth(rowNum, month, isT13); errRec != nil {
			errRec.EmployeeID = empID
			result.Errors = append(result.Errors, *errRec)
			continue
		}

		rec := payroll.PayrollRecord{
			EmployeeID:  strings.TrimSpace(empID),
			SalaryMonth: strings.TrimSpace(month),
			PayrollType: payrollType,
			SourceFile:  filename,
		}
		for field, set := range payrollFieldSetters {
			if idx, ok := columns[field]; ok {
				set(&rec, parseDecimal(cellAt(row, idx)))
			}
		}

		result.Records = append(result.Records, ParsedPayrollRow{
			Row:         rowNum,
			EmployeeID:  rec.EmployeeID,
			FullName:    fullName,
			SalaryMonth: rec.SalaryMonth,
			Record:      rec,
		})
	}

	result.Success = len(result.Records) > 0
	return result, rawRows, nil
}
