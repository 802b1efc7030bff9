package importer

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/mapping"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/payroll"
)

// vietnameseFolding strips diacritics so "Hệ số làm việc" and
// "He so lam viec" normalize identically.
var vietnameseFolding = strings.NewReplacer(
	"à", "a", "á", "a", "ả", "a", "ã", "a", "ạ", "a",
	"ă", "a", "ằ", "a", "ắ", "a", "ẳ", "a", "ẵ", "a", "ặ", "a",
	"â", "a", "ầ", "a", "ấ", "a", "ẩ", "a", "ẫ", "a", "ậ", "a",
	"è", "e", "é", "e", "ẻ", "e", "ẽ", "e", "ẹ", "e",
	"ê", "e", "ề", "e", "ế", "e", "ể", "e", "ễ", "e", "ệ", "e",
	"ì", "i", "í", "i", "ỉ", "i", "ĩ", "i", "ị", "i",
	"ò", "o", "ó", "o", "ỏ", "o", "õ", "o", "ọ", "o",
	"ô", "o", "ồ", "o", "ố", "o", "ổ", "o", "ỗ", "o", "ộ", "o",
	"ơ", "o", "ờ", "o", "ớ", "o", "ở", "o", "ỡ", "o", "ợ", "o",
	"ù", "u", "ú", "u", "ủ", "u", "ũ", "u", "ụ", "u",
	"ư", "u", "ừ", "u", "ứ", "u", "ử", "u", "ữ", "u", "ự", "u",
	"ỳ", "y", "ý", "y", "ỷ", "y", "ỹ", "y", "ỵ", "y",
	"đ", "d",
)

// NormalizeHeader lower-cases, folds Vietnamese diacritics and collapses
// whitespace and punctuation, giving the canonical matching form of a
// spreadsheet header cell.
func NormalizeHeader(h string) string {
	s := strings.ToLower(strings.TrimSpace(h))
	s = vietnameseFolding.Replace(s)
	for _, ch := range []string{"(", ")", "[", "]", ":", ";", "\n", "\t", "_", "-", "/", "."} {
		s = strings.ReplaceAll(s, ch, " ")
	}
	return strings.Join(strings.Fields(s), " ")
}

// similarity scores how well a header matches a canonical field name:
// 1.0 for an exact normalized match, 0.9 for containment, otherwise the
// Dice coefficient of the token sets.
func similarity(header, field string) float64 {
	h := NormalizeHeader(header)
	f := strings.Join(strings.Fields(strings.ReplaceAll(field, "_", " ")), " ")
	if h == "" || f == "" {
		return 0
	}
	if h == f {
		return 1.0
	}
	if strings.Contains(h, f) || strings.Contains(f, h) {
		return 0.9
	}

	hTokens := strings.Fields(h)
	fTokens := strings.Fields(f)
	set := make(map[string]bool, len(hTokens))
	for _, t := range hTokens {
		set[t] = true
	}
	common := 0
	for _, t := range fTokens {
		if set[t] {
			common++
		}
	}
	return 2 * float64(common) / float64(len(hTokens)+len(fTokens))
}

// minConfidence is the floor below which an auto-detected mapping is not
// proposed at all.
const minConfidence = 0.5

// ProposeMappings ranks the best header for every canonical field. Each
// header is consumed at most once (highest confidence wins), and the result
// is ordered by confidence so a human can review the shakiest matches last.
func ProposeMappings(headers []string, fields []string) []mapping.ProposedMapping {
	type candidate struct {
		field  string
		header string
		score  float64
	}

	var candidates []candidate
	for _, field := range fields {
		for _, header := range headers {
			if score := similarity(header, field); score >= minConfidence {
				candidates = append(candidates, candidate{field: field, header: header, score: score})
			}
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	usedField := make(map[string]bool)
	usedHeader := make(map[string]bool)
	var proposals []mapping.ProposedMapping
	for _, c := range candidates {
		if usedField[c.field] || usedHeader[c.header] {
			continue
		}
		usedField[c.field] = true
		usedHeader[c.header] = true

		mt := mapping.MappingFuzzy
		if c.score == 1.0 {
			mt = mapping.MappingExact
		}
		proposals = append(proposals, mapping.ProposedMapping{
			DatabaseField:   c.field,
			ExcelColumnName: c.header,
			ConfidenceScore: c.score,
			MappingType:     mt,
		})
	}
	return proposals
}

// columnOverrides converts a saved configuration into explicit column
// indexes for the given header row.
func columnOverrides(header []string, mappings []mapping.ColumnMapping) map[string]int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = NormalizeHeader(h)
	}

	overrides := make(map[string]int)
	for _, m := range mappings {
		want := NormalizeHeader(m.ExcelColumnName)
		for i, h := range normalized {
			if h == want {
				overrides[m.DatabaseField] = i
				break
			}
		}
	}
	return overrides
}

// MergeResult reports a dual-file import so its accuracy is auditable:
// matched_records must equal the size of the employee-id intersection, and
// unmatched rows from either side are listed rather than dropped silently.
type MergeResult struct {
	File1Processed int                `json:"file1_processed"`
	File2Processed int                `json:"file2_processed"`
	MatchedRecords int                `json:"matched_records"`
	UnmatchedFile1 []string           `json:"unmatched_file1"`
	UnmatchedFile2 []string           `json:"unmatched_file2"`
	Records        []ParsedPayrollRow `json:"-"`
}

// MergeDualFiles joins two independently parsed files by employee_id.
// Fields present in file 2 overwrite zero-valued fields from file 1 via
// decimal addition of the complementary columns: the two files are expected
// to carry disjoint column sets, so summing is a plain merge.
func MergeDualFiles(file1, file2 []ParsedPayrollRow) MergeResult {
	result := MergeResult{
		File1Processed: len(file1),
		File2Processed: len(file2),
		UnmatchedFile1: []string{},
		UnmatchedFile2: []string{},
	}

	byID := make(map[string]ParsedPayrollRow, len(file2))
	for _, row := range file2 {
		byID[row.EmployeeID] = row
	}

	matchedIDs := make(map[string]bool)
	for _, row := range file1 {
		other, ok := byID[row.EmployeeID]
		if !ok {
			result.UnmatchedFile1 = append(result.UnmatchedFile1, row.EmployeeID)
			continue
		}
		matchedIDs[row.EmployeeID] = true

		merged := row
		for field, set := range payrollFieldSetters {
			v1 := fieldValue(&row.Record, field)
			v2 := fieldValue(&other.Record, field)
			set(&merged.Record, v1.Add(v2))
		}
		if merged.FullName == "" {
			merged.FullName = other.FullName
		}
		merged.Record.SourceFile = row.Record.SourceFile + "+" + other.Record.SourceFile
		result.Records = append(result.Records, merged)
	}

	for _, row := range file2 {
		if !matchedIDs[row.EmployeeID] {
			result.UnmatchedFile2 = append(result.UnmatchedFile2, row.EmployeeID)
		}
	}

	result.MatchedRecords = len(result.Records)
	return result
}

// fieldValue reads a numeric field back out of a record by canonical name.
func fieldValue(r *payroll.PayrollRecord, field string) decimal.Decimal {
	switch field {
	case "he_so_lam_viec":
		return r.HeSoLamViec
	case "he_so_phu_cap_ket_qua":
		return r.HeSoPhuCapKetQua
	case "he_so_luong_co_ban":
		return r.HeSoLuongCoBan
	case "luong_toi_thieu_cty":
		return r.LuongToiThieuCty
	case "ngay_cong_trong_gio":
		return r.NgayCongTrongGio
	case "gio_cong_tang_ca":
		return r.GioCongTangCa
	case "gio_an_ca":
		return r.GioAnCa
	case "tong_gio_lam_viec":
		return r.TongGioLamViec
	case "tong_he_so_quy_doi":
		return r.TongHeSoQuyDoi
	case "ngay_cong_chu_nhat":
		return r.NgayCongChuNhat
	case "tong_luong_san_pham_cong_doan":
		return r.TongLuongSanPhamCongDoan
	case "don_gia_tien_luong_tren_gio":
		return r.DonGiaTienLuongTrenGio
	case "tien_luong_quy_doi":
		return r.TienLuongQuyDoi
	case "tien_luong_san_pham_trong_gio":
		return r.TienLuongSanPhamTrongGio
	case "tien_luong_tang_ca":
		return r.TienLuongTangCa
	case "tien_luong_30p":
		return r.TienLuong30p
	case "tien_luong_chu_nhat":
		return r.TienLuongChuNhat
	case "tien_khen_thuong_chuyen_can":
		return r.TienKhenThuongChuyenCan
	case "luong_hoc_viec_pc_luong":
		return r.LuongHocViecPCLuong
	case "tien_thuong_chat_luong":
		return r.TienThuongChatLuong
	case "luong_cncn_quy_doi":
		return r.LuongCNCNQuyDoi
	case "tien_tang_ca_vuot":
		return r.TienTangCaVuot
	case "phu_cap_tien_an":
		return r.PhuCapTienAn
	case "phu_cap_xang_xe":
		return r.PhuCapXangXe
	case "phu_cap_dien_thoai":
		return r.PhuCapDienThoai
	case "phu_cap_khac":
		return r.PhuCapKhac
	case "ho_tro_thoi_tiet":
		return r.HoTroThoiTiet
	case "bo_sung_luong":
		return r.BoSungLuong
	case "tien_boc_vac":
		return r.TienBocVac
	case "ho_tro_xang_xe":
		return r.HoTroXangXe
	case "bhxh_bhtn_bhyt":
		return r.BHXHBHTNBHYT
	case "thue_tncn":
		return r.ThueTNCN
	case "thue_tncn_nam_nhan_lai":
		return r.ThueTNCNNamNhanLai
	case "truy_thu_the_bhyt":
		return r.TruyThuTheBHYT
	case "tam_ung":
		return r.TamUng
	case "doan_phi":
		return r.DoanPhi
	case "tien_nha_tro":
		return r.TienNhaTro
	case "tru_bhxh":
		return r.TruBHXH
	case "tong_cong_tien_luong":
		return r.TongCongTienLuong
	case "tien_luong_thuc_nhan_cuoi_ky":
		return r.TienLuongThucNhanCuoiKy
	}
	return decimal.Zero
}
