package importer

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/importer"
)

const templateSheet = "Sheet1"

// payrollTemplateColumns defines the downloadable import template: canonical
// field, printed header. Order matches the company's payroll sheet.
var payrollTemplateColumns = []struct {
	Field  string
	Header string
}{
	{"employee_id", "Mã Nhân Viên"},
	{"full_name", "Họ Tên"},
	{"salary_month", "Tháng Lương"},
	{"he_so_lam_viec", "Hệ Số Làm Việc"},
	{"he_so_phu_cap_ket_qua", "Hệ Số Phụ Cấp Kết Quả"},
	{"he_so_luong_co_ban", "Hệ Số Lương Cơ Bản"},
	{"luong_toi_thieu_cty", "Lương Tối Thiểu Công Ty"},
	{"ngay_cong_trong_gio", "Ngày Công Trong Giờ"},
	{"gio_cong_tang_ca", "Giờ Công Tăng Ca"},
	{"gio_an_ca", "Giờ Ăn Ca"},
	{"tong_gio_lam_viec", "Tổng Giờ Làm Việc"},
	{"tong_he_so_quy_doi", "Tổng Hệ Số Quy Đổi"},
	{"ngay_cong_chu_nhat", "Ngày Công Chủ Nhật"},
	{"tong_luong_san_pham_cong_doan", "Tổng Lương Sản Phẩm Công Đoạn"},
	{"don_gia_tien_luong_tren_gio", "Đơn Giá Tiền Lương Trên Giờ"},
	{"tien_luong_quy_doi", "Tiền Lương Quy Đổi"},
	{"tien_luong_san_pham_trong_gio", "Tiền Lương Sản Phẩm Trong Giờ"},
	{"tien_luong_tang_ca", "Tiền Lương Tăng Ca"},
	{"tien_luong_30p", "Tiền Lương 30 Phút"},
	{"tien_luong_chu_nhat", "Tiền Lương Chủ Nhật"},
	{"tien_khen_thuong_chuyen_can", "Tiền Khen Thưởng Chuyên Cần"},
	{"luong_hoc_viec_pc_luong", "Lương Học Việc PC Lương"},
	{"tien_thuong_chat_luong", "Tiền Thưởng Chất Lượng"},
	{"luong_cncn_quy_doi", "Lương CNCN Quy Đổi"},
	{"tien_tang_ca_vuot", "Tiền Tăng Ca Vượt"},
	{"phu_cap_tien_an", "Phụ Cấp Tiền Ăn"},
	{"phu_cap_xang_xe", "Phụ Cấp Xăng Xe"},
	{"phu_cap_dien_thoai", "Phụ Cấp Điện Thoại"},
	{"phu_cap_khac", "Phụ Cấp Khác"},
	{"ho_tro_thoi_tiet", "Hỗ Trợ Thời Tiết Nóng"},
	{"bo_sung_luong", "Bổ Sung Lương"},
	{"tien_boc_vac", "Tiền Bốc Vác"},
	{"ho_tro_xang_xe", "Hỗ Trợ Xăng Xe"},
	{"bhxh_bhtn_bhyt", "BHXH BHTN BHYT"},
	{"thue_tncn", "Thuế TNCN"},
	{"thue_tncn_nam_nhan_lai", "Thuế TNCN Năm Nhận Lại"},
	{"truy_thu_the_bhyt", "Truy Thu Thẻ BHYT"},
	{"tam_ung", "Tạm Ứng"},
	{"doan_phi", "Đoàn Phí"},
	{"tien_nha_tro", "Tiền Nhà Trọ"},
	{"tru_bhxh", "Trừ BHXH"},
	{"tong_cong_tien_luong", "Tổng Cộng Tiền Lương"},
	{"tien_luong_thuc_nhan_cuoi_ky", "Tiền Lương Thực Nhận Cuối Kỳ"},
}

// BuildPayrollTemplate renders the import template workbook: the full header
// row plus one sample row the admin can overwrite.
func BuildPayrollTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headers := make([]interface{}, len(payrollTemplateColumns))
	for i, col := range payrollTemplateColumns {
		headers[i] = col.Header
	}
	if err := f.SetSheetRow(templateSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write template header: %w", err)
	}

	sample := make([]interface{}, len(payrollTemplateColumns))
	for i, col := range payrollTemplateColumns {
		switch col.Field {
		case "employee_id":
			sample[i] = "NV001"
		case "full_name":
			sample[i] = "Nguyễn Văn A"
		case "salary_month":
			sample[i] = "2025-01"
		default:
			sample[i] = 0
		}
	}
	if err := f.SetSheetRow(templateSheet, "A2", &sample); err != nil {
		return nil, fmt.Errorf("write template sample row: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render template workbook: %w", err)
	}
	return buf.Bytes(), nil
}

var errorReportHeaders = []string{"Dòng", "Mã Nhân Viên", "Tháng Lương", "Cột Lỗi", "Loại Lỗi", "Mô Tả"}

// BuildErrorReport renders the import errors as a workbook the admin can fix
// and re-upload: error columns first, then the original cell values under
// their own headers.
func BuildErrorReport(rows []importer.ErrorReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	originalHeaders := originalHeaderUnion(rows)

	header := make([]interface{}, 0, len(errorReportHeaders)+len(originalHeaders))
	for _, h := range errorReportHeaders {
		header = append(header, h)
	}
	for _, h := range originalHeaders {
		header = append(header, h)
	}
	if err := f.SetSheetRow(templateSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write error report header: %w", err)
	}

	for i, row := range rows {
		cells := []interface{}{row.Row, row.EmployeeID, row.SalaryMonth, row.Field, string(row.Type), row.Message}
		for _, h := range originalHeaders {
			cells = append(cells, row.Original[h])
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(templateSheet, axis, &cells); err != nil {
			return nil, fmt.Errorf("write error report row %d: %w", row.Row, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render error report workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func originalHeaderUnion(rows []importer.ErrorReportRow) []string {
	set := make(map[string]bool)
	for _, row := range rows {
		for h := range row.Original {
			set[h] = true
		}
	}
	headers := make([]string, 0, len(set))
	for h := range set {
		headers = append(headers, h)
	}
	sort.Strings(headers)
	return headers
}
