package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/importer"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/handler/http/response"
	importerService "github.com/levanminhduc/LuongHoaThoNew-sub004/internal/service/importer"
)

type ImportHandler interface {
	ImportPayroll(w http.ResponseWriter, r *http.Request)
	ImportAttendance(w http.ResponseWriter, r *http.Request)
	ImportEmployees(w http.ResponseWriter, r *http.Request)
	DownloadTemplate(w http.ResponseWriter, r *http.Request)
	ErrorReport(w http.ResponseWriter, r *http.Request)
}

type importHandlerImpl struct {
	importerService importerService.Service
	maxUploadBytes  int64
}

func NewImportHandler(svc importerService.Service, maxUploadBytes int64) ImportHandler {
	return &importHandlerImpl{importerService: svc, maxUploadBytes: maxUploadBytes}
}

// formFile reads one optional multipart file fully into memory. Uploads are
// bounded by MaxBytesReader before parsing.
func formFile(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

func (h *importHandlerImpl) ImportPayroll(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.BadRequest(w, "Tệp tải lên quá lớn hoặc không hợp lệ", nil)
		return
	}

	file1, file1Name, err := formFile(r, "file1")
	if err != nil || file1 == nil {
		response.BadRequest(w, "Thiếu tệp dữ liệu lương (file1)", nil)
		return
	}
	file2, file2Name, err := formFile(r, "file2")
	if err != nil {
		response.BadRequest(w, "Tệp thứ hai không hợp lệ", nil)
		return
	}

	req := importerService.PayrollImportRequest{
		File1:        file1,
		File1Name:    file1Name,
		File2:        file2,
		File2Name:    file2Name,
		DefaultMonth: r.FormValue("salary_month"),
		IsT13:        r.FormValue("is_t13") == "true",
	}
	if v := r.FormValue("mapping_config_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(w, "mapping_config_id không hợp lệ", nil)
			return
		}
		req.MappingConfigID = &id
	}

	result, err := h.importerService.ImportPayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import dữ liệu lương hoàn tất", result)
}

func (h *importHandlerImpl) ImportAttendance(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.BadRequest(w, "Tệp tải lên quá lớn hoặc không hợp lệ", nil)
		return
	}

	file, filename, err := formFile(r, "file")
	if err != nil || file == nil {
		response.BadRequest(w, "Thiếu tệp chấm công", nil)
		return
	}

	year, errY := strconv.Atoi(r.FormValue("year"))
	month, errM := strconv.Atoi(r.FormValue("month"))
	if errY != nil || errM != nil {
		response.BadRequest(w, "Kỳ chấm công (year, month) không hợp lệ", nil)
		return
	}

	result, err := h.importerService.ImportAttendance(r.Context(), importerService.AttendanceImportRequest{
		File:     file,
		Filename: filename,
		Year:     year,
		Month:    month,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import chấm công hoàn tất", result)
}

func (h *importHandlerImpl) ImportEmployees(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.BadRequest(w, "Tệp tải lên quá lớn hoặc không hợp lệ", nil)
		return
	}

	file, filename, err := formFile(r, "file")
	if err != nil || file == nil {
		response.BadRequest(w, "Thiếu tệp danh sách nhân viên", nil)
		return
	}

	result, err := h.importerService.ImportEmployees(r.Context(), importerService.EmployeeImportRequest{
		File:     file,
		Filename: filename,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import danh sách nhân viên hoàn tất", result)
}

func (h *importHandlerImpl) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	data, err := h.importerService.PayrollTemplate()
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.File(w, "payroll-template.xlsx", data)
}

type errorReportRequest struct {
	Errors       []importer.ImportErrorRecord `json:"errors"`
	OriginalRows map[int]map[string]string    `json:"original_rows"`
}

func (h *importHandlerImpl) ErrorReport(w http.ResponseWriter, r *http.Request) {
	var req errorReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if len(req.Errors) == 0 {
		response.BadRequest(w, "Không có lỗi nào để xuất báo cáo", nil)
		return
	}

	data, err := h.importerService.ErrorReport(req.Errors, req.OriginalRows)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.File(w, "import-errors.xlsx", data)
}
