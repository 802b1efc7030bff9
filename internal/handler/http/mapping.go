package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/mapping"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/handler/http/response"
	importerService "github.com/levanminhduc/LuongHoaThoNew-sub004/internal/service/importer"
)

type MappingHandler interface {
	ListConfigs(w http.ResponseWriter, r *http.Request)
	GetConfig(w http.ResponseWriter, r *http.Request)
	SaveConfig(w http.ResponseWriter, r *http.Request)
	DeleteConfig(w http.ResponseWriter, r *http.Request)
	Detect(w http.ResponseWriter, r *http.Request)
}

type mappingHandlerImpl struct {
	mappingRepo mapping.MappingRepository
}

func NewMappingHandler(repo mapping.MappingRepository) MappingHandler {
	return &mappingHandlerImpl{mappingRepo: repo}
}

func (h *mappingHandlerImpl) ListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.mappingRepo.ListConfigs(r.Context(), r.URL.Query().Get("file_type"), true)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, configs)
}

func (h *mappingHandlerImpl) GetConfig(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid config id", nil)
		return
	}

	config, err := h.mappingRepo.GetConfig(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, config)
}

func (h *mappingHandlerImpl) SaveConfig(w http.ResponseWriter, r *http.Request) {
	var req mapping.SaveConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	config := mapping.ImportFileConfig{
		Name:        req.Name,
		Description: req.Description,
		FileType:    req.FileType,
		IsActive:    true,
	}
	for i, m := range req.Mappings {
		order := m.DisplayOrder
		if order == 0 {
			order = i
		}
		config.Mappings = append(config.Mappings, mapping.ColumnMapping{
			DatabaseField:   m.DatabaseField,
			ExcelColumnName: m.ExcelColumnName,
			ConfidenceScore: m.ConfidenceScore,
			MappingType:     m.MappingType,
			DisplayOrder:    order,
		})
	}

	saved, err := h.mappingRepo.SaveConfig(r.Context(), config)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Đã lưu cấu hình ánh xạ cột", saved)
}

func (h *mappingHandlerImpl) DeleteConfig(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid config id", nil)
		return
	}

	if err := h.mappingRepo.DeleteConfig(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Đã xoá cấu hình ánh xạ cột", nil)
}

// Detect proposes column mappings for the submitted headers without
// persisting anything.
func (h *mappingHandlerImpl) Detect(w http.ResponseWriter, r *http.Request) {
	var req mapping.DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if len(req.Headers) == 0 {
		response.BadRequest(w, "Danh sách tiêu đề cột trống", nil)
		return
	}

	proposals := importerService.ProposeMappings(req.Headers, importerService.PayrollFields())
	response.Success(w, proposals)
}
