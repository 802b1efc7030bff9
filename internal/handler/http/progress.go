package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/handler/http/response"
	progressService "github.com/levanminhduc/LuongHoaThoNew-sub004/internal/service/progress"
)

type ProgressHandler interface {
	GetProgress(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
}

type progressHandlerImpl struct {
	progressService progressService.Service
}

func NewProgressHandler(svc progressService.Service) ProgressHandler {
	return &progressHandlerImpl{progressService: svc}
}

func isT13Param(r *http.Request) bool {
	return r.URL.Query().Get("is_t13") == "true"
}

func (h *progressHandlerImpl) GetProgress(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	result, err := h.progressService.GetProgress(r.Context(), month, isT13Param(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *progressHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	result, err := h.progressService.GetStatus(r.Context(), month, isT13Param(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
