package http

import (
	"encoding/json"
	"net/http"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/signature"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/handler/http/response"
	signatureService "github.com/levanminhduc/LuongHoaThoNew-sub004/internal/service/signature"
)

type SignatureHandler interface {
	EmployeeSign(w http.ResponseWriter, r *http.Request)
	ManagementSign(w http.ResponseWriter, r *http.Request)
}

type signatureHandlerImpl struct {
	signatureService signatureService.Service
}

func NewSignatureHandler(svc signatureService.Service) SignatureHandler {
	return &signatureHandlerImpl{signatureService: svc}
}

// EmployeeSign is the public kiosk endpoint: the employee authenticates
// inline with their CCCD (or chosen password), not with a JWT.
func (h *signatureHandlerImpl) EmployeeSign(w http.ResponseWriter, r *http.Request) {
	var req signature.EmployeeSignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.signatureService.EmployeeSign(r.Context(), req, signatureService.RequestMeta{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ký nhận lương thành công", result)
}

func (h *signatureHandlerImpl) ManagementSign(w http.ResponseWriter, r *http.Request) {
	var req signature.ManagementSignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	p := principalFrom(r)
	result, err := h.signatureService.ManagementSign(r.Context(), req, signatureService.Signer{
		EmployeeID: p.EmployeeID,
		Role:       p.Role,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Ký xác nhận thành công", result)
}
