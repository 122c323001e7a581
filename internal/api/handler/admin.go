package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/openexpo/jurypanel/internal/api/response"
	"github.com/openexpo/jurypanel/internal/model"
	"github.com/openexpo/jurypanel/internal/services/pin"
)

// AdminHandler handles administrative override endpoints
type AdminHandler struct {
	pinService *pin.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(pinService *pin.Service) *AdminHandler {
	return &AdminHandler{
		pinService: pinService,
	}
}

// ResetPIN handles POST /api/v1/admin/jurors/{juror_id}/reset-pin
func (h *AdminHandler) ResetPIN(w http.ResponseWriter, r *http.Request) {
	jurorID := mux.Vars(r)["juror_id"]
	if jurorID == "" {
		WriteError(w, NewInvalidRequestError("juror_id is required"))
		return
	}

	if err := h.pinService.Reset(r.Context(), model.JurorID(jurorID)); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AckResponse{OK: true})
}

// ClearAccount handles DELETE /api/v1/admin/jurors/{juror_id}
func (h *AdminHandler) ClearAccount(w http.ResponseWriter, r *http.Request) {
	jurorID := mux.Vars(r)["juror_id"]
	if jurorID == "" {
		WriteError(w, NewInvalidRequestError("juror_id is required"))
		return
	}

	if err := h.pinService.DeleteAccount(r.Context(), model.JurorID(jurorID)); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AckResponse{OK: true})
}
