package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/openexpo/jurypanel/internal/api/request"
	"github.com/openexpo/jurypanel/internal/api/response"
	"github.com/openexpo/jurypanel/internal/model"
	"github.com/openexpo/jurypanel/internal/services/pin"
)

// PINHandler handles PIN issuance and verification endpoints
type PINHandler struct {
	pinService *pin.Service
}

// NewPINHandler creates a new PIN handler
func NewPINHandler(pinService *pin.Service) *PINHandler {
	return &PINHandler{
		pinService: pinService,
	}
}

// Issue handles POST /api/v1/pins
func (h *PINHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req request.IssuePINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.JurorID == "" {
		WriteError(w, NewInvalidRequestError("juror_id is required"))
		return
	}

	result, err := h.pinService.Issue(r.Context(), model.JurorID(req.JurorID), req.Name, req.Dept)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.IssuePINResponseFromResult(result))
}

// Exists handles GET /api/v1/pins/{juror_id}
func (h *PINHandler) Exists(w http.ResponseWriter, r *http.Request) {
	jurorID := mux.Vars(r)["juror_id"]
	if jurorID == "" {
		WriteError(w, NewInvalidRequestError("juror_id is required"))
		return
	}

	exists, err := h.pinService.Exists(r.Context(), model.JurorID(jurorID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PINExistsResponse{Exists: exists})
}

// Verify handles POST /api/v1/pins/verify
func (h *PINHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.JurorID == "" {
		WriteError(w, NewInvalidRequestError("juror_id is required"))
		return
	}

	result, err := h.pinService.Verify(r.Context(), model.JurorID(req.JurorID), req.PIN)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.VerifyPINResponseFromResult(result))
}
