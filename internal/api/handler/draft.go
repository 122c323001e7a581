package handler

import (
	"encoding/json"
	"net/http"

	"github.com/openexpo/jurypanel/internal/api/middleware"
	"github.com/openexpo/jurypanel/internal/api/request"
	"github.com/openexpo/jurypanel/internal/api/response"
	"github.com/openexpo/jurypanel/internal/services/draft"
)

// DraftHandler handles draft autosave endpoints
type DraftHandler struct {
	draftService *draft.Service
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *draft.Service) *DraftHandler {
	return &DraftHandler{
		draftService: draftService,
	}
}

// Save handles PUT /api/v1/draft
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	jurorID := middleware.MustGetJurorID(r.Context())

	var req request.SaveDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if len(req.Payload) == 0 {
		WriteError(w, NewInvalidRequestError("payload is required"))
		return
	}

	if err := h.draftService.Save(r.Context(), jurorID, req.Payload); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AckResponse{OK: true})
}

// Load handles GET /api/v1/draft
func (h *DraftHandler) Load(w http.ResponseWriter, r *http.Request) {
	jurorID := middleware.MustGetJurorID(r.Context())

	d, err := h.draftService.Load(r.Context(), jurorID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DraftResponseFromModel(d))
}

// Delete handles DELETE /api/v1/draft
func (h *DraftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	jurorID := middleware.MustGetJurorID(r.Context())

	if err := h.draftService.Delete(r.Context(), jurorID); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AckResponse{OK: true})
}
