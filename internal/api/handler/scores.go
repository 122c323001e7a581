package handler

import (
	"encoding/json"
	"net/http"

	"github.com/openexpo/jurypanel/internal/api/middleware"
	"github.com/openexpo/jurypanel/internal/api/request"
	"github.com/openexpo/jurypanel/internal/api/response"
	"github.com/openexpo/jurypanel/internal/model"
	"github.com/openexpo/jurypanel/internal/services/evaluation"
	"github.com/openexpo/jurypanel/internal/services/resetwindow"
)

// ScoresHandler handles score submission and retrieval endpoints
type ScoresHandler struct {
	evaluationService *evaluation.Service
	windowService     *resetwindow.Service
}

// NewScoresHandler creates a new scores handler
func NewScoresHandler(evaluationService *evaluation.Service, windowService *resetwindow.Service) *ScoresHandler {
	return &ScoresHandler{
		evaluationService: evaluationService,
		windowService:     windowService,
	}
}

// Submit handles POST /api/v1/scores
func (h *ScoresHandler) Submit(w http.ResponseWriter, r *http.Request) {
	jurorID := middleware.MustGetJurorID(r.Context())

	var req request.SubmitScoresRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if len(req.Rows) == 0 {
		WriteError(w, NewInvalidRequestError("rows is required"))
		return
	}

	subs := make([]evaluation.Submission, len(req.Rows))
	for i, row := range req.Rows {
		if row.GroupID == "" {
			WriteError(w, NewInvalidRequestError("group_id is required on every row"))
			return
		}
		subs[i] = evaluation.Submission{
			JurorID:         model.JurorID(row.JurorID),
			JurorName:       row.JurorName,
			JurorDept:       row.JurorDept,
			Timestamp:       row.Timestamp,
			GroupID:         model.GroupID(row.GroupID),
			GroupName:       row.GroupName,
			ScorePlanning:   row.ScorePlanning,
			ScoreExecution:  row.ScoreExecution,
			ScoreCreativity: row.ScoreCreativity,
			ScoreDelivery:   row.ScoreDelivery,
			ScoreTotal:      row.ScoreTotal,
			Comments:        row.Comments,
			Status:          model.Status(row.Status),
		}
	}

	result, err := h.evaluationService.SubmitBatch(r.Context(), jurorID, subs)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitScoresResponseFromResult(result))
}

// List handles GET /api/v1/scores
func (h *ScoresHandler) List(w http.ResponseWriter, r *http.Request) {
	jurorID := middleware.MustGetJurorID(r.Context())

	records, err := h.evaluationService.ListResolved(r.Context(), jurorID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ListScoresResponseFromModels(records))
}

// CountFinalized handles GET /api/v1/scores/finalized/count
func (h *ScoresHandler) CountFinalized(w http.ResponseWriter, r *http.Request) {
	jurorID := middleware.MustGetJurorID(r.Context())

	count, err := h.evaluationService.CountFinalized(r.Context(), jurorID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CountResponse{Count: count})
}

// DeleteData handles DELETE /api/v1/scores
func (h *ScoresHandler) DeleteData(w http.ResponseWriter, r *http.Request) {
	jurorID := middleware.MustGetJurorID(r.Context())

	deleted, err := h.evaluationService.DeleteJurorData(r.Context(), jurorID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CountResponse{Count: deleted})
}

// OpenResetWindow handles POST /api/v1/reset-window
func (h *ScoresHandler) OpenResetWindow(w http.ResponseWriter, r *http.Request) {
	jurorID := middleware.MustGetJurorID(r.Context())

	if err := h.windowService.Open(r.Context(), jurorID); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AckResponse{OK: true})
}
