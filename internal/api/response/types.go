package response

import (
	"encoding/json"
	"time"

	"github.com/openexpo/jurypanel/internal/model"
	"github.com/openexpo/jurypanel/internal/services/evaluation"
	"github.com/openexpo/jurypanel/internal/services/pin"
)

// IssuePINResponse is the response for PIN issuance
type IssuePINResponse struct {
	PIN   string `json:"pin"`
	Token string `json:"token"`
}

// IssuePINResponseFromResult converts a pin.IssueResult
func IssuePINResponseFromResult(r *pin.IssueResult) IssuePINResponse {
	return IssuePINResponse{
		PIN:   r.PIN,
		Token: r.Token,
	}
}

// PINExistsResponse is the response for checking PIN existence
type PINExistsResponse struct {
	Exists bool `json:"exists"`
}

// VerifyPINResponse is the response for PIN verification
type VerifyPINResponse struct {
	Valid        bool   `json:"valid"`
	Locked       bool   `json:"locked"`
	AttemptsLeft int    `json:"attempts_left"`
	Token        string `json:"token,omitempty"`
}

// VerifyPINResponseFromResult converts a pin.VerifyResult
func VerifyPINResponseFromResult(r *pin.VerifyResult) VerifyPINResponse {
	return VerifyPINResponse{
		Valid:        r.Valid,
		Locked:       r.Locked,
		AttemptsLeft: r.AttemptsLeft,
		Token:        r.Token,
	}
}

// AckResponse is a simple acknowledgement
type AckResponse struct {
	OK bool `json:"ok"`
}

// DraftResponse is the response for loading a draft
type DraftResponse struct {
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DraftResponseFromModel converts a model.Draft
func DraftResponseFromModel(d *model.Draft) DraftResponse {
	return DraftResponse{
		Payload:   d.Payload,
		UpdatedAt: d.UpdatedAt,
	}
}

// SubmitScoresResponse reports the outcome of a batch submission
type SubmitScoresResponse struct {
	Updated            int `json:"updated"`
	Added              int `json:"added"`
	StaleSkipped       int `json:"stale_skipped"`
	RegressionsIgnored int `json:"regressions_ignored"`
}

// SubmitScoresResponseFromResult converts an evaluation.SubmitResult
func SubmitScoresResponseFromResult(r *evaluation.SubmitResult) SubmitScoresResponse {
	return SubmitScoresResponse{
		Updated:            r.Updated,
		Added:              r.Added,
		StaleSkipped:       r.StaleSkipped,
		RegressionsIgnored: r.RegressionsIgnored,
	}
}

// ScoreRecord is one resolved evaluation record
type ScoreRecord struct {
	JurorID   string `json:"juror_id"`
	JurorName string `json:"juror_name"`
	JurorDept string `json:"juror_dept"`
	Timestamp string `json:"timestamp"`
	GroupID   string `json:"group_id"`
	GroupName string `json:"group_name"`

	ScorePlanning   int `json:"score_planning"`
	ScoreExecution  int `json:"score_execution"`
	ScoreCreativity int `json:"score_creativity"`
	ScoreDelivery   int `json:"score_delivery"`
	ScoreTotal      int `json:"score_total"`

	Comments    string `json:"comments"`
	Status      string `json:"status"`
	EditingFlag string `json:"editing_flag,omitempty"`
	Color       string `json:"color,omitempty"`
}

// ScoreRecordFromModel converts a model.EvaluationRecord
func ScoreRecordFromModel(r *model.EvaluationRecord) ScoreRecord {
	return ScoreRecord{
		JurorID:         string(r.JurorID),
		JurorName:       r.JurorName,
		JurorDept:       r.JurorDept,
		Timestamp:       r.Timestamp,
		GroupID:         string(r.GroupID),
		GroupName:       r.GroupName,
		ScorePlanning:   r.ScorePlanning,
		ScoreExecution:  r.ScoreExecution,
		ScoreCreativity: r.ScoreCreativity,
		ScoreDelivery:   r.ScoreDelivery,
		ScoreTotal:      r.ScoreTotal,
		Comments:        r.Comments,
		Status:          string(r.Status),
		EditingFlag:     r.EditingFlag,
		Color:           r.Color,
	}
}

// ListScoresResponse is the response for listing resolved scores
type ListScoresResponse struct {
	Records []ScoreRecord `json:"records"`
}

// ListScoresResponseFromModels converts a slice of records
func ListScoresResponseFromModels(records []*model.EvaluationRecord) ListScoresResponse {
	out := make([]ScoreRecord, len(records))
	for i, r := range records {
		out[i] = ScoreRecordFromModel(r)
	}
	return ListScoresResponse{Records: out}
}

// CountResponse carries a single count
type CountResponse struct {
	Count int `json:"count"`
}
