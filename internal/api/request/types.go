package request

import "encoding/json"

// IssuePINRequest is the request body for issuing a PIN
type IssuePINRequest struct {
	JurorID string `json:"juror_id"`
	Name    string `json:"name"`
	Dept    string `json:"dept"`
}

// VerifyPINRequest is the request body for verifying a PIN
type VerifyPINRequest struct {
	JurorID string `json:"juror_id"`
	PIN     string `json:"pin"`
}

// SaveDraftRequest is the request body for saving a draft
type SaveDraftRequest struct {
	Payload json.RawMessage `json:"payload"`
}

// ScoreRow is one submitted score row
type ScoreRow struct {
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

	Comments string `json:"comments"`
	Status   string `json:"status"`
}

// SubmitScoresRequest is the request body for submitting score rows
type SubmitScoresRequest struct {
	Rows []ScoreRow `json:"rows"`
}
