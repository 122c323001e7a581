package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openexpo/jurypanel/internal/model"
	"github.com/openexpo/jurypanel/internal/services/token"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeAccountNotFound = "ACCOUNT_NOT_FOUND"
	CodeDraftNotFound   = "DRAFT_NOT_FOUND"
	CodeRecordNotFound  = "RECORD_NOT_FOUND"
	CodeCorruptDraft    = "CORRUPT_DRAFT"
	CodeInternalError   = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrAccountNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAccountNotFound, "Juror account not found"}}
	case errors.Is(err, model.ErrDraftNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeDraftNotFound, "No draft stored"}}
	case errors.Is(err, model.ErrRecordNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRecordNotFound, "Evaluation record not found"}}
	case errors.Is(err, model.ErrCorruptDraft):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeCorruptDraft, "Stored draft payload is corrupt"}}
	case errors.Is(err, token.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid bearer token"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
