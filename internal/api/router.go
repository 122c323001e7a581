package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/openexpo/jurypanel/internal/api/handler"
	"github.com/openexpo/jurypanel/internal/api/middleware"
	"github.com/openexpo/jurypanel/internal/services/draft"
	"github.com/openexpo/jurypanel/internal/services/evaluation"
	"github.com/openexpo/jurypanel/internal/services/pin"
	"github.com/openexpo/jurypanel/internal/services/resetwindow"
	"github.com/openexpo/jurypanel/internal/services/token"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger *slog.Logger

	// APIKey is the shared secret gating PIN endpoints
	APIKey string
	// AdminPasswordHash is the bcrypt hash gating admin endpoints
	AdminPasswordHash string

	TokenService      *token.Service
	PINService        *pin.Service
	DraftService      *draft.Service
	ResetWindow       *resetwindow.Service
	EvaluationService *evaluation.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	pinHandler := handler.NewPINHandler(cfg.PINService)
	adminHandler := handler.NewAdminHandler(cfg.PINService)
	draftHandler := handler.NewDraftHandler(cfg.DraftService)
	scoresHandler := handler.NewScoresHandler(cfg.EvaluationService, cfg.ResetWindow)

	// Create middleware
	apiKeyMiddleware := middleware.APIKeyAuth(cfg.APIKey)
	adminMiddleware := middleware.AdminAuth(cfg.AdminPasswordHash)
	bearerMiddleware := middleware.BearerAuth(cfg.TokenService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// PIN routes (shared API secret)
	pins := api.PathPrefix("/pins").Subrouter()
	pins.Use(apiKeyMiddleware)
	pins.HandleFunc("", pinHandler.Issue).Methods(http.MethodPost)
	pins.HandleFunc("/verify", pinHandler.Verify).Methods(http.MethodPost)
	pins.HandleFunc("/{juror_id}", pinHandler.Exists).Methods(http.MethodGet)

	// Admin routes (admin password)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(adminMiddleware)
	admin.HandleFunc("/jurors/{juror_id}/reset-pin", adminHandler.ResetPIN).Methods(http.MethodPost)
	admin.HandleFunc("/jurors/{juror_id}", adminHandler.ClearAccount).Methods(http.MethodDelete)

	// Juror-scoped routes (bearer token)
	juror := api.NewRoute().Subrouter()
	juror.Use(bearerMiddleware)
	juror.HandleFunc("/draft", draftHandler.Save).Methods(http.MethodPut)
	juror.HandleFunc("/draft", draftHandler.Load).Methods(http.MethodGet)
	juror.HandleFunc("/draft", draftHandler.Delete).Methods(http.MethodDelete)
	juror.HandleFunc("/scores", scoresHandler.Submit).Methods(http.MethodPost)
	juror.HandleFunc("/scores", scoresHandler.List).Methods(http.MethodGet)
	juror.HandleFunc("/scores", scoresHandler.DeleteData).Methods(http.MethodDelete)
	juror.HandleFunc("/scores/finalized/count", scoresHandler.CountFinalized).Methods(http.MethodGet)
	juror.HandleFunc("/reset-window", scoresHandler.OpenResetWindow).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
