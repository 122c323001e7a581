package middleware

import (
	"log/slog"
	"net/http"

	"github.com/openexpo/jurypanel/internal/api/apierr"
	"github.com/openexpo/jurypanel/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// Returns JSON error responses on panic so the service always answers.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

// Logging re-exports the shared request logging middleware
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}
