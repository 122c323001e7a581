package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/openexpo/jurypanel/internal/api/apierr"
	"github.com/openexpo/jurypanel/internal/model"
	"github.com/openexpo/jurypanel/internal/services/token"
)

type contextKey string

const jurorContextKey contextKey = "juror"

// BearerAuth creates middleware requiring a valid bearer token.
// The authenticated juror id is placed on the request context.
func BearerAuth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := extractToken(r)
			if tok == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError("Authentication required"))
				return
			}

			jurorID, err := tokens.Verify(r.Context(), tok)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), jurorContextKey, jurorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetJurorID returns the authenticated juror id from the request context
func GetJurorID(ctx context.Context) model.JurorID {
	jurorID, _ := ctx.Value(jurorContextKey).(model.JurorID)
	return jurorID
}

// MustGetJurorID returns the authenticated juror id or panics
func MustGetJurorID(ctx context.Context) model.JurorID {
	jurorID := GetJurorID(ctx)
	if jurorID == "" {
		panic("no juror in context - auth middleware not applied?")
	}
	return jurorID
}
