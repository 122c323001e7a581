package middleware

import (
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/openexpo/jurypanel/internal/api/apierr"
)

// Header names for the non-bearer credential classes
const (
	APIKeyHeader        = "X-Api-Key"
	AdminPasswordHeader = "X-Admin-Password"
)

// APIKeyAuth creates middleware requiring the shared API secret.
// It gates PIN issuance and verification from arbitrary callers.
func APIKeyAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(APIKeyHeader)
			if provided == "" ||
				subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				apierr.WriteError(w, apierr.NewUnauthorizedError("Invalid API key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminAuth creates middleware requiring the admin password.
// The password is checked against a bcrypt hash so the plaintext never
// lives in configuration.
func AdminAuth(passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(AdminPasswordHeader)
			if provided == "" ||
				bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(provided)) != nil {
				apierr.WriteError(w, apierr.NewUnauthorizedError("Invalid admin password"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
