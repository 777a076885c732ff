package api

import (
	"net/http"
	"strings"

	"github.com/boksu/booksum/internal/logging"
	"github.com/boksu/booksum/internal/server/auth"
)

const authFailureDetail = "Invalid authentication credentials"

// Authenticator verifies the bearer credential on every request and attaches
// the resulting identity to the context. Any missing, malformed, expired, or
// unverifiable credential is rejected with 401; there is no fallback.
func Authenticator(secretKey []byte, logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeDetail(w, http.StatusUnauthorized, authFailureDetail)
				return
			}

			identity, err := auth.VerifyToken(token, secretKey)
			if err != nil {
				logger.Warn(r.Context(), "authentication failed", "error", err.Error())
				writeDetail(w, http.StatusUnauthorized, authFailureDetail)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// CORS applies permissive cross-origin headers and short-circuits preflight
// requests. The API is consumed directly by browser clients.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
