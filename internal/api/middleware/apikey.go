package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/api/response"
)

// APIKeyHeader carries the internal API key on protected routes.
const APIKeyHeader = "X-API-Key"

// APIKey rejects requests whose X-API-Key header does not match expected.
// With no expected key configured every request is refused with 500.
//
// Example usage in router:
//
//	r.Route("/settings", func(r chi.Router) {
//	    r.Use(middleware.APIKey(cfg.Security.InternalAPIKey))
//	    r.Put("/apikey", handler.SetAPIKey)
//	})
func APIKey(expected string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expected == "" {
				response.RespondError(w, http.StatusInternalServerError, "authentication error", "Authentication not loaded")
				return
			}

			provided := r.Header.Get(APIKeyHeader)
			if provided == "" {
				response.RespondError(w, http.StatusUnauthorized, "authentication error", "Missing API key")
				return
			}
			if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
				response.RespondError(w, http.StatusUnauthorized, "authentication error", "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
