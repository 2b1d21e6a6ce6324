// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/api/response"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/validation"
)

// ValidateCurrencyCodeMiddleware validates that the code URL parameter is a
// three-letter currency code. Lower-case input is accepted and upper-cased.
// Returns 400 Bad Request if the code is missing or invalid.
//
// Example usage in router:
//
//	r.With(middleware.ValidateCurrencyCodeMiddleware).Get("/{code}", handler.Currency)
func ValidateCurrencyCodeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		if code == "" {
			response.RespondError(w, http.StatusBadRequest, "currency code is required", "")
			return
		}

		code = strings.ToUpper(code)
		if err := validation.ValidateCurrencyCode(code); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid currency code", err.Error())
			return
		}

		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			for i, key := range rctx.URLParams.Keys {
				if key == "code" {
					rctx.URLParams.Values[i] = code
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}
