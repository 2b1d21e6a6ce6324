package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/api/response"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/validation"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data any) {
	response.RespondJSON(w, status, data)
}

// respondError maps err onto a status code and writes message with err as detail.
func respondError(w http.ResponseWriter, message string, err error) {
	response.RespondError(w, errorStatus(err), message, err.Error())
}

func errorStatus(err error) int {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr),
		errors.Is(err, apperrors.ErrInvalidCurrencyCode),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInvalidRequestBody),
		errors.Is(err, apperrors.ErrInvalidQueryParam),
		errors.Is(err, apperrors.ErrAPIKeyMissing):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrCurrencyNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrSelectionNotResolved),
		errors.Is(err, apperrors.ErrZeroRate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrEncryptionKeyMissing):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
