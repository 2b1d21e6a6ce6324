package handlers

import (
	"net/http"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/api/request"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/service"
)

// ConvertHandler handles HTTP requests for amount conversion.
type ConvertHandler struct {
	conversionService *service.ConversionService
}

// NewConvertHandler creates a new ConvertHandler with the provided service dependency.
func NewConvertHandler(conversionService *service.ConversionService) *ConvertHandler {
	return &ConvertHandler{
		conversionService: conversionService,
	}
}

// Convert handles GET requests that convert an amount from source to target.
//
// Endpoint: GET /api/convert?amount={number}
// Response: 200 OK with model.Conversion
// Error: 400 Bad Request if amount is missing or invalid
// Error: 409 Conflict if the selection is not resolved
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	amount, err := request.ParseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		respondError(w, "invalid amount", err)
		return
	}

	conversion, err := h.conversionService.Convert(amount)
	if err != nil {
		respondError(w, "failed to convert amount", err)
		return
	}
	respondJSON(w, http.StatusOK, conversion)
}
