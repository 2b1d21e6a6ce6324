package handlers

import (
	"net/http"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/api/request"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/service"
)

// API key sources reported by the settings endpoint.
const (
	APIKeySourceEnv    = "env"
	APIKeySourceStored = "stored"
	APIKeySourceNone   = "none"
)

// SettingsHandler handles HTTP requests for provider settings.
type SettingsHandler struct {
	preferenceService *service.PreferenceService
	envKeyConfigured  bool
}

// NewSettingsHandler creates a new SettingsHandler. envKeyConfigured reports
// whether CURRENCY_API_KEY is set, which takes precedence over a stored key.
func NewSettingsHandler(preferenceService *service.PreferenceService, envKeyConfigured bool) *SettingsHandler {
	return &SettingsHandler{
		preferenceService: preferenceService,
		envKeyConfigured:  envKeyConfigured,
	}
}

// APIKeyStatusResponse tells whether a provider key is available. The key itself is never returned.
type APIKeyStatusResponse struct {
	Configured bool   `json:"configured"`
	Source     string `json:"source"`
}

// APIKeyStatus handles GET requests for the provider key status.
//
// Endpoint: GET /api/settings/apikey
// Response: 200 OK with APIKeyStatusResponse
func (h *SettingsHandler) APIKeyStatus(w http.ResponseWriter, r *http.Request) {
	source := APIKeySourceNone
	switch {
	case h.envKeyConfigured:
		source = APIKeySourceEnv
	case h.preferenceService.HasStoredAPIKey(r.Context()):
		source = APIKeySourceStored
	}
	respondJSON(w, http.StatusOK, APIKeyStatusResponse{
		Configured: source != APIKeySourceNone,
		Source:     source,
	})
}

// SetAPIKey handles PUT requests that store the provider key encrypted.
//
// Endpoint: PUT /api/settings/apikey
// Request: {"apiKey": "..."}
// Response: 204 No Content
// Error: 400 Bad Request if the key is missing
// Error: 503 Service Unavailable if no ENCRYPTION_KEY is configured
func (h *SettingsHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	var req request.SetAPIKeyRequest
	if err := request.Decode(r, &req); err != nil {
		respondError(w, "invalid api key", err)
		return
	}

	if err := h.preferenceService.SaveAPIKey(r.Context(), req.APIKey); err != nil {
		respondError(w, "failed to save api key", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAPIKey handles DELETE requests that remove the stored provider key.
//
// Endpoint: DELETE /api/settings/apikey
// Response: 204 No Content
func (h *SettingsHandler) DeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	if err := h.preferenceService.ClearAPIKey(r.Context()); err != nil {
		respondError(w, "failed to delete api key", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
