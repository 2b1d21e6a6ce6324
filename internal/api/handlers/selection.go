package handlers

import (
	"net/http"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/api/request"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/model"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/service"
)

// SelectionHandler handles HTTP requests for the source/target selection.
type SelectionHandler struct {
	syncService       *service.SyncService
	preferenceService *service.PreferenceService
}

// NewSelectionHandler creates a new SelectionHandler with the provided service dependencies.
func NewSelectionHandler(syncService *service.SyncService, preferenceService *service.PreferenceService) *SelectionHandler {
	return &SelectionHandler{
		syncService:       syncService,
		preferenceService: preferenceService,
	}
}

// SelectionResponse pairs the persisted codes with their resolved records.
type SelectionResponse struct {
	model.Selection
	Source model.RequestState[model.Currency] `json:"source"`
	Target model.RequestState[model.Currency] `json:"target"`
}

func (h *SelectionHandler) selection() SelectionResponse {
	state := h.syncService.State()
	return SelectionResponse{
		Selection: h.preferenceService.Selection(),
		Source:    state.Source,
		Target:    state.Target,
	}
}

// Selection handles GET requests for the current selection.
//
// Endpoint: GET /api/selection
// Response: 200 OK with SelectionResponse
func (h *SelectionHandler) Selection(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.selection())
}

// SetSource handles PUT requests that persist a new source currency.
// Resolution against the record set happens asynchronously.
//
// Endpoint: PUT /api/selection/source
// Request: {"code": "GBP"}
// Response: 200 OK with SelectionResponse
// Error: 400 Bad Request if the code is malformed
func (h *SelectionHandler) SetSource(w http.ResponseWriter, r *http.Request) {
	var req request.SetCurrencyRequest
	if err := request.Decode(r, &req); err != nil {
		respondError(w, "invalid source currency", err)
		return
	}

	if err := h.syncService.SaveSourceCode(r.Context(), req.Code); err != nil {
		respondError(w, "failed to save source currency", err)
		return
	}
	respondJSON(w, http.StatusOK, h.selection())
}

// SetTarget handles PUT requests that persist a new target currency.
//
// Endpoint: PUT /api/selection/target
// Request: {"code": "JPY"}
// Response: 200 OK with SelectionResponse
// Error: 400 Bad Request if the code is malformed
func (h *SelectionHandler) SetTarget(w http.ResponseWriter, r *http.Request) {
	var req request.SetCurrencyRequest
	if err := request.Decode(r, &req); err != nil {
		respondError(w, "invalid target currency", err)
		return
	}

	if err := h.syncService.SaveTargetCode(r.Context(), req.Code); err != nil {
		respondError(w, "failed to save target currency", err)
		return
	}
	respondJSON(w, http.StatusOK, h.selection())
}

// Switch swaps source and target. With persist=true the swapped codes are
// saved as well, which requires both sides to be resolved.
//
// Endpoint: POST /api/selection/switch?persist={bool}
// Response: 200 OK with model.ViewState
// Error: 409 Conflict if persist is requested while a side is unresolved
func (h *SelectionHandler) Switch(w http.ResponseWriter, r *http.Request) {
	persist, err := request.ParsePersist(r.URL.Query().Get("persist"))
	if err != nil {
		respondError(w, "invalid persist parameter", err)
		return
	}

	if !persist {
		respondJSON(w, http.StatusOK, h.syncService.Switch())
		return
	}

	state, err := h.syncService.SwitchAndPersist(r.Context())
	if err != nil {
		respondError(w, "failed to switch currencies", err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}
