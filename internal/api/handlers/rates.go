package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/model"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/service"
)

// streamKeepAlive is the interval between SSE comment lines on an idle stream.
const streamKeepAlive = 30 * time.Second

// RatesHandler handles HTTP requests for the published rate state.
// It serves as the HTTP layer adapter over the syncService.
type RatesHandler struct {
	syncService *service.SyncService
	logger      *slog.Logger
}

// NewRatesHandler creates a new RatesHandler with the provided service dependency.
func NewRatesHandler(syncService *service.SyncService, logger *slog.Logger) *RatesHandler {
	return &RatesHandler{
		syncService: syncService,
		logger:      logger,
	}
}

// State handles GET requests for the current view state.
//
// Endpoint: GET /api/rates
// Response: 200 OK with model.ViewState
func (h *RatesHandler) State(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.syncService.State())
}

// Refresh runs a sync and returns the resulting state. Failures are reported
// through the state's status, never as an HTTP error.
//
// Endpoint: POST /api/rates/refresh
// Response: 200 OK with model.ViewState
func (h *RatesHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.syncService.Refresh(context.WithoutCancel(r.Context()))
	respondJSON(w, http.StatusOK, h.syncService.State())
}

// Currencies handles GET requests to search the adopted record set.
//
// Endpoint: GET /api/rates/currencies?q={query}
// Response: 200 OK with array of model.Currency
func (h *RatesHandler) Currencies(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.syncService.SearchCurrencies(r.URL.Query().Get("q")))
}

// Currency handles GET requests for a single currency by code.
//
// Endpoint: GET /api/rates/{code}
// Response: 200 OK with model.Currency
// Error: 404 Not Found if the code is not in the adopted record set
func (h *RatesHandler) Currency(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	c, ok := model.FindCurrency(h.syncService.State().Currencies, code)
	if !ok {
		respondError(w, "currency not found", fmt.Errorf("%w: %s", apperrors.ErrCurrencyNotFound, code))
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// Stream pushes every published state as a server-sent event until the client
// disconnects.
//
// Endpoint: GET /api/rates/stream
// Response: 200 OK, text/event-stream of "state" events carrying model.ViewState
func (h *RatesHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, "streaming not supported", fmt.Errorf("response writer cannot flush"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	updates := h.syncService.Subscribe(ctx)
	keepAlive := time.NewTicker(streamKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case state, open := <-updates:
			if !open {
				return
			}
			payload, err := json.Marshal(state)
			if err != nil {
				h.logger.Error("failed to encode state event", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: state\ndata: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
