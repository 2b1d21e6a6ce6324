package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Currency-Rate-Sync-Backend/internal/api/middleware"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/config"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/metrics"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/service"
)

// Services bundles what the router exposes.
type Services struct {
	System     *service.SystemService
	Sync       *service.SyncService
	Preference *service.PreferenceService
	Conversion *service.ConversionService
	Metrics    *metrics.SyncMetrics
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	if svc.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", svc.Metrics.Handler())
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/rates", func(r chi.Router) {
			ratesHandler := handlers.NewRatesHandler(svc.Sync, logger)
			r.Get("/", ratesHandler.State)
			r.Post("/refresh", ratesHandler.Refresh)
			r.Get("/stream", ratesHandler.Stream)
			r.Get("/currencies", ratesHandler.Currencies)
			r.With(custommiddleware.ValidateCurrencyCodeMiddleware).Get("/{code}", ratesHandler.Currency)
		})

		r.Route("/selection", func(r chi.Router) {
			selectionHandler := handlers.NewSelectionHandler(svc.Sync, svc.Preference)
			r.Get("/", selectionHandler.Selection)
			r.Put("/source", selectionHandler.SetSource)
			r.Put("/target", selectionHandler.SetTarget)
			r.Post("/switch", selectionHandler.Switch)
		})

		r.Route("/convert", func(r chi.Router) {
			convertHandler := handlers.NewConvertHandler(svc.Conversion)
			r.Get("/", convertHandler.Convert)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Use(custommiddleware.APIKey(cfg.Security.InternalAPIKey))
			settingsHandler := handlers.NewSettingsHandler(svc.Preference, cfg.CurrencyAPI.APIKey != "")
			r.Get("/apikey", settingsHandler.APIKeyStatus)
			r.Put("/apikey", settingsHandler.SetAPIKey)
			r.Delete("/apikey", settingsHandler.DeleteAPIKey)
		})
	})

	return r
}
