// Package metrics exposes prometheus instrumentation for rate synchronisation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Refresh outcomes.
const (
	OutcomeCacheHit  = "cache_hit"
	OutcomeFresh     = "fresh_skip"
	OutcomeFetched   = "fetched"
	OutcomeFailed    = "failed"
	OutcomeScheduled = "scheduled_skip"
)

// SyncMetrics holds the sync coordinator's collectors on a private registry.
type SyncMetrics struct {
	registry *prometheus.Registry

	RefreshTotal     *prometheus.CounterVec
	RefreshDuration  prometheus.Histogram
	FetchErrorsTotal *prometheus.CounterVec
	CurrenciesCached prometheus.Gauge
	LastUpdated      prometheus.Gauge
}

// NewSyncMetrics registers all collectors on a new registry.
func NewSyncMetrics() *SyncMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &SyncMetrics{
		registry: reg,
		RefreshTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rates_refresh_total",
			Help: "Refresh runs by outcome.",
		}, []string{"outcome"}),
		RefreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rates_refresh_duration_seconds",
			Help:    "Time spent in a refresh run.",
			Buckets: prometheus.DefBuckets,
		}),
		FetchErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rates_fetch_errors_total",
			Help: "Remote fetch failures by kind.",
		}, []string{"kind"}),
		CurrenciesCached: factory.NewGauge(prometheus.GaugeOpts{
			Name: "rates_currencies_cached",
			Help: "Currencies in the adopted record set.",
		}),
		LastUpdated: factory.NewGauge(prometheus.GaugeOpts{
			Name: "rates_last_updated_timestamp_seconds",
			Help: "Provider-reported timestamp of the adopted record set.",
		}),
	}
}

// ObserveRefresh records one finished refresh.
func (m *SyncMetrics) ObserveRefresh(outcome string, started time.Time) {
	m.RefreshTotal.WithLabelValues(outcome).Inc()
	m.RefreshDuration.Observe(time.Since(started).Seconds())
}

// Handler serves the registry in the prometheus exposition format.
func (m *SyncMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *SyncMetrics) Registry() *prometheus.Registry {
	return m.registry
}
