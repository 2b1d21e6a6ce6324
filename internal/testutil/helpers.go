package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/currencyapi"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/freshness"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/logging"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/metrics"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/repository"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/secret"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/service"
)

// TestLogger returns a logger that discards everything.
func TestLogger() *slog.Logger {
	return logging.Discard()
}

// NewTestBox returns a secret.Box with a freshly generated key.
func NewTestBox(t *testing.T) *secret.Box {
	t.Helper()

	key, err := secret.GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	box, err := secret.NewBox(key)
	if err != nil {
		t.Fatalf("Failed to create box: %v", err)
	}
	return box
}

// NewTestPreferenceService creates a PreferenceService evaluating freshness in UTC.
func NewTestPreferenceService(t *testing.T, db *sql.DB) *service.PreferenceService {
	t.Helper()

	prefs, err := service.NewPreferenceService(
		context.Background(),
		repository.NewPreferenceRepository(db),
		NewTestBox(t),
		freshness.Policy{Location: time.UTC},
		TestLogger(),
	)
	if err != nil {
		t.Fatalf("Failed to create preference service: %v", err)
	}
	return prefs
}

// NewTestSyncService creates a SyncService over db with the given rate source.
// The returned metrics are private to the service.
func NewTestSyncService(
	t *testing.T,
	db *sql.DB,
	source currencyapi.Client,
	opts service.SyncOptions,
) (*service.SyncService, *service.PreferenceService, *metrics.SyncMetrics) {
	t.Helper()

	prefs := NewTestPreferenceService(t, db)
	syncMetrics := metrics.NewSyncMetrics()
	svc := service.NewSyncService(
		repository.NewCurrencyRepository(db),
		prefs,
		source,
		syncMetrics,
		TestLogger(),
		opts,
	)
	return svc, prefs, syncMetrics
}

// StartTestSyncService starts svc and stops it when the test completes.
func StartTestSyncService(t *testing.T, svc *service.SyncService) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)
	svc.Wait()
	t.Cleanup(func() {
		cancel()
		svc.Close()
	})
}

func NewTestConversionService(t *testing.T, state service.StateReader, now time.Time) *service.ConversionService {
	t.Helper()

	return service.NewConversionService(state, func() time.Time { return now })
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, map[string]bool{"scheduler": false})
}
