package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/model"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/service"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/testutil"
)

func TestConvertHandler_Convert(t *testing.T) {
	now := time.Date(2026, time.October, 22, 9, 0, 0, 0, time.UTC)

	setupHandler := func(t *testing.T, mock *testutil.MockRateClient, seed bool) *ConvertHandler {
		t.Helper()
		db := testutil.SetupTestDB(t)
		if seed {
			testutil.SeedCurrencies(t, db, testutil.SampleCurrencies())
		}
		svc, _, _ := testutil.NewTestSyncService(t, db, mock, service.SyncOptions{})
		svc.Refresh(context.Background())
		return NewConvertHandler(testutil.NewTestConversionService(t, svc, now))
	}

	t.Run("converts using the resolved selection", func(t *testing.T) {
		handler := setupHandler(t, testutil.NewMockRateClient(), true)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/convert", map[string]string{"amount": "25"})
		w := httptest.NewRecorder()

		handler.Convert(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Conversion
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Result != 23 {
			t.Errorf("Expected 23, got %v", response.Result)
		}
		if response.Date != "22nd October, 2026." {
			t.Errorf("Expected '22nd October, 2026.', got '%s'", response.Date)
		}
	})

	t.Run("missing amount", func(t *testing.T) {
		handler := setupHandler(t, testutil.NewMockRateClient(), true)

		w := httptest.NewRecorder()
		handler.Convert(w, httptest.NewRequest(http.MethodGet, "/api/convert", nil))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		handler := setupHandler(t, testutil.NewMockRateClient(), true)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/convert", map[string]string{"amount": "-3"})
		w := httptest.NewRecorder()

		handler.Convert(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("no rates yet", func(t *testing.T) {
		handler := setupHandler(t, testutil.NewMockRateClient().WithError(apperrors.ErrNetwork), false)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/convert", map[string]string{"amount": "1"})
		w := httptest.NewRecorder()

		handler.Convert(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d", w.Code)
		}
	})
}
