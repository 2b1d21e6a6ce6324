package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/api/middleware"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/config"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/service"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/testutil"
)

func newTestServer(t *testing.T, internalKey string) *httptest.Server {
	t.Helper()

	db := testutil.SetupTestDB(t)
	testutil.SeedCurrencies(t, db, testutil.SampleCurrencies())

	syncService, prefs, syncMetrics := testutil.NewTestSyncService(t, db, testutil.NewMockRateClient(), service.SyncOptions{})
	syncService.Refresh(context.Background())

	cfg := &config.Config{
		CORS:     config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Security: config.SecurityConfig{InternalAPIKey: internalKey},
	}

	router := NewRouter(Services{
		System:     testutil.NewTestSystemService(t, db),
		Sync:       syncService,
		Preference: prefs,
		Conversion: testutil.NewTestConversionService(t, syncService, time.Now()),
		Metrics:    syncMetrics,
	}, cfg, testutil.TestLogger())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, method, url, apiKey string, body io.Reader) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	if apiKey != "" {
		req.Header.Set(middleware.APIKeyHeader, apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	return resp, string(data)
}

func TestRouter_PublicRoutes(t *testing.T) {
	server := newTestServer(t, "internal-secret")

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
		contains string
	}{
		{name: "health", method: http.MethodGet, path: "/api/system/health", wantCode: http.StatusOK, contains: "healthy"},
		{name: "version", method: http.MethodGet, path: "/api/system/version", wantCode: http.StatusOK, contains: "app_version"},
		{name: "rates", method: http.MethodGet, path: "/api/rates", wantCode: http.StatusOK, contains: `"status":"fresh"`},
		{name: "currency lower case code", method: http.MethodGet, path: "/api/rates/gbp", wantCode: http.StatusOK, contains: `"code":"GBP"`},
		{name: "currency invalid code", method: http.MethodGet, path: "/api/rates/EURO", wantCode: http.StatusBadRequest},
		{name: "currency unknown code", method: http.MethodGet, path: "/api/rates/XYZ", wantCode: http.StatusNotFound},
		{name: "currencies search", method: http.MethodGet, path: "/api/rates/currencies?q=gb", wantCode: http.StatusOK, contains: "GBP"},
		{name: "selection", method: http.MethodGet, path: "/api/selection", wantCode: http.StatusOK, contains: `"sourceCode":"USD"`},
		{name: "set source", method: http.MethodPut, path: "/api/selection/source", body: `{"code":"gbp"}`, wantCode: http.StatusOK, contains: `"sourceCode":"GBP"`},
		{name: "set target unknown field", method: http.MethodPut, path: "/api/selection/target", body: `{"currency":"GBP"}`, wantCode: http.StatusBadRequest},
		{name: "convert", method: http.MethodGet, path: "/api/convert?amount=10", wantCode: http.StatusOK, contains: `"result"`},
		{name: "convert bad amount", method: http.MethodGet, path: "/api/convert?amount=abc", wantCode: http.StatusBadRequest},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantCode: http.StatusOK, contains: "rates_currencies_cached 3"},
		{name: "unknown route", method: http.MethodGet, path: "/api/unknown", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}

			resp, got := do(t, tt.method, server.URL+tt.path, "", body)

			if resp.StatusCode != tt.wantCode {
				t.Fatalf("Expected %d, got %d: %s", tt.wantCode, resp.StatusCode, got)
			}
			if tt.contains != "" && !strings.Contains(got, tt.contains) {
				t.Errorf("Expected body to contain %q, got %s", tt.contains, got)
			}
		})
	}
}

func TestRouter_SettingsRequireInternalKey(t *testing.T) {
	t.Run("refused when no internal key is configured", func(t *testing.T) {
		server := newTestServer(t, "")

		resp, got := do(t, http.MethodGet, server.URL+"/api/settings/apikey", "anything", nil)

		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("Expected 500, got %d", resp.StatusCode)
		}
		if !strings.Contains(got, "Authentication not loaded") {
			t.Errorf("Expected 'Authentication not loaded', got %s", got)
		}
	})

	server := newTestServer(t, "internal-secret")

	t.Run("missing key", func(t *testing.T) {
		resp, got := do(t, http.MethodGet, server.URL+"/api/settings/apikey", "", nil)

		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", resp.StatusCode)
		}
		if !strings.Contains(got, "Missing API key") {
			t.Errorf("Expected 'Missing API key', got %s", got)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		resp, _ := do(t, http.MethodGet, server.URL+"/api/settings/apikey", "nope", nil)

		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("stores a key with the right internal key", func(t *testing.T) {
		resp, got := do(t, http.MethodPut, server.URL+"/api/settings/apikey", "internal-secret",
			strings.NewReader(`{"apiKey":"cur_live_0123456789"}`))

		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d: %s", resp.StatusCode, got)
		}

		resp, got = do(t, http.MethodGet, server.URL+"/api/settings/apikey", "internal-secret", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		if !strings.Contains(got, `"source":"stored"`) {
			t.Errorf("Expected stored key, got %s", got)
		}

		resp, _ = do(t, http.MethodDelete, server.URL+"/api/settings/apikey", "internal-secret", nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("Expected 204, got %d", resp.StatusCode)
		}
	})
}
