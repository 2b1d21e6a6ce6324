package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/api/middleware"
)

func TestAPIKeyMiddleware(t *testing.T) {
	testAPIKey := "test-api-key-12345"

	run := func(t *testing.T, expected, provided string) (*httptest.ResponseRecorder, bool) {
		t.Helper()

		handlerCalled := false
		testHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			handlerCalled = true
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPut, "/api/settings/apikey", nil)
		if provided != "" {
			req.Header.Set("X-API-Key", provided)
		}
		w := httptest.NewRecorder()
		middleware.APIKey(expected)(testHandler).ServeHTTP(w, req)
		return w, handlerCalled
	}

	details := func(t *testing.T, w *httptest.ResponseRecorder) string {
		t.Helper()
		var response map[string]string
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)
		return response["details"]
	}

	t.Run("rejects request without API key", func(t *testing.T) {
		w, called := run(t, testAPIKey, "")

		if called {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
		if got := details(t, w); got != "Missing API key" {
			t.Errorf("Expected 'Missing API key' error, got '%s'", got)
		}
	})

	t.Run("rejects request with invalid API key", func(t *testing.T) {
		w, called := run(t, testAPIKey, "invalid")

		if called {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
		if got := details(t, w); got != "Invalid API key" {
			t.Errorf("Expected 'Invalid API key' error, got '%s'", got)
		}
	})

	t.Run("allows request with valid API key", func(t *testing.T) {
		w, called := run(t, testAPIKey, testAPIKey)

		if !called {
			t.Error("Expected handler to complete.")
		}
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("fail on not loaded internal api key", func(t *testing.T) {
		w, called := run(t, "", testAPIKey)

		if called {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}
		if got := details(t, w); got != "Authentication not loaded" {
			t.Errorf("Expected 'Authentication not loaded' error, got '%s'", got)
		}
	})
}
