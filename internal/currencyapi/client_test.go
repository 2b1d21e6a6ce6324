package currencyapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/logging"
)

const sampleBody = `{
	"meta": {"last_updated_at": "2024-03-01T23:59:59Z", "ignored": true},
	"data": {
		"USD": {"code": "USD", "value": 1},
		"EUR": {"code": "EUR", "value": 0.92, "extra": "x"},
		"XYZ": {"code": "XYZ", "value": 3.5}
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, key KeySource, timeout time.Duration) *RateClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewRateClient(server.URL, key, timeout, logging.Discard())
}

func TestRateClient_LatestRates(t *testing.T) {
	t.Run("sends api key and decodes response", func(t *testing.T) {
		var gotKey string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("apikey")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleBody))
		}, StaticKey("secret"), time.Second)

		snapshot, err := client.LatestRates(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "secret", gotKey)
		assert.Equal(t, "2024-03-01T23:59:59Z", snapshot.LastUpdated)
		require.Len(t, snapshot.Currencies, 3)

		eur := snapshot.Currencies[0]
		assert.Equal(t, "EUR", eur.Code)
		assert.InDelta(t, 0.92, eur.Value, 1e-9)
		assert.Equal(t, "European Union", eur.Country)
		assert.Equal(t, "https://flagsapi.com/EU/flat/64.png", eur.FlagURL)
		assert.NotEmpty(t, eur.ID)

		xyz := snapshot.Currencies[2]
		assert.Equal(t, "XYZ", xyz.Code)
		assert.Equal(t, UnknownCountry, xyz.Country)
		assert.Empty(t, xyz.FlagURL)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}, StaticKey("secret"), time.Second)

		_, err := client.LatestRates(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrUnexpectedStatus)
	})

	t.Run("malformed body is a decode error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"meta": "nope"`))
		}, StaticKey("secret"), time.Second)

		_, err := client.LatestRates(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrDecode)
	})

	t.Run("slow provider times out as a network error", func(t *testing.T) {
		release := make(chan struct{})
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}, StaticKey("secret"), 50*time.Millisecond)
		defer close(release)

		_, err := client.LatestRates(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrNetwork)
		assert.True(t, IsNetworkError(err))
	})

	t.Run("missing key fails before any request", func(t *testing.T) {
		called := false
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		}, StaticKey(""), time.Second)

		_, err := client.LatestRates(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrAPIKeyMissing)
		assert.False(t, called)
	})

	t.Run("key source errors are returned", func(t *testing.T) {
		boom := errors.New("vault locked")
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, keyFunc(func(context.Context) (string, error) {
			return "", boom
		}), time.Second)

		_, err := client.LatestRates(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}

type keyFunc func(context.Context) (string, error)

func (f keyFunc) APIKey(ctx context.Context) (string, error) { return f(ctx) }

func TestDecode(t *testing.T) {
	t.Run("missing meta", func(t *testing.T) {
		_, err := Decode([]byte(`{"data": {}}`))
		assert.ErrorIs(t, err, apperrors.ErrDecode)
	})

	t.Run("missing data", func(t *testing.T) {
		_, err := Decode([]byte(`{"meta": {"last_updated_at": "2024-01-01T00:00:00Z"}}`))
		assert.ErrorIs(t, err, apperrors.ErrDecode)
	})

	t.Run("entry without code uses map key", func(t *testing.T) {
		snapshot, err := Decode([]byte(`{"meta": {"last_updated_at": "x"}, "data": {"GBP": {"value": 0.79}}}`))
		require.NoError(t, err)
		require.Len(t, snapshot.Currencies, 1)
		assert.Equal(t, "GBP", snapshot.Currencies[0].Code)
		assert.Equal(t, "United Kingdom", snapshot.Currencies[0].Country)
	})
}

func TestCountryFor(t *testing.T) {
	country, flag := CountryFor("BHD")
	assert.Equal(t, "Bahrain", country)
	assert.Equal(t, "https://flagsapi.com/BH/flat/64.png", flag)

	country, flag = CountryFor("BTC")
	assert.Equal(t, UnknownCountry, country)
	assert.Empty(t, flag)
}
