// Package currencyapi fetches the latest exchange rates from the remote provider
// and decodes them into currency records enriched with country and flag data.
package currencyapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/model"
)

// DefaultTimeout bounds a single fetch when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// Client defines the interface for fetching the latest exchange rates.
// This interface enables dependency injection and testing with mock implementations.
type Client interface {
	LatestRates(ctx context.Context) (model.RateSnapshot, error)
}

// KeySource supplies the API key sent with every request.
type KeySource interface {
	APIKey(ctx context.Context) (string, error)
}

// StaticKey is a KeySource that always returns the same key.
type StaticKey string

func (k StaticKey) APIKey(context.Context) (string, error) {
	if k == "" {
		return "", apperrors.ErrAPIKeyMissing
	}
	return string(k), nil
}

// RateClient provides methods for fetching rates from the currency API.
// It wraps an HTTP client with a bounded timeout.
type RateClient struct {
	httpClient *http.Client
	endpoint   string
	keys       KeySource
	timeout    time.Duration
	logger     *slog.Logger
}

// NewRateClient creates a new client for endpoint.
// A non-positive timeout falls back to DefaultTimeout.
func NewRateClient(endpoint string, keys KeySource, timeout time.Duration, logger *slog.Logger) *RateClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RateClient{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		keys:       keys,
		timeout:    timeout,
		logger:     logger,
	}
}

// LatestRates fetches and decodes the latest rates.
//
// Errors wrap one of:
//   - apperrors.ErrAPIKeyMissing: no key available
//   - apperrors.ErrNetwork: connection failure or timeout
//   - apperrors.ErrUnexpectedStatus: non-200 response
//   - apperrors.ErrDecode: malformed body
func (c *RateClient) LatestRates(ctx context.Context) (model.RateSnapshot, error) {
	key, err := c.keys.APIKey(ctx)
	if err != nil {
		return model.RateSnapshot{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return model.RateSnapshot{}, fmt.Errorf("%w: %v", apperrors.ErrUnspecified, err)
	}
	req.Header.Set("apikey", key)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.RateSnapshot{}, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.RateSnapshot{}, fmt.Errorf("%w: %s", apperrors.ErrUnexpectedStatus, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.RateSnapshot{}, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err)
	}

	snapshot, err := Decode(data)
	if err != nil {
		return model.RateSnapshot{}, err
	}

	c.logger.Debug("fetched latest rates",
		"currencies", len(snapshot.Currencies),
		"last_updated", snapshot.LastUpdated,
		"duration", time.Since(start),
	)
	return snapshot, nil
}

// Decode parses a raw response body into a snapshot.
// Unknown fields are ignored; a missing meta or data object is a decode error.
func Decode(data []byte) (model.RateSnapshot, error) {
	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return model.RateSnapshot{}, fmt.Errorf("%w: %v", apperrors.ErrDecode, err)
	}
	if response.Meta == nil {
		return model.RateSnapshot{}, fmt.Errorf("%w: missing meta", apperrors.ErrDecode)
	}
	if response.Data == nil {
		return model.RateSnapshot{}, fmt.Errorf("%w: missing data", apperrors.ErrDecode)
	}

	return model.RateSnapshot{
		Currencies:  ParseCurrencies(response),
		LastUpdated: response.Meta.LastUpdatedAt,
	}, nil
}

// ParseCurrencies converts the response entries into currency records, sorted by code.
// Entries without a code take the map key as their code.
func ParseCurrencies(response Response) []model.Currency {
	currencies := make([]model.Currency, 0, len(response.Data))
	for key, entry := range response.Data {
		code := entry.Code
		if code == "" {
			code = key
		}
		country, flagURL := CountryFor(code)
		currencies = append(currencies, model.Currency{
			ID:      uuid.New().String(),
			Code:    code,
			Value:   entry.Value,
			Country: country,
			FlagURL: flagURL,
		})
	}
	sort.Slice(currencies, func(i, j int) bool {
		return currencies[i].Code < currencies[j].Code
	})
	return currencies
}

// IsNetworkError reports whether err came from the transport rather than the payload.
func IsNetworkError(err error) bool {
	return errors.Is(err, apperrors.ErrNetwork)
}
