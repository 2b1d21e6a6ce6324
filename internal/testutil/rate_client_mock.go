package testutil

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/model"
)

// MockRateClient is a mock implementation of currencyapi.Client for testing.
// It returns predefined test data instead of making actual API calls.
type MockRateClient struct {
	mu sync.Mutex
	// MockResponse is the snapshot to return from LatestRates
	MockResponse model.RateSnapshot
	// MockError is the error to return from LatestRates
	MockError error
	// Block, when set, makes LatestRates wait for it to close or for ctx to end.
	Block chan struct{}
	// Hook runs inside LatestRates before it returns.
	Hook func()

	queryCount int
}

// NewMockRateClient creates a new mock client returning SampleCurrencies with a
// timestamp of one minute ago.
func NewMockRateClient() *MockRateClient {
	return &MockRateClient{
		MockResponse: model.RateSnapshot{
			Currencies:  SampleCurrencies(),
			LastUpdated: time.Now().UTC().Add(-time.Minute).Format(time.RFC3339),
		},
	}
}

// LatestRates returns the configured MockResponse and MockError.
func (m *MockRateClient) LatestRates(ctx context.Context) (model.RateSnapshot, error) {
	m.mu.Lock()
	m.queryCount++
	block, hook := m.Block, m.Hook
	resp, err := m.MockResponse, m.MockError
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return model.RateSnapshot{}, ctx.Err()
		}
	}
	if hook != nil {
		hook()
	}
	if err != nil {
		return model.RateSnapshot{}, err
	}
	resp.Currencies = slices.Clone(resp.Currencies)
	return resp, nil
}

// QueryCount tracks how many times LatestRates was called.
func (m *MockRateClient) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queryCount
}

// WithError configures the mock to return the specified error.
func (m *MockRateClient) WithError(err error) *MockRateClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MockError = err
	return m
}

// WithResponse configures the mock to return the specified snapshot.
func (m *MockRateClient) WithResponse(resp model.RateSnapshot) *MockRateClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MockResponse = resp
	return m
}

// WithCurrencies replaces the currencies in the returned snapshot.
func (m *MockRateClient) WithCurrencies(currencies []model.Currency) *MockRateClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MockResponse.Currencies = currencies
	return m
}

// WithLastUpdated sets the provider timestamp in the returned snapshot.
func (m *MockRateClient) WithLastUpdated(iso string) *MockRateClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MockResponse.LastUpdated = iso
	return m
}

// Clock is a settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a Clock fixed at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the clock's current time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to now.
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
