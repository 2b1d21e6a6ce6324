package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/currencyapi"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/model"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/repository"
)

// CurrencyBuilder provides a fluent interface for creating test currencies.
//
// Example usage:
//
//	// In memory only
//	usd := testutil.NewCurrency("USD").WithValue(1).Currency()
//
//	// Persisted in the rate cache
//	eur := testutil.NewCurrency("EUR").WithValue(0.92).Build(t, db)
type CurrencyBuilder struct {
	ID      string
	Code    string
	Value   float64
	Country string
	FlagURL string
}

// NewCurrency creates a CurrencyBuilder for code with the country and flag the
// provider client would attach.
func NewCurrency(code string) *CurrencyBuilder {
	country, flag := currencyapi.CountryFor(code)
	return &CurrencyBuilder{
		ID:      uuid.New().String(),
		Code:    code,
		Value:   1,
		Country: country,
		FlagURL: flag,
	}
}

// WithID sets a custom ID.
func (b *CurrencyBuilder) WithID(id string) *CurrencyBuilder {
	b.ID = id
	return b
}

// WithValue sets the rate relative to the provider base.
func (b *CurrencyBuilder) WithValue(value float64) *CurrencyBuilder {
	b.Value = value
	return b
}

// WithCountry sets a custom country name.
func (b *CurrencyBuilder) WithCountry(country string) *CurrencyBuilder {
	b.Country = country
	return b
}

// Currency returns the record without touching a database.
func (b *CurrencyBuilder) Currency() model.Currency {
	return model.Currency{
		ID:      b.ID,
		Code:    b.Code,
		Value:   b.Value,
		Country: b.Country,
		FlagURL: b.FlagURL,
	}
}

// Build inserts the currency into the rate cache and returns it.
func (b *CurrencyBuilder) Build(t *testing.T, db *sql.DB) model.Currency {
	t.Helper()

	c := b.Currency()
	if err := repository.NewCurrencyRepository(db).Insert(context.Background(), c); err != nil {
		t.Fatalf("Failed to create test currency: %v", err)
	}
	return c
}

// Convenience functions

// SampleCurrencies returns USD, EUR and GBP with fixed rates against a USD base.
//
// Example usage:
//
//	mock := testutil.NewMockRateClient().WithCurrencies(testutil.SampleCurrencies())
func SampleCurrencies() []model.Currency {
	return []model.Currency{
		NewCurrency("EUR").WithValue(0.92).Currency(),
		NewCurrency("GBP").WithValue(0.79).Currency(),
		NewCurrency("USD").WithValue(1).Currency(),
	}
}

// SeedCurrencies inserts currencies into the rate cache.
//
// Example usage:
//
//	testutil.SeedCurrencies(t, db, testutil.SampleCurrencies())
func SeedCurrencies(t *testing.T, db *sql.DB, currencies []model.Currency) {
	t.Helper()

	repo := repository.NewCurrencyRepository(db)
	for _, c := range currencies {
		if err := repo.Insert(context.Background(), c); err != nil {
			t.Fatalf("Failed to seed currency %s: %v", c.Code, err)
		}
	}
}

// SeedPreference stores a raw preference value.
func SeedPreference(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()

	if err := repository.NewPreferenceRepository(db).Set(context.Background(), key, value); err != nil {
		t.Fatalf("Failed to seed preference %s: %v", key, err)
	}
}
