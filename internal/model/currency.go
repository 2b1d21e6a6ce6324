package model

// DefaultSourceCode and DefaultTargetCode are the selections used before the user picks any.
const (
	DefaultSourceCode = "USD"
	DefaultTargetCode = "EUR"
)

// Currency is a single cached exchange rate.
// Code is the natural key within a synced record set; ID is an opaque identifier
// assigned when the record is decoded and carries no ordering or meaning.
type Currency struct {
	ID      string  `json:"id"`
	Code    string  `json:"code"`
	Value   float64 `json:"value"`
	Country string  `json:"country,omitempty"`
	FlagURL string  `json:"flagUrl,omitempty"`
}

// FindCurrency returns the record with the given code.
func FindCurrency(currencies []Currency, code string) (Currency, bool) {
	for _, c := range currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// RateSnapshot is the result of one successful remote fetch.
// LastUpdated is the provider's reported freshness timestamp, kept verbatim.
type RateSnapshot struct {
	Currencies  []Currency
	LastUpdated string
}
