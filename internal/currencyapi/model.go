package currencyapi

// Response represents the raw JSON body returned by the latest-rates endpoint.
// Fields the application does not use are ignored by the decoder.
//
// Example:
//
//	{
//	  "meta": {"last_updated_at": "2024-03-01T23:59:59Z"},
//	  "data": {"EUR": {"code": "EUR", "value": 0.92}}
//	}
type Response struct {
	Meta *Meta                `json:"meta"`
	Data map[string]RateEntry `json:"data"`
}

// Meta carries the provider's freshness information.
type Meta struct {
	LastUpdatedAt string `json:"last_updated_at"`
}

// RateEntry is one currency's rate relative to the provider's base currency.
type RateEntry struct {
	Code  string  `json:"code"`
	Value float64 `json:"value"`
}
