package model

import "slices"

// ViewState is everything the presentation layer renders.
type ViewState struct {
	Status     RateStatus             `json:"status"`
	Title      string                 `json:"title"`
	Currencies []Currency             `json:"currencies"`
	Source     RequestState[Currency] `json:"source"`
	Target     RequestState[Currency] `json:"target"`
}

// NewViewState returns the state published before the first sync.
func NewViewState() ViewState {
	return ViewState{
		Status:     RateStatusIdle,
		Title:      RateStatusIdle.Title(),
		Currencies: []Currency{},
		Source:     Idle[Currency](),
		Target:     Idle[Currency](),
	}
}

// WithStatus returns a copy with the status (and its title) replaced.
func (v ViewState) WithStatus(status RateStatus) ViewState {
	v.Status = status
	v.Title = status.Title()
	return v
}

// Clone returns a copy that shares no slice memory with v.
func (v ViewState) Clone() ViewState {
	v.Currencies = slices.Clone(v.Currencies)
	if v.Currencies == nil {
		v.Currencies = []Currency{}
	}
	return v
}

// Selection is the pair of persisted currency codes.
type Selection struct {
	SourceCode string `json:"sourceCode"`
	TargetCode string `json:"targetCode"`
}

// CurrencyType identifies which side of the conversion a selection is for.
type CurrencyType string

const (
	CurrencySource CurrencyType = "source"
	CurrencyTarget CurrencyType = "target"
)

// Conversion is the result of converting an amount between the selected currencies.
type Conversion struct {
	Amount     float64 `json:"amount"`
	SourceCode string  `json:"sourceCode"`
	TargetCode string  `json:"targetCode"`
	Rate       float64 `json:"rate"`
	Result     float64 `json:"result"`
	Date       string  `json:"date"`
}
