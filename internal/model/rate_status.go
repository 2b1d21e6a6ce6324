package model

import "encoding/json"

// RateStatus describes whether the locally known rates can be used as-is.
type RateStatus int

const (
	// RateStatusIdle marks a sync in progress or not yet run.
	RateStatusIdle RateStatus = iota
	RateStatusFresh
	RateStatusStale
)

func (s RateStatus) String() string {
	switch s {
	case RateStatusFresh:
		return "fresh"
	case RateStatusStale:
		return "stale"
	default:
		return "idle"
	}
}

// Title is the human-readable label shown next to the rates.
func (s RateStatus) Title() string {
	switch s {
	case RateStatusFresh:
		return "Fresh rates"
	case RateStatusStale:
		return "Rates are not fresh"
	default:
		return "Rates"
	}
}

func (s RateStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
