// Package freshness decides whether persisted exchange rates are still current.
//
// Rates are fresh only when both hold:
//   - less than 24 hours elapsed between the last update and now
//   - both instants fall on the same calendar date in the policy's location
//
// A zero last-updated time means rates were never synced and is never fresh.
package freshness

import "time"

// MaxAge is the rolling window a rate snapshot may be used for.
const MaxAge = 24 * time.Hour

// Policy evaluates freshness in a fixed location.
type Policy struct {
	Location *time.Location
}

// Default evaluates calendar dates in the process's local time zone.
var Default = Policy{Location: time.Local}

// IsFresh reports whether rates last updated at lastUpdated may still be used at now.
func (p Policy) IsFresh(lastUpdated, now time.Time) bool {
	if lastUpdated.IsZero() {
		return false
	}
	if now.Sub(lastUpdated) >= MaxAge {
		return false
	}
	return sameDate(lastUpdated.In(p.location()), now.In(p.location()))
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsFresh applies the Default policy.
func IsFresh(lastUpdated, now time.Time) bool {
	return Default.IsFresh(lastUpdated, now)
}
