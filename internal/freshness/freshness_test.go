package freshness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_IsFresh(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}
	utc := Policy{Location: time.UTC}

	t.Run("never fresh without a prior timestamp", func(t *testing.T) {
		for _, now := range []time.Time{
			time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			{},
		} {
			assert.False(t, utc.IsFresh(time.Time{}, now), "now=%s", now)
		}
	})

	t.Run("stale after 24 hours regardless of date", func(t *testing.T) {
		last := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		assert.False(t, utc.IsFresh(last, last.Add(24*time.Hour)))
		assert.False(t, utc.IsFresh(last, last.Add(72*time.Hour)))
	})

	t.Run("stale when under 24 hours but the calendar date changed", func(t *testing.T) {
		last := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
		now := time.Date(2024, 3, 2, 0, 30, 0, 0, time.UTC)
		assert.False(t, utc.IsFresh(last, now))
	})

	t.Run("stale across a year boundary", func(t *testing.T) {
		last := time.Date(2023, 12, 31, 22, 0, 0, 0, time.UTC)
		now := time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)
		assert.False(t, utc.IsFresh(last, now))
	})

	t.Run("fresh within the same calendar day", func(t *testing.T) {
		last := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
		now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		assert.True(t, utc.IsFresh(last, now))
	})

	t.Run("calendar date is taken in the policy location", func(t *testing.T) {
		// 22:30 and 23:30 UTC on March 1 are 23:30 March 1 and 00:30 March 2 in Berlin.
		last := time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC)
		now := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)

		assert.True(t, utc.IsFresh(last, now))
		assert.False(t, Policy{Location: berlin}.IsFresh(last, now))
	})

	t.Run("timestamp in the future on the same day is fresh", func(t *testing.T) {
		last := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		now := time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)
		assert.True(t, utc.IsFresh(last, now))
	})
}

func TestPolicy_NilLocationFallsBackToLocal(t *testing.T) {
	last := time.Now()
	assert.Equal(t, Default.IsFresh(last, last.Add(time.Minute)), Policy{}.IsFresh(last, last.Add(time.Minute)))
}
