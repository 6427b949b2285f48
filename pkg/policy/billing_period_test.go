package policy

import (
	"testing"
	"time"

	"teletherapy-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCurrentPeriodEvery4Weeks(t *testing.T) {
	start := date(2025, time.January, 6)

	tests := []struct {
		name      string
		now       time.Time
		wantStart time.Time
	}{
		{"day zero", start, start},
		{"inside first period", start.AddDate(0, 0, 27), start},
		{"first day of second period", start.AddDate(0, 0, 28), start.AddDate(0, 0, 28)},
		{"deep into a later period", start.AddDate(0, 0, 100), start.AddDate(0, 0, 84)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CurrentPeriod(start, entity.BillingCycleEvery4Weeks, nil, tt.now)
			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, tt.wantStart.AddDate(0, 0, 28), p.End)
			assert.Equal(t, 28*24*time.Hour, p.End.Sub(p.Start))
			assert.True(t, p.Contains(tt.now))
		})
	}
}

// A DST shift shortens one day to 23 hours; boundaries must still land on
// calendar days, not 24-hour multiples.
func TestCurrentPeriodEvery4WeeksAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// DST starts 2025-03-09, so the first period spans 28 calendar days but
	// one hour fewer on the clock.
	start := time.Date(2025, time.March, 2, 0, 0, 0, 0, loc)

	lastNight := time.Date(2025, time.March, 29, 23, 30, 0, 0, loc)
	p := CurrentPeriod(start, entity.BillingCycleEvery4Weeks, nil, lastNight)
	assert.Equal(t, start, p.Start)
	assert.True(t, p.Contains(lastNight))

	nextMorning := time.Date(2025, time.March, 30, 0, 30, 0, 0, loc)
	p = CurrentPeriod(start, entity.BillingCycleEvery4Weeks, nil, nextMorning)
	assert.Equal(t, time.Date(2025, time.March, 30, 0, 0, 0, 0, loc), p.Start)
	assert.True(t, p.Contains(nextMorning))
}

// Consecutive 4-week periods must tile without gap or overlap.
func TestFourWeekPeriodsTile(t *testing.T) {
	start := date(2025, time.March, 1)

	prev := CurrentPeriod(start, entity.BillingCycleEvery4Weeks, nil, start)
	for i := 1; i < 12; i++ {
		now := start.AddDate(0, 0, i*28)
		p := CurrentPeriod(start, entity.BillingCycleEvery4Weeks, nil, now)
		require.Equal(t, prev.End, p.Start, "period %d must start where the previous ended", i)
		prev = p
	}
}

func TestCurrentPeriodMonthly(t *testing.T) {
	now := time.Date(2025, time.February, 14, 10, 30, 0, 0, time.UTC)
	p := CurrentPeriod(date(2024, time.June, 1), entity.BillingCycleMonthly, nil, now)

	assert.Equal(t, date(2025, time.February, 1), p.Start)
	assert.Equal(t, time.Date(2025, time.February, 28, 23, 59, 59, 0, time.UTC), p.End)
}

func TestCurrentPeriodFallback(t *testing.T) {
	now := time.Date(2025, time.July, 10, 9, 0, 0, 0, time.UTC)
	start := date(2025, time.July, 3)
	next := date(2025, time.August, 3)

	t.Run("pay as you go with next billing date", func(t *testing.T) {
		p := CurrentPeriod(start, entity.BillingCyclePayAsYouGo, &next, now)
		assert.Equal(t, start, p.Start)
		assert.Equal(t, next, p.End)
	})

	t.Run("one time without next billing date ends at month end", func(t *testing.T) {
		p := CurrentPeriod(start, entity.BillingCycleOneTime, nil, now)
		assert.Equal(t, start, p.Start)
		assert.Equal(t, time.Date(2025, time.July, 31, 23, 59, 59, 0, time.UTC), p.End)
	})

	t.Run("missing start date uses first of current month", func(t *testing.T) {
		p := CurrentPeriod(time.Time{}, entity.BillingCyclePayAsYouGo, nil, now)
		assert.Equal(t, date(2025, time.July, 1), p.Start)
	})

	t.Run("unknown cycle degrades to fallback, not panic", func(t *testing.T) {
		p := CurrentPeriod(start, entity.BillingCycle("weekly"), nil, now)
		assert.Equal(t, start, p.Start)
	})
}

func TestNextBillingDate(t *testing.T) {
	start := date(2025, time.January, 6)

	next := NextBillingDate(start, entity.BillingCycleEvery4Weeks)
	require.NotNil(t, next)
	assert.Equal(t, start.AddDate(0, 0, 28), *next)

	next = NextBillingDate(start, entity.BillingCycleMonthly)
	require.NotNil(t, next)
	assert.Equal(t, date(2025, time.February, 6), *next)

	assert.Nil(t, NextBillingDate(start, entity.BillingCyclePayAsYouGo))
	assert.Nil(t, NextBillingDate(start, entity.BillingCycleOneTime))
}
