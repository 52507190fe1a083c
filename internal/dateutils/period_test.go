package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Wednesday, 2025-06-18.
var wednesday = time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolvePeriodKeywords(t *testing.T) {
	tests := []struct {
		period string
		start  time.Time
		end    time.Time
	}{
		{"today", day(2025, 6, 18), day(2025, 6, 18)},
		{"yesterday", day(2025, 6, 17), day(2025, 6, 17)},
		{"this week", day(2025, 6, 16), day(2025, 6, 18)},
		{"last week", day(2025, 6, 9), day(2025, 6, 15)},
		{"this month", day(2025, 6, 1), day(2025, 6, 18)},
		{"last month", day(2025, 5, 1), day(2025, 5, 31)},
		{"this year", day(2025, 1, 1), day(2025, 6, 18)},
		{"last year", day(2024, 1, 1), day(2024, 12, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			r := ResolvePeriod(tt.period, wednesday)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
		})
	}
}

func TestResolvePeriodKeywordsAreCaseInsensitive(t *testing.T) {
	r := ResolvePeriod("  This Month ", wednesday)
	assert.Equal(t, day(2025, 6, 1), r.Start)
	assert.Equal(t, day(2025, 6, 18), r.End)
}

func TestResolvePeriodStartNeverAfterEnd(t *testing.T) {
	periods := []string{
		"today", "yesterday", "this week", "last week",
		"this month", "last month", "this year", "last year",
		"2025-01-01 to 2025-03-31", "gibberish",
	}
	// Sweep a year of reference dates so week/month boundaries are all hit.
	for now := day(2025, 1, 1); now.Year() == 2025; now = now.AddDate(0, 0, 17) {
		for _, period := range periods {
			r := ResolvePeriod(period, now)
			assert.False(t, r.Start.After(r.End), "period %q at %s", period, now)
		}
	}
}

func TestResolvePeriodExplicitRange(t *testing.T) {
	r := ResolvePeriod("2025-01-15 to 2025-02-20", wednesday)
	assert.Equal(t, day(2025, 1, 15), r.Start)
	assert.Equal(t, day(2025, 2, 20), r.End)
}

func TestResolvePeriodExplicitRangeReversedDatesAreSwapped(t *testing.T) {
	r := ResolvePeriod("2025-02-20 to 2025-01-15", wednesday)
	assert.Equal(t, day(2025, 1, 15), r.Start)
	assert.Equal(t, day(2025, 2, 20), r.End)
}

func TestResolvePeriodUnparseableFallsBackToMonthToDate(t *testing.T) {
	for _, period := range []string{"", "soon", "next month", "2025-01-15 until 2025-02-20"} {
		r := ResolvePeriod(period, wednesday)
		assert.Equal(t, day(2025, 6, 1), r.Start, "period %q", period)
		assert.Equal(t, day(2025, 6, 18), r.End, "period %q", period)
	}
}

func TestResolvePeriodSundayWeekHandling(t *testing.T) {
	sunday := time.Date(2025, 6, 22, 9, 0, 0, 0, time.UTC)
	r := ResolvePeriod("this week", sunday)
	assert.Equal(t, day(2025, 6, 16), r.Start, "Sunday belongs to the week begun the previous Monday")
	assert.Equal(t, day(2025, 6, 22), r.End)
}

func TestPeriodRangeContains(t *testing.T) {
	r := PeriodRange{Start: day(2025, 6, 1), End: day(2025, 6, 30)}

	assert.True(t, r.Contains(day(2025, 6, 1)))
	assert.True(t, r.Contains(day(2025, 6, 30)))
	assert.True(t, r.Contains(time.Date(2025, 6, 30, 23, 59, 0, 0, time.UTC)))
	assert.False(t, r.Contains(day(2025, 5, 31)))
	assert.False(t, r.Contains(day(2025, 7, 1)))
}
