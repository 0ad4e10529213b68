package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormatRoundTrip(t *testing.T) {
	samples := []string{
		"2024-01-01",
		"2024-02-29",
		"2024-12-31",
		"2025-06-01",
		"1999-11-09",
	}
	for _, raw := range samples {
		parsed, err := ParseISODate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, FormatISODate(parsed))
	}
}

func TestParseISODateRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "2024-13-01", "2024-1-1", "not-a-date", "2024-02-30"} {
		_, err := ParseISODate(raw)
		assert.Error(t, err, raw)
	}
}

func TestToLocalDateDropsTimeOfDay(t *testing.T) {
	moment := time.Date(2025, 6, 1, 23, 45, 12, 999, time.Local)
	day := ToLocalDate(moment)
	assert.Equal(t, "2025-06-01", FormatISODate(day))
	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, 0, day.Minute())
}

func TestAddDaysCrossesMonthBoundary(t *testing.T) {
	start, err := ParseISODate("2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", FormatISODate(AddDays(start, 1)))
	assert.Equal(t, "2024-03-01", FormatISODate(AddDays(start, 30)))
}

func TestAddDays365Marker(t *testing.T) {
	start, err := ParseISODate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", FormatISODate(AddDays(start, 365)))
}

func TestStartAndEndOfWeek(t *testing.T) {
	// 2025-06-04 is a Wednesday.
	wednesday, err := ParseISODate("2025-06-04")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", FormatISODate(StartOfWeek(wednesday)))
	assert.Equal(t, "2025-06-07", FormatISODate(EndOfWeek(wednesday)))
}

func TestDateRangeInclusive(t *testing.T) {
	start, _ := ParseISODate("2025-02-27")
	end, _ := ParseISODate("2025-03-02")

	days := DateRange(start, end)
	require.Len(t, days, 4)
	assert.Equal(t, "2025-02-27", FormatISODate(days[0]))
	assert.Equal(t, "2025-03-02", FormatISODate(days[3]))
}

func TestDateRangeSingleDay(t *testing.T) {
	day, _ := ParseISODate("2025-05-01")
	days := DateRange(day, day)
	require.Len(t, days, 1)
}

func TestDateRangeEmptyWhenReversed(t *testing.T) {
	start, _ := ParseISODate("2025-05-02")
	end, _ := ParseISODate("2025-05-01")
	assert.Empty(t, DateRange(start, end))
}

func TestIsSameDayIgnoresClock(t *testing.T) {
	a := time.Date(2025, 6, 1, 0, 0, 1, 0, time.Local)
	b := time.Date(2025, 6, 1, 23, 59, 59, 0, time.Local)
	assert.True(t, IsSameDay(a, b))
	assert.False(t, IsSameDay(a, b.AddDate(0, 0, 1)))
}
