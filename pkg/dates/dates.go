// Package dates provides calendar-day helpers shared by the availability
// server and the sync client. All functions operate on local calendar days;
// a "date" here never carries a time-of-day or timezone component.
package dates

import (
	"fmt"
	"time"
)

// ISOLayout is the wire format for calendar dates.
const ISOLayout = "2006-01-02"

// ToLocalDate normalises t to midnight of its local calendar day.
func ToLocalDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ParseISODate parses a YYYY-MM-DD string into a local-midnight time.
// Malformed input is rejected instead of producing a zero value silently.
func ParseISODate(raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(ISOLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse iso date %q: %w", raw, err)
	}
	return parsed, nil
}

// FormatISODate renders the local calendar day of t as YYYY-MM-DD.
func FormatISODate(t time.Time) string {
	return t.Format(ISOLayout)
}

// IsToday reports whether t falls on the current local calendar day.
func IsToday(t time.Time) bool {
	return IsSameDay(t, time.Now())
}

// IsSameDay reports whether a and b fall on the same local calendar day.
func IsSameDay(a, b time.Time) bool {
	return FormatISODate(a) == FormatISODate(b)
}

// AddDays returns the calendar day n days after t, at local midnight.
// AddDate handles month or DST boundaries so arithmetic on the day number
// alone is never exposed.
func AddDays(t time.Time, n int) time.Time {
	return ToLocalDate(t).AddDate(0, 0, n)
}

// StartOfWeek returns midnight of the Sunday beginning t's week.
func StartOfWeek(t time.Time) time.Time {
	day := ToLocalDate(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// EndOfWeek returns midnight of the Saturday ending t's week.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// DateRange returns every calendar day from start through end inclusive,
// in chronological order. An end before start yields an empty slice.
func DateRange(start, end time.Time) []time.Time {
	first := ToLocalDate(start)
	last := ToLocalDate(end)

	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
