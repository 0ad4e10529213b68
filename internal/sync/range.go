package sync

import (
	"time"

	"github.com/build-with-chris/pepe-api/pkg/dates"
)

// RangeSelection tracks the start/end pair for bulk availability edits.
// It is purely local selection state; the bulk actions consuming it
// live elsewhere. start <= end holds whenever both are set, and clicks
// before the configured floor are ignored outright.
type RangeSelection struct {
	disabledBefore time.Time
	start          *time.Time
	end            *time.Time
}

// NewRangeSelection creates a selection that ignores clicks before
// disabledBefore (typically today).
func NewRangeSelection(disabledBefore time.Time) *RangeSelection {
	return &RangeSelection{disabledBefore: dates.ToLocalDate(disabledBefore)}
}

// Click feeds one day selection through the picker rules: the first
// valid click opens a range, a second click on or after the start
// closes it, and any click before the start restarts the range there.
// Clicking with a completed range also restarts. Returns true when the
// click changed the selection.
func (r *RangeSelection) Click(day time.Time) bool {
	day = dates.ToLocalDate(day)
	if day.Before(r.disabledBefore) {
		return false
	}

	if r.start == nil || r.end != nil || day.Before(*r.start) {
		r.start = &day
		r.end = nil
		return true
	}
	r.end = &day
	return true
}

// Range returns the selected bounds; ok is false until both are set.
func (r *RangeSelection) Range() (start, end time.Time, ok bool) {
	if r.start == nil || r.end == nil {
		return time.Time{}, time.Time{}, false
	}
	return *r.start, *r.end, true
}

// Start returns the open start day, if any.
func (r *RangeSelection) Start() (time.Time, bool) {
	if r.start == nil {
		return time.Time{}, false
	}
	return *r.start, true
}

// Days expands a completed range into its calendar days.
func (r *RangeSelection) Days() []time.Time {
	start, end, ok := r.Range()
	if !ok {
		return nil
	}
	return dates.DateRange(start, end)
}

// Clear resets the selection.
func (r *RangeSelection) Clear() {
	r.start = nil
	r.end = nil
}
