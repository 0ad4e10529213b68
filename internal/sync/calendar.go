package sync

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/build-with-chris/pepe-api/pkg/dates"
)

// markerHorizonDays is how far ahead the sentinel slot sits. Its
// presence keeps the booking horizon at least a year open without
// scanning the whole list.
const markerHorizonDays = 365

// markerState tracks the auto-ensure attempt for one marker date.
type markerState int

const (
	markerUnchecked markerState = iota
	markerEnsuring
	markerEnsured
	markerFailed
)

// Calendar derives the day-matchers the availability view renders from
// the synced slot list, and maintains the far-future marker slot. The
// notion of "today" rolls over at local midnight via an internal cron
// so matchers stay correct in long-lived sessions.
type Calendar struct {
	availability *Availability
	logger       *zap.Logger
	now          func() time.Time

	mu          sync.Mutex
	markerDate string
	marker     markerState
	cron       *cron.Cron
	onRollover func()
}

func NewCalendar(availability *Availability, logger *zap.Logger) *Calendar {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calendar{
		availability: availability,
		logger:       logger,
		now:          time.Now,
	}
}

// AvailableDates returns the cached slot dates falling on today or
// later. Past availability stays in the backend but is never shown.
func (c *Calendar) AvailableDates() []time.Time {
	today := dates.ToLocalDate(c.now())

	var out []time.Time
	for _, slot := range c.availability.Slots() {
		day, err := dates.ParseISODate(slot.Date)
		if err != nil {
			c.logger.Warn("skipping malformed slot date", zap.String("date", slot.Date))
			continue
		}
		if !day.Before(today) {
			out = append(out, day)
		}
	}
	return out
}

// BlockedMatcher reports whether a day should render as "not yet
// offered": today or later and absent from the available set. Past
// days are never blocked.
func (c *Calendar) BlockedMatcher(day time.Time) bool {
	day = dates.ToLocalDate(day)
	if day.Before(dates.ToLocalDate(c.now())) {
		return false
	}
	return !c.availability.HasDate(dates.FormatISODate(day))
}

// EnsureMarker checks for the slot exactly markerHorizonDays from
// today and silently adds it when missing. Each marker date is
// attempted at most once; failures are logged, never surfaced, and
// not retried until the date itself changes.
func (c *Calendar) EnsureMarker(ctx context.Context) {
	target := dates.FormatISODate(dates.AddDays(c.now(), markerHorizonDays))

	c.mu.Lock()
	if c.markerDate == target && c.marker != markerUnchecked {
		c.mu.Unlock()
		return
	}
	c.markerDate = target
	c.marker = markerEnsuring
	c.mu.Unlock()

	state := markerEnsured
	if !c.availability.HasDate(target) {
		if err := c.availability.Add(ctx, target); err != nil {
			c.logger.Warn("marker slot add failed",
				zap.String("date", target), zap.Error(err))
			state = markerFailed
		}
	}

	c.mu.Lock()
	if c.markerDate == target {
		c.marker = state
	}
	c.mu.Unlock()
}

// MarkerEnsured reports whether the current marker date has been
// ensured successfully.
func (c *Calendar) MarkerEnsured() bool {
	target := dates.FormatISODate(dates.AddDays(c.now(), markerHorizonDays))
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.markerDate == target && c.marker == markerEnsured
}

// Start schedules the midnight rollover: just after local midnight the
// marker for the new day is ensured and the registered callback fires
// so views recompute their matchers. Stop must be called on shutdown.
func (c *Calendar) Start(onRollover func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cron != nil {
		return nil
	}

	c.onRollover = onRollover
	runner := cron.New(cron.WithLocation(time.Local))
	_, err := runner.AddFunc("1 0 * * *", c.rollover)
	if err != nil {
		return err
	}
	runner.Start()
	c.cron = runner
	return nil
}

// Stop halts the rollover scheduler.
func (c *Calendar) Stop() {
	c.mu.Lock()
	runner := c.cron
	c.cron = nil
	c.mu.Unlock()
	if runner != nil {
		runner.Stop()
	}
}

func (c *Calendar) rollover() {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	c.EnsureMarker(ctx)

	c.mu.Lock()
	callback := c.onRollover
	c.mu.Unlock()
	if callback != nil {
		callback()
	}
}
