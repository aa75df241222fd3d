package util

import (
	"time"
)

// DayTimer tracks progress through the current simulated day.
// It drives the cyclic progress indicator and is restarted on every day advance.
type DayTimer struct {
	// period is the real time a simulated day lasts.
	period time.Duration

	// startedAt is when the current day began.
	startedAt time.Time

	// running indicates the timer is counting.
	running bool

	// now returns the current time. Replaced in tests.
	now func() time.Time
}

// NewDayTimer creates a stopped timer with the given period.
func NewDayTimer(period time.Duration) *DayTimer {
	return &DayTimer{
		period: period,
		now:    time.Now,
	}
}

// SetNowFunc replaces the time source.
func (dt *DayTimer) SetNowFunc(now func() time.Time) {
	dt.now = now
}

// Restart begins a new period from the current time.
func (dt *DayTimer) Restart() {
	dt.startedAt = dt.now()
	dt.running = true
}

// Stop halts the timer and clears its progress.
func (dt *DayTimer) Stop() {
	dt.running = false
	dt.startedAt = time.Time{}
}

// Running returns true if the timer is counting.
func (dt *DayTimer) Running() bool {
	return dt.running
}

// Period returns the length of a simulated day.
func (dt *DayTimer) Period() time.Duration {
	return dt.period
}

// Elapsed returns the time spent in the current period.
// A late restart never produces more than one period of elapsed time.
func (dt *DayTimer) Elapsed() time.Duration {
	if !dt.running || dt.period <= 0 {
		return 0
	}

	elapsed := dt.now().Sub(dt.startedAt)
	if elapsed < 0 {
		return 0
	}
	return elapsed % dt.period
}

// Progress returns the fraction of the current period that has elapsed, in [0, 1).
func (dt *DayTimer) Progress() float64 {
	if !dt.running || dt.period <= 0 {
		return 0
	}
	return float64(dt.Elapsed()) / float64(dt.period)
}

// Remaining returns the time until the period ends.
func (dt *DayTimer) Remaining() time.Duration {
	if !dt.running {
		return 0
	}
	return dt.period - dt.Elapsed()
}
