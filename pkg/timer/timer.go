// Package timer provides restartable software intervals evaluated
// against an externally supplied clock, so control iterations can
// share one observation of time.
package timer

import "time"

// Interval is a one-shot software timer. It never fires on its own;
// expiry is observed by polling Expired with the current time. The
// zero value reports expired.
type Interval struct {
	duration time.Duration
	deadline time.Time
	running  bool
}

// New creates an interval with the given duration, not yet started.
func New(d time.Duration) Interval {
	return Interval{duration: d}
}

// Start arms the interval to expire duration after now. Starting an
// already running interval moves the deadline forward.
func (iv *Interval) Start(now time.Time) {
	iv.deadline = now.Add(iv.duration)
	iv.running = true
}

// Expired reports whether the interval is not running, has zero
// duration, or now has reached the deadline.
func (iv Interval) Expired(now time.Time) bool {
	if !iv.running || iv.duration == 0 {
		return true
	}
	return !now.Before(iv.deadline)
}
