package fathom

import (
	"time"
)

// Limiter enforces a minimum spacing between consecutive outbound API calls.
//
// A fixed floor is used instead of a sliding-window counter: the provider's
// actual budget is undocumented and a conservative constant spacing is easier
// to reason about than a window that can burst up to its cap. The limiter is
// only safe for a single sequential caller, which is all the sync loop needs.
type Limiter struct {
	spacing time.Duration
	last    time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewLimiter creates a Limiter with the given minimum spacing between calls.
func NewLimiter(spacing time.Duration) *Limiter {
	return &Limiter{
		spacing: spacing,
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// Throttle blocks until at least the configured spacing has elapsed since the
// previous call made through this limiter, then records now as the new
// last-call time. The first call ever never blocks.
func (l *Limiter) Throttle() {
	if !l.last.IsZero() {
		if wait := l.spacing - l.now().Sub(l.last); wait > 0 {
			l.sleep(wait)
		}
	}
	l.last = l.now()
}
