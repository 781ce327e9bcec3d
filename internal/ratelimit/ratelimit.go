package ratelimit

import (
	"golang.org/x/time/rate"
)

// Limiter bounds how often an event fires, mainly to keep per-row
// degradation warnings from flooding logs on bad batches.
type Limiter struct {
	limiter *rate.Limiter
}

// New uses 0 or a negative limit for no throttling.
func New(eventsPerSecond float64) *Limiter {
	if eventsPerSecond <= 0 {
		return &Limiter{
			limiter: rate.NewLimiter(rate.Inf, 1),
		}
	}

	// Burst of 1: the first event fires immediately, later ones are
	// spaced by the configured rate.
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(eventsPerSecond), 1),
	}
}

// Allow is non-blocking; it reports whether the event may fire now.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Limit reports the configured rate, 0 meaning unthrottled.
func (l *Limiter) Limit() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}
