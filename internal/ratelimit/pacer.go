// internal/ratelimit/pacer.go

// Package ratelimit paces requests toward the remote site. The fixed delays
// between pages and between filter combinations are a courtesy the site
// depends on, not a performance device.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a fixed minimum interval between events. It wraps a token
// bucket with burst 1, so the first call proceeds immediately and every
// subsequent call waits out the interval.
type Pacer struct {
	limiter  *rate.Limiter
	interval time.Duration
}

// NewPacer creates a pacer with the given minimum interval between events.
// A non-positive interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		interval: interval,
	}
}

// Wait blocks until the next event may proceed or the context is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Interval reports the configured minimum interval.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}
