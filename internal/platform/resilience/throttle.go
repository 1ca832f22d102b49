package resilience

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle spaces outbound calls by a fixed delay. A zero delay never blocks.
type Throttle struct {
	limiter *rate.Limiter
}

func NewThrottle(delay time.Duration) *Throttle {
	if delay <= 0 {
		return &Throttle{}
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.limiter == nil {
		return nil
	}
	return t.limiter.Wait(ctx)
}
