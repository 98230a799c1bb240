// Package pacing spaces out calls to shared public services
package pacing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Scheduler hands out one request slot per interval. The first slot is
// available immediately. It is safe for concurrent use; callers queue in
// Wait until their slot comes up.
type Scheduler struct {
	name     string
	interval time.Duration
	limiter  *rate.Limiter
}

// New creates a scheduler that allows one request every interval.
// A zero interval disables pacing.
func New(name string, interval time.Duration) *Scheduler {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Scheduler{
		name:     name,
		interval: interval,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Wait blocks until the next slot or until ctx is done
func (s *Scheduler) Wait(ctx context.Context) error {
	return s.limiter.Wait(ctx)
}

// Name identifies the upstream service being paced
func (s *Scheduler) Name() string {
	return s.name
}

// Interval is the configured spacing between requests
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}
