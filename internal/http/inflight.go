package http

import (
	"context"
	"sync/atomic"
	"time"
)

// inFlightTracker counts requests currently being served so graceful
// shutdown can drain before closing the store.
type inFlightTracker struct {
	count atomic.Int64
}

func (t *inFlightTracker) Increment() { t.count.Add(1) }
func (t *inFlightTracker) Decrement() { t.count.Add(-1) }
func (t *inFlightTracker) Count() int64 {
	return t.count.Load()
}

// waitForZero blocks until the count reaches zero or ctx is done,
// re-checking every checkInterval.
func (t *inFlightTracker) waitForZero(ctx context.Context, checkInterval time.Duration) error {
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()
	for {
		if t.Count() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// globalInFlightTracker is the process-wide counter fed by MetricsMiddleware.
var globalInFlightTracker = &inFlightTracker{}

// InFlightCount returns the current number of in-flight requests.
func InFlightCount() int64 {
	return globalInFlightTracker.Count()
}

// WaitForInFlight blocks until in-flight requests reach zero or ctx is done.
func WaitForInFlight(ctx context.Context, checkInterval time.Duration) error {
	return globalInFlightTracker.waitForZero(ctx, checkInterval)
}
