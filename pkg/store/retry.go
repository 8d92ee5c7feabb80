package store

import (
	"context"
	"errors"
	"time"
)

// Connection check settings for the network backends. A server that is
// still starting (docker compose, CI services) gets a few chances.
const (
	pingAttempts = 3
	pingDelay    = 250 * time.Millisecond
)

// ping calls check up to attempts times and doubles delay after every
// failure. It gives up early when ctx ends and returns the last error.
func ping(ctx context.Context, attempts int, delay time.Duration, check func(context.Context) error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if lastErr = check(ctx); lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			return lastErr
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
