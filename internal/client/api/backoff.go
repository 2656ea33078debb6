package api

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	rateLimitBase       = time.Second
	rateLimitCap        = 30 * time.Second
	maxRateLimitRetries = 6
)

// sleepFunc is injectable so tests can capture delays instead of waiting.
type sleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// retryOn429 runs fn, retrying while it fails with ErrRateLimited. Delays
// start at one second and double per attempt, capped at thirty seconds. The
// attempt counter is local to this call, so any non-429 outcome (success or
// a different error) starts the next call from a clean slate. Implemented as
// a bounded loop, not recursion.
func retryOn429(ctx context.Context, sleep sleepFunc, fn func(ctx context.Context) error) error {
	b := retry.WithCappedDuration(rateLimitCap, retry.NewExponential(rateLimitBase))

	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil || !errors.Is(err, ErrRateLimited) {
			return err
		}
		if attempt >= maxRateLimitRetries {
			return err
		}

		delay, stop := b.Next()
		if stop {
			return err
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
}
