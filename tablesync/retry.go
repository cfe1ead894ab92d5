package tablesync

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/mapsync"
)

// DefaultCallTimeout bounds a single table call.
const DefaultCallTimeout = 10 * time.Second

// DefaultRetryDelays returns the waits between table call attempts: 500ms, 1s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{500 * time.Millisecond, 1 * time.Second}
}

// CallWithRetry runs call under a per-attempt timeout, retrying transient
// failures after each of delays. Non-transient errors are returned at once.
// An attempt that outlives its timeout counts as transient.
func CallWithRetry[T any](ctx context.Context, op string, call func(ctx context.Context) (T, error), timeout time.Duration, delays []time.Duration, logger *slog.Logger) (T, error) {
	var zero T
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		v, err := callWithTimeout(ctx, op, call, timeout)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if !mapsync.IsTransient(err) || attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger.Warn("retrying table call",
				"op", op,
				"attempt", attempt+2,
				"error", err,
			)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return zero, lastErr
}

func callWithTimeout[T any](ctx context.Context, op string, call func(ctx context.Context) (T, error), timeout time.Duration) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	if timeout <= 0 {
		return call(ctx)
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	v, err := call(callCtx)
	if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return v, mapsync.Errorf(mapsync.EUNAVAILABLE, "%s timed out after %s", op, timeout)
	}
	return v, err
}
