package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a fetch failure as transient. Remote catalog reads
// wrap network errors and 5xx responses in it so [Retry] tries the href
// again; permanent failures (a 404, a malformed URL) pass through unwrapped
// and stop the loop.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, doubling delay between tries. Only
// errors wrapped in [RetryableError] are retried; anything else returns
// immediately. Resolving a deep catalog can issue hundreds of fetches, so
// the backoff waits on ctx and returns ctx.Err() as soon as the traversal
// is cancelled.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
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

// RetryWithBackoff runs fn with the defaults used for STAC document
// fetches: 3 attempts starting at 1 second.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
