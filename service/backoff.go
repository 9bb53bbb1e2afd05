package service

import (
	"context"
	"fmt"
	"time"
)

// Backoff bounds how long registry calls are retried. Each attempt gets AttemptTimeout; the wait between attempts
// starts at Initial and doubles up to Max; once Deadline has passed since the first attempt the call gives up
// with a registry_unavailable MyError.
type Backoff struct {
	Initial        time.Duration
	Max            time.Duration
	Deadline       time.Duration
	AttemptTimeout time.Duration
}

// DefaultBackoff is used for any zero field of a configured Backoff.
func DefaultBackoff() Backoff {
	return Backoff{
		Initial:        100 * time.Millisecond,
		Max:            2 * time.Second,
		Deadline:       10 * time.Second,
		AttemptTimeout: 3 * time.Second,
	}
}

func (b Backoff) withDefaults() Backoff {
	d := DefaultBackoff()
	if b.Initial <= 0 {
		b.Initial = d.Initial
	}
	if b.Max <= 0 {
		b.Max = d.Max
	}
	if b.Max < b.Initial {
		b.Max = b.Initial
	}
	if b.Deadline <= 0 {
		b.Deadline = d.Deadline
	}
	if b.AttemptTimeout <= 0 {
		b.AttemptTimeout = d.AttemptTimeout
	}
	return b
}

// Delay returns the wait before retry number attempt (0-based): Initial * 2^attempt, capped at Max.
func (b Backoff) Delay(attempt int) time.Duration {
	b = b.withDefaults()
	d := b.Initial
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= b.Max {
			return b.Max
		}
	}
	return d
}

// retryValue runs fn until it succeeds, fails with a bad_parameter MyError, or the backoff deadline (or ctx) ends.
func retryValue[T any](ctx context.Context, b Backoff, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	b = b.withDefaults()
	ctx, cancel := context.WithTimeout(ctx, b.Deadline)
	defer cancel()

	var zero T
	var lastErr error
	for attempt := 0; ; attempt++ {
		attemptCtx, attemptCancel := context.WithTimeout(ctx, b.AttemptTimeout)
		v, err := fn(attemptCtx)
		attemptCancel()
		if err == nil {
			return v, nil
		}
		if IsBadParameterError(err) {
			return zero, err
		}
		lastErr = err

		timer := time.NewTimer(b.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, NewRegistryUnavailableError(fmt.Sprintf("%s failed after %d attempts", op, attempt+1), lastErr)
		case <-timer.C:
		}
	}
}

func retry(ctx context.Context, b Backoff, op string, fn func(ctx context.Context) error) error {
	_, err := retryValue(ctx, b, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
