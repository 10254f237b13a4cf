// Package retry provides a bounded retry combinator for collaborator calls.
// Collaborator latency (document extraction, advisory generation) lives outside
// the record store lock, so callers wrap only the remote invocation itself.
package retry

import (
	"context"
	"math/rand"
	"time"
)

// Policy bounds a retried call: fixed attempt budget, exponential backoff with
// jitter, capped per-wait delay.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      time.Duration
}

// DefaultPolicy mirrors the collaborator tuning of the reference deployment:
// three attempts, 1s base, doubling, up to a second of jitter.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    8 * time.Second,
		Jitter:      time.Second,
	}
}

// Do invokes fn up to p.MaxAttempts times, sleeping between attempts. The last
// error is returned once the budget is exhausted. Context cancellation aborts
// the wait immediately.
func Do[T any](ctx context.Context, p Policy, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, p.delay(attempt-1)); err != nil {
				return zero, err
			}
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
	}
	return zero, lastErr
}

func (p Policy) delay(failedAttempts int) time.Duration {
	d := p.BaseDelay << uint(failedAttempts)
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	if p.Jitter > 0 {
		d += time.Duration(rand.Int63n(int64(p.Jitter)))
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
