// Package retry wraps unreliable asynchronous operations in a uniform
// retry policy with exponential backoff and jitter.
package retry

import (
	"context"
	"fmt"
	"math"
	mathrand "math/rand"
	"time"
)

// Policy configures a retry loop. MaxRetries counts retries after the first
// attempt, so the total attempt budget is MaxRetries+1.
type Policy struct {
	MaxRetries        int
	InitialDelay      time.Duration
	BackoffMultiplier float64
	MaxDelay          time.Duration
	Jitter            bool
}

// Operation is a single effectful attempt. The orchestrator owns the
// looping, backoff and jitter; the operation only does one try.
type Operation[T any] func(ctx context.Context) (T, error)

// Do runs op under the policy. Delays grow geometrically from InitialDelay
// by BackoffMultiplier, capped at MaxDelay, with multiplicative jitter in
// [0.5, 1.0) when enabled. After the attempt budget is exhausted the last
// error is returned unchanged so callers can inspect the original failure.
// An in-flight attempt is never aborted; cancellation is only observed
// between attempts, while sleeping.
func Do[T any](ctx context.Context, policy Policy, op Operation[T]) (T, error) {
	return run(ctx, policy, op, nil, sleepContext, mathrand.Float64)
}

// DoWithProgress is Do with phase transitions pushed to onProgress: the
// attempt being started, the pending backoff, and the terminal state. The
// in-progress flag is guaranteed to go false exactly once, on exit.
func DoWithProgress[T any](ctx context.Context, policy Policy, op Operation[T], onProgress ProgressFunc) (T, error) {
	return run(ctx, policy, op, onProgress, sleepContext, mathrand.Float64)
}

// run is the orchestrator core with the sleep and randomness hooks exposed
// for deterministic tests.
func run[T any](
	ctx context.Context,
	policy Policy,
	op Operation[T],
	onProgress ProgressFunc,
	sleep func(context.Context, time.Duration) error,
	randFloat func() float64,
) (T, error) {
	var zero T

	total := policy.MaxRetries + 1
	notify := func(p Progress) {
		if onProgress != nil {
			p.MaxAttempts = total
			onProgress(p)
		}
	}

	finalStatus := "Failed"
	defer func() {
		notify(Progress{InProgress: false, Status: finalStatus})
	}()

	for attempt := 0; ; attempt++ {
		notify(Progress{
			InProgress: true,
			Attempt:    attempt + 1,
			Status:     fmt.Sprintf("Attempt %d/%d", attempt+1, total),
		})

		result, err := op(ctx)
		if err == nil {
			finalStatus = "Success"
			notify(Progress{InProgress: true, Attempt: attempt + 1, Status: "Success"})
			return result, nil
		}

		if attempt == policy.MaxRetries {
			return zero, err
		}

		delay := policy.delay(attempt, randFloat)
		notify(Progress{
			InProgress: true,
			Attempt:    attempt + 1,
			Status:     fmt.Sprintf("Retrying in %.1fs...", delay.Seconds()),
		})

		if err := sleep(ctx, delay); err != nil {
			finalStatus = "Cancelled"
			return zero, err
		}
	}
}

// delay computes the backoff before retry number attempt+1. Geometric
// growth, hard cap, then jitter.
func (p Policy) delay(attempt int, randFloat func() float64) time.Duration {
	d := float64(p.InitialDelay) * math.Pow(p.BackoffMultiplier, float64(attempt))
	if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
		d = float64(p.MaxDelay)
	}
	if p.Jitter {
		// Multiplicative jitter keeps concurrent callers from retrying in
		// lockstep against the same downstream resource.
		d *= 0.5 + 0.5*randFloat()
	}
	return time.Duration(d)
}

// sleepContext suspends for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
