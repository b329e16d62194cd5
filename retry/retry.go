// Copyright (c) 2025 The Lexe developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package retry

import (
	"context"
	"time"
)

// Outcome distinguishes why a retry loop returned. Cancellation is not an
// error: callers must be able to tell teardown apart from exhausted retries.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeCanceled
	OutcomeExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeCanceled:
		return "canceled"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Do invokes op until it succeeds, ctx is canceled, or the policy stops the
// loop. Cancellation is checked immediately after each failed attempt and
// again after each backoff sleep, never mid-flight inside op itself.
//
// Do must only be used for idempotent or otherwise safely-retryable
// operations. It is never used for payment submission, which is at-most-once.
func Do[T any](ctx context.Context, policy Policy, op func(context.Context) (T, error)) (T, Outcome, error) {
	var zero T
	var lastErr error

	for attempt := 0; ; attempt++ {
		val, err := op(ctx)
		if err == nil {
			return val, OutcomeSuccess, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return zero, OutcomeCanceled, lastErr
		}

		wait, ok := policy.NextBackoff(attempt)
		if !ok {
			return zero, OutcomeExhausted, lastErr
		}

		if err := sleep(ctx, wait); err != nil {
			return zero, OutcomeCanceled, lastErr
		}
	}
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
