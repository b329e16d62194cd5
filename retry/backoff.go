// Copyright (c) 2025 The Lexe developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package retry

import (
	"math"
	"time"
)

// Policy maps a retry attempt index to the wait before the next attempt.
// Returning ok == false stops the retry loop.
type Policy interface {
	NextBackoff(attempt int) (wait time.Duration, ok bool)
}

// ExponentialPolicy waits Base * Exponent^attempt, clamped to [0, Ceiling].
// It is a pure value: the same attempt index always yields the same wait.
type ExponentialPolicy struct {
	Base     time.Duration
	Exponent float64
	Ceiling  time.Duration
}

// DefaultPolicy is 250ms doubling up to a 32s ceiling.
func DefaultPolicy() ExponentialPolicy {
	return ExponentialPolicy{
		Base:     250 * time.Millisecond,
		Exponent: 2.0,
		Ceiling:  32 * time.Second,
	}
}

func (p ExponentialPolicy) NextBackoff(attempt int) (time.Duration, bool) {
	if attempt < 0 {
		attempt = 0
	}
	wait := float64(p.Base) * math.Pow(p.Exponent, float64(attempt))
	// The exponent overflows to +Inf quickly; saturate at the ceiling
	// instead of producing garbage durations.
	if math.IsNaN(wait) || wait < 0 {
		return 0, true
	}
	if wait > float64(p.Ceiling) {
		return p.Ceiling, true
	}
	return time.Duration(wait), true
}

// maxAttemptsPolicy stops the retry loop after a fixed number of attempts.
type maxAttemptsPolicy struct {
	inner Policy
	max   int
}

// WithMaxAttempts bounds a policy to at most max attempts.
func WithMaxAttempts(inner Policy, max int) Policy {
	return maxAttemptsPolicy{inner: inner, max: max}
}

func (p maxAttemptsPolicy) NextBackoff(attempt int) (time.Duration, bool) {
	// attempt is zero-based; attempt n failing means n+1 attempts were made.
	if attempt+1 >= p.max {
		return 0, false
	}
	return p.inner.NextBackoff(attempt)
}
