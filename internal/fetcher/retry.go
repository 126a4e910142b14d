package fetcher

import "time"

// RetryPolicy decides whether and when a failed fetch attempt is retried.
// It is a pure value: both methods are functions of (attempt, policy) alone,
// with no mutable counters, so the same policy can be shared across
// concurrent workers.
//
// Attempts are numbered from 1. A policy with MaxAttempts == 3 allows three
// attempts in total: the first fetch plus two retries.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts allowed per URL.
	// Values below 1 behave as 1 (a single attempt, no retry).
	MaxAttempts int

	// BackoffBase is the base duration for linear backoff.
	// The wait before retrying attempt N+1 is BackoffBase * N.
	BackoffBase time.Duration
}

// ShouldRetry reports whether another attempt is allowed after the given
// attempt number failed.
func (p RetryPolicy) ShouldRetry(attempt int) bool {
	return attempt < p.MaxAttempts
}

// Backoff returns how long to wait after the given failed attempt before
// the next one. Backoff grows linearly with the attempt number, so
// consecutive failures wait base, 2*base, 3*base, and so on.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(attempt) * p.BackoffBase
}
