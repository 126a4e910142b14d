package fetcher

import (
	"testing"
	"time"
)

// TestRetryPolicyShouldRetry tests the attempt budget.
func TestRetryPolicyShouldRetry(t *testing.T) {
	t.Parallel()

	p := RetryPolicy{MaxAttempts: 3, BackoffBase: time.Second}

	tests := []struct {
		attempt int
		want    bool
	}{
		{attempt: 1, want: true},
		{attempt: 2, want: true},
		{attempt: 3, want: false},
		{attempt: 4, want: false},
	}

	for _, tt := range tests {
		if got := p.ShouldRetry(tt.attempt); got != tt.want {
			t.Errorf("ShouldRetry(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

// TestRetryPolicyBackoff tests linear backoff growth.
func TestRetryPolicyBackoff(t *testing.T) {
	t.Parallel()

	p := RetryPolicy{MaxAttempts: 5, BackoffBase: 100 * time.Millisecond}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 1, want: 100 * time.Millisecond},
		{attempt: 2, want: 200 * time.Millisecond},
		{attempt: 3, want: 300 * time.Millisecond},
		{attempt: 0, want: 100 * time.Millisecond}, // clamped to 1
	}

	for _, tt := range tests {
		if got := p.Backoff(tt.attempt); got != tt.want {
			t.Errorf("Backoff(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

// TestRetryPolicySingleAttempt verifies MaxAttempts below 1 means no retry.
func TestRetryPolicySingleAttempt(t *testing.T) {
	t.Parallel()

	p := RetryPolicy{MaxAttempts: 0}
	if p.ShouldRetry(1) {
		t.Error("ShouldRetry(1) with MaxAttempts=0 should be false")
	}
}
