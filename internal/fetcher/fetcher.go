package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Fetcher performs HTTP GET requests with a politeness delay and bounded
// retry. A single Fetcher is shared by all crawl workers; it holds no
// per-request state.
type Fetcher struct {
	// client is the HTTP client used for all requests.
	client *http.Client

	// delay is the politeness delay inserted before every attempt,
	// including retries. It limits the request rate per worker
	// independently of the crawl concurrency cap.
	delay time.Duration

	// policy decides retry behavior after a failed attempt.
	policy RetryPolicy

	// userAgent is the User-Agent header sent with every request.
	userAgent string

	// maxBodySize limits how many response body bytes are read.
	maxBodySize int64

	// logger records per-attempt failures at debug level.
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithDelay sets the politeness delay before each attempt.
func WithDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.delay = d
	}
}

// WithRetryPolicy sets the retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(f *Fetcher) {
		f.policy = p
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// WithLogger sets the logger used for attempt-level diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher with the given HTTP client.
//
// Design decision: We require an external client rather than constructing
// one because:
//  1. Timeouts and transport settings belong to the caller
//  2. Tests can inject httptest clients directly
func New(client *http.Client, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      client,
		delay:       1 * time.Second,
		policy:      RetryPolicy{MaxAttempts: 3, BackoffBase: time.Second},
		userAgent:   "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
		maxBodySize: 5 * 1024 * 1024,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = slog.Default()
	}

	return f
}

// Fetch retrieves the body of the given URL.
// Before each attempt it sleeps the politeness delay. A non-2xx status or a
// transport error counts as a failed attempt; failed attempts back off
// linearly per the retry policy. When the policy is exhausted, Fetch returns
// an error wrapping ErrRetriesExhausted. The caller treats that as terminal
// for the page, never for the run.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	var lastErr error

	for attempt := 1; ; attempt++ {
		// Politeness delay before every attempt
		if err := sleep(ctx, f.delay); err != nil {
			return nil, err
		}

		body, err := f.attempt(ctx, pageURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		f.logger.Debug("fetch attempt failed",
			"url", pageURL,
			"attempt", attempt,
			"error", err,
		)

		if !f.policy.ShouldRetry(attempt) {
			return nil, fmt.Errorf("%w: %s after %d attempts: %w",
				ErrRetriesExhausted, pageURL, attempt, lastErr)
		}

		if err := sleep(ctx, f.policy.Backoff(attempt)); err != nil {
			return nil, err
		}
	}
}

// attempt performs a single GET request.
func (f *Fetcher) attempt(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.7,en;q=0.3")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // Best effort drain
		return nil, fmt.Errorf("%w: %d for %s", ErrBadStatus, resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, err
	}

	return body, nil
}

// sleep waits for d or until the context is cancelled.
// A non-positive duration returns immediately.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
