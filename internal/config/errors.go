package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoStartURL is returned when no start URL is configured.
	// The start URL comes from a positional argument or the config file.
	ErrNoStartURL = errors.New("no start URL specified: pass one as an argument or set start_url in .sitedex")

	// ErrInvalidStartURL is returned when the start URL is not an
	// absolute http(s) URL.
	ErrInvalidStartURL = errors.New("invalid start URL: must be an absolute http or https URL")

	// ErrInvalidPathPrefix is returned when the configured path prefix
	// does not start with a slash.
	ErrInvalidPathPrefix = errors.New("invalid path prefix: must start with '/'")

	// ErrInvalidConcurrency is returned when the concurrency cap is not
	// positive. Zero workers would mean no crawling at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidDelay is returned when the politeness delay is negative.
	// Use 0 to disable the delay between requests.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrInvalidMaxAttempts is returned when fewer than one fetch attempt
	// is allowed per URL.
	ErrInvalidMaxAttempts = errors.New("invalid max attempts: must be at least 1")

	// ErrInvalidBackoff is returned when the backoff base is negative.
	ErrInvalidBackoff = errors.New("invalid backoff: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 for the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
