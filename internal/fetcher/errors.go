package fetcher

import "errors"

// Fetch errors.
// These are sentinel errors so callers can distinguish failure modes with
// errors.Is() while the wrapped error carries the URL and attempt details.
var (
	// ErrRetriesExhausted is returned when all fetch attempts for a URL
	// have failed. The crawler treats this as terminal for the page and
	// continues with the rest of the run.
	ErrRetriesExhausted = errors.New("all fetch attempts failed")

	// ErrBadStatus is returned for an attempt that received a non-2xx
	// HTTP status. Redirect statuses are handled transparently by the
	// HTTP client before this check.
	ErrBadStatus = errors.New("unexpected HTTP status")
)
