package scope

import (
	"log/slog"
	"net/url"
	"strings"
)

// Normalize canonicalizes a URL string for deduplication.
// It strips the fragment, lowercases the scheme and host, and treats an
// empty path as "/". Normalize is idempotent: applying it twice yields the
// same string as applying it once.
//
// If raw cannot be parsed as a URL, Normalize logs the failure and returns
// the input unchanged rather than returning an error. Callers gate on
// InScope afterwards, which rejects anything unparseable.
func Normalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		slog.Debug("url normalization failed", "url", raw, "error", err)
		return raw
	}

	// Fragment (#anchor) doesn't change content
	u.Fragment = ""

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	// http://example.com and http://example.com/ are the same page
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}

// Scope is the hostname + path-prefix constraint defining which URLs are
// eligible to crawl. The zero value matches nothing.
type Scope struct {
	// Host is the allowed hostname. Compared case-insensitively and
	// exactly; subdomains of Host are out of scope.
	Host string

	// PathPrefix is the allowed path prefix. An empty prefix allows
	// every path on Host.
	PathPrefix string
}

// New creates a Scope from a start URL and a path prefix.
// The host is taken from the start URL. If the start URL cannot be parsed,
// the returned Scope has an empty host and matches nothing.
func New(startURL, pathPrefix string) Scope {
	u, err := url.Parse(startURL)
	if err != nil {
		slog.Debug("scope creation failed", "url", startURL, "error", err)
		return Scope{PathPrefix: pathPrefix}
	}
	return Scope{
		Host:       strings.ToLower(u.Hostname()),
		PathPrefix: pathPrefix,
	}
}

// InScope reports whether a URL is eligible for crawling.
// A URL is in scope iff its scheme is http or https, its hostname equals
// the scope host exactly, and its path starts with the path prefix.
// Any parse failure yields false.
func (s Scope) InScope(raw string) bool {
	if s.Host == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	if !strings.EqualFold(u.Hostname(), s.Host) {
		return false
	}

	return strings.HasPrefix(u.Path, s.PathPrefix)
}
