package config

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These defaults are tuned for small sites behind shared hosting, where
// politeness matters more than throughput.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "sitedex"

	// DefaultDelay is the politeness delay before every fetch attempt.
	// 1 second per worker is conservative and respectful of server
	// resources; the concurrency cap bounds parallelism separately.
	DefaultDelay = 1 * time.Second

	// DefaultConcurrency is the maximum number of in-flight page fetches.
	// The politeness delay applies per worker, so the effective request
	// rate is roughly Concurrency requests per Delay.
	DefaultConcurrency = 5

	// DefaultMaxAttempts is the total fetch attempts per URL (the first
	// fetch plus retries). Three attempts rides out transient errors
	// without hammering a struggling server.
	DefaultMaxAttempts = 3

	// DefaultBackoffBase is the base for linear retry backoff: the wait
	// after failed attempt N is N * DefaultBackoffBase.
	DefaultBackoffBase = 1 * time.Second

	// DefaultMaxPages of 0 means no page cap; the crawl ends when the
	// frontier is empty. Set a cap for sites with generated URL spaces.
	DefaultMaxPages = 0

	// DefaultUserAgent identifies sitedex in HTTP requests. A descriptive
	// User-Agent lets site operators identify crawler traffic in logs.
	DefaultUserAgent = "sitedex/1.0 (+https://github.com/sitedex/sitedex)"

	// DefaultMaxBodySize limits the response body bytes read per page.
	// 5MB is ample for HTML while preventing memory exhaustion.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultTimeout is the HTTP client timeout for a single request.
	DefaultTimeout = 30 * time.Second

	// DefaultServeAddr is the listen address of the search UI server.
	DefaultServeAddr = "127.0.0.1:8799"
)

// Config holds all configuration options for a sitedex run.
// It is populated from defaults, the optional .sitedex file, and CLI flags
// (in that order of precedence, flags last), then passed through the
// application explicitly rather than via global state.
type Config struct {
	// StartURL is the page the crawl starts from. Required for crawling.
	StartURL string

	// PathPrefix is the allowed path prefix on the start URL's host.
	// When empty, it is derived from the start URL's directory, which
	// confines the crawl to the section the start page lives in.
	PathPrefix string

	// OutputRoot is the directory under which the date-stamped output
	// directory is created. Defaults to the XDG data directory.
	OutputRoot string

	// Delay is the politeness delay before every fetch attempt.
	Delay time.Duration

	// Concurrency caps concurrent in-flight page processings.
	Concurrency int

	// MaxAttempts is the total fetch attempts per URL.
	MaxAttempts int

	// BackoffBase is the base duration for linear retry backoff.
	BackoffBase time.Duration

	// MaxPages limits the total pages processed. 0 means unlimited.
	MaxPages int

	// Selectors is the ordered main-content selector list.
	// Empty means the extractor's defaults.
	Selectors []string

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// Timeout is the HTTP client timeout for a single request.
	Timeout time.Duration

	// Verbose enables debug-level log output.
	Verbose bool

	// ServeAddr is the listen address for the search UI server.
	ServeAddr string
}

// New creates a Config with default values.
// Many defaults are non-zero, so relying on zero values is not an option;
// this constructor also documents what the defaults are.
func New() *Config {
	return &Config{
		OutputRoot:  DefaultOutputRoot(),
		Delay:       DefaultDelay,
		Concurrency: DefaultConcurrency,
		MaxAttempts: DefaultMaxAttempts,
		BackoffBase: DefaultBackoffBase,
		MaxPages:    DefaultMaxPages,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		Timeout:     DefaultTimeout,
		ServeAddr:   DefaultServeAddr,
	}
}

// DefaultOutputRoot returns the default output root directory.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/sitedex
func DefaultOutputRoot() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// EffectivePathPrefix returns the configured path prefix, or one derived
// from the start URL when none is set. The derived prefix is the directory
// of the start URL's path including the trailing slash, so a start URL of
// "https://host/a/b/home" scopes the crawl to "/a/b/".
func (c *Config) EffectivePathPrefix() string {
	if c.PathPrefix != "" {
		return c.PathPrefix
	}

	u, err := url.Parse(c.StartURL)
	if err != nil {
		return ""
	}

	dir := path.Dir(u.Path)
	if dir == "." || dir == "/" {
		return "/"
	}
	return dir + "/"
}

// Validate checks whether the configuration is usable for a crawl.
// It returns the first problem found; fixing one error often makes the
// rest irrelevant.
func (c *Config) Validate() error {
	if c.StartURL == "" {
		return ErrNoStartURL
	}

	u, err := url.Parse(c.StartURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidStartURL
	}

	if c.PathPrefix != "" && !strings.HasPrefix(c.PathPrefix, "/") {
		return ErrInvalidPathPrefix
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.Delay < 0 {
		return ErrInvalidDelay
	}

	if c.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.BackoffBase < 0 {
		return ErrInvalidBackoff
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
