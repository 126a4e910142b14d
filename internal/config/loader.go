package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".sitedex"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the structure of the .sitedex configuration file.
// All fields are optional; unset fields leave the corresponding Config
// value untouched.
type File struct {
	// StartURL is the page the crawl starts from.
	StartURL string `yaml:"start_url,omitempty"`

	// PathPrefix is the allowed path prefix on the start URL's host.
	PathPrefix string `yaml:"path_prefix,omitempty"`

	// OutputDir is the output root directory.
	OutputDir string `yaml:"output_dir,omitempty"`

	// Delay is the politeness delay before each fetch, in Go duration
	// syntax (e.g. "1s", "500ms"). Stored as a string because yaml.v3
	// only accepts integer nanoseconds for time.Duration fields.
	Delay string `yaml:"delay,omitempty"`

	// Concurrency caps concurrent in-flight fetches.
	Concurrency int `yaml:"concurrency,omitempty"`

	// MaxAttempts is the total fetch attempts per URL.
	MaxAttempts int `yaml:"max_attempts,omitempty"`

	// Backoff is the base duration for linear retry backoff, in Go
	// duration syntax.
	Backoff string `yaml:"backoff,omitempty"`

	// MaxPages limits the total pages processed.
	MaxPages int `yaml:"max_pages,omitempty"`

	// Selectors overrides the main-content selector list.
	Selectors []string `yaml:"selectors,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"user_agent,omitempty"`

	// ServeAddr is the listen address for the search UI server.
	ServeAddr string `yaml:"serve_addr,omitempty"`
}

// Apply merges the file values into cfg. Only set (non-empty) file values
// override; CLI flags are applied after this and win over both.
// Malformed duration strings are reported so the user learns about a typo
// instead of silently crawling with the default rate.
func (f *File) Apply(cfg *Config) error {
	if f.StartURL != "" {
		cfg.StartURL = f.StartURL
	}
	if f.PathPrefix != "" {
		cfg.PathPrefix = f.PathPrefix
	}
	if f.OutputDir != "" {
		cfg.OutputRoot = f.OutputDir
	}
	if f.Delay != "" {
		d, err := time.ParseDuration(f.Delay)
		if err != nil {
			return fmt.Errorf("invalid delay in config file: %w", err)
		}
		cfg.Delay = d
	}
	if f.Concurrency != 0 {
		cfg.Concurrency = f.Concurrency
	}
	if f.MaxAttempts != 0 {
		cfg.MaxAttempts = f.MaxAttempts
	}
	if f.Backoff != "" {
		d, err := time.ParseDuration(f.Backoff)
		if err != nil {
			return fmt.Errorf("invalid backoff in config file: %w", err)
		}
		cfg.BackoffBase = d
	}
	if f.MaxPages != 0 {
		cfg.MaxPages = f.MaxPages
	}
	if len(f.Selectors) > 0 {
		cfg.Selectors = f.Selectors
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.ServeAddr != "" {
		cfg.ServeAddr = f.ServeAddr
	}
	return nil
}

// LoadFile loads a configuration file from the given path.
// If the file does not exist it returns ErrConfigNotFound; callers decide
// whether that matters based on whether the path was explicit.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	return &f, nil
}

// FindFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .sitedex in the current directory
//  3. Look for .sitedex in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
