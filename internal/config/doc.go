// Package config provides configuration structures and utilities for
// sitedex. It defines the crawl parameters, their defaults, validation,
// and the optional .sitedex YAML configuration file.
package config
