// Package server provides the local search UI over a crawled index.
// It serves an embedded single-page interface plus a small JSON API.
package server
