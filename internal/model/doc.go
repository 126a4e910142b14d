// Package model defines the core data structures shared across sitedex.
// It contains the scraped page record that flows from the crawler into the
// index, and the statistics collected over a crawl run.
package model
