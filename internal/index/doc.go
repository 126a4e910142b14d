// Package index manages the crawl output directory: a date-stamped
// directory holding one text file per extracted page and a single JSON
// index file consumed by the search layer.
package index
