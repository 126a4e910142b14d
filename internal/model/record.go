package model

import "time"

// ScrapedRecord is one successfully processed page with non-empty extracted
// text. Records are immutable after creation and are collected in completion
// order within a crawl layer, which is non-deterministic across runs.
//
// Design decision: We keep only URL and content rather than the full HTTP
// response because:
//  1. The search index needs nothing else
//  2. The JSON index stays small enough to load in a browser
//  3. Raw bodies are already reflected in the per-page text files
type ScrapedRecord struct {
	// URL is the normalized URL of the page the text was extracted from.
	URL string `json:"url"`

	// Content is the trimmed extracted text of the page.
	// Never empty; pages with no extractable text produce no record.
	Content string `json:"content"`
}

// CrawlStats summarizes a completed crawl run.
// It is populated by the crawler and rendered by the report writers.
type CrawlStats struct {
	// StartURL is the normalized URL the crawl started from.
	StartURL string `json:"start_url"`

	// PagesCrawled is the number of pages fetched and processed successfully.
	PagesCrawled int `json:"pages_crawled"`

	// PagesFailed is the number of pages whose fetch or parse failed after
	// exhausting retries. Failed pages contribute no records and no links.
	PagesFailed int `json:"pages_failed"`

	// PagesSkipped is the number of discovered URLs rejected before any
	// network I/O (out of scope or already visited).
	PagesSkipped int `json:"pages_skipped"`

	// Records is the number of scraped records collected (pages with
	// non-empty extracted text). Always <= PagesCrawled.
	Records int `json:"records"`

	// Layers is the number of BFS layers the crawl ran through.
	Layers int `json:"layers"`

	// LayerSizes holds the number of URLs dispatched in each layer,
	// in layer order. len(LayerSizes) == Layers.
	LayerSizes []int `json:"layer_sizes,omitempty"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total wall-clock duration of the crawl.
	Elapsed time.Duration `json:"elapsed"`
}
