package crawler

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sitedex/sitedex/internal/extract"
	"github.com/sitedex/sitedex/internal/fetcher"
	"github.com/sitedex/sitedex/internal/model"
	"github.com/sitedex/sitedex/internal/scope"
)

// TextStore persists extracted page text.
// It is implemented by index.Dir; tests substitute an in-memory store.
type TextStore interface {
	// SaveText writes the text extracted from pageURL.
	SaveText(pageURL, content string) error
}

// Crawler runs a single breadth-first crawl over one site section.
// It owns all mutable crawl state: the visited set, the collected records,
// and the run statistics. Workers touch that state only through
// mutex-guarded methods, so the at-most-once processing guarantee holds
// under preemptive goroutine scheduling.
type Crawler struct {
	// fetcher performs polite HTTP fetches with retry.
	fetcher *fetcher.Fetcher

	// extractor parses fetched HTML into text and links.
	extractor *extract.Extractor

	// scope is the host + path-prefix constraint for the run.
	scope scope.Scope

	// store receives extracted page text. May be nil in dry runs.
	store TextStore

	// concurrency caps the number of in-flight page processings.
	concurrency int

	// maxPages limits the total pages processed. 0 means unlimited.
	maxPages int

	// logger records per-page failures and layer progress.
	logger *slog.Logger

	// onPage, if set, is called after each page is processed.
	// Used by the CLI for progress display.
	onPage func(pageURL string)

	// mu guards visited, records, and stats.
	mu      sync.Mutex
	visited map[string]bool
	records []model.ScrapedRecord
	stats   model.CrawlStats
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithConcurrency caps concurrent in-flight page processings.
func WithConcurrency(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithMaxPages limits the total number of pages processed.
// This prevents runaway crawling on large or infinitely-generating sites.
func WithMaxPages(n int) Option {
	return func(c *Crawler) {
		c.maxPages = n
	}
}

// WithLogger sets the crawl logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// WithPageCallback registers a callback invoked after each processed page.
// The callback runs on worker goroutines and must be safe for concurrent use.
func WithPageCallback(fn func(pageURL string)) Option {
	return func(c *Crawler) {
		c.onPage = fn
	}
}

// New creates a Crawler for one run.
// A Crawler is single-use: Crawl may be called once.
func New(f *fetcher.Fetcher, e *extract.Extractor, sc scope.Scope, store TextStore, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher:     f,
		extractor:   e,
		scope:       sc,
		store:       store,
		concurrency: 5,
		visited:     make(map[string]bool),
		records:     make([]model.ScrapedRecord, 0),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Result is the outcome of a completed (or cancelled) crawl.
type Result struct {
	// Records holds the scraped records in completion order.
	Records []model.ScrapedRecord

	// Stats summarizes the run.
	Stats model.CrawlStats
}

// Crawl runs the breadth-first traversal from startURL until the frontier
// is empty or the context is cancelled.
//
// Every URL in a layer is dispatched before any URL first discovered in
// that layer is processed: the next frontier is only formed from completed
// results of the previous layer. On cancellation the records collected so
// far are returned together with the context error.
func (c *Crawler) Crawl(ctx context.Context, startURL string) (*Result, error) {
	start := scope.Normalize(startURL)
	if !c.scope.InScope(start) {
		return nil, fmt.Errorf("start URL %q is outside the crawl scope (host %s, prefix %s)",
			startURL, c.scope.Host, c.scope.PathPrefix)
	}

	c.stats.StartURL = start
	c.stats.StartedAt = time.Now()

	frontier := []string{start}

	for len(frontier) > 0 {
		select {
		case <-ctx.Done():
			return c.result(), ctx.Err()
		default:
		}

		batch := frontier
		frontier = nil

		c.mu.Lock()
		c.stats.Layers++
		c.stats.LayerSizes = append(c.stats.LayerSizes, len(batch))
		layer := c.stats.Layers
		c.mu.Unlock()

		c.logger.Debug("starting crawl layer", "layer", layer, "urls", len(batch))

		// next dedupes URLs discovered within this layer before they
		// enter the frontier. Guarded by mu together with visited.
		next := make(map[string]bool)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.concurrency)

		for _, pageURL := range batch {
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				discovered := c.process(gctx, pageURL)

				c.mu.Lock()
				for _, link := range discovered {
					if !c.visited[link] && !next[link] {
						next[link] = true
						frontier = append(frontier, link)
					}
				}
				c.mu.Unlock()

				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return c.result(), err
		}
	}

	res := c.result()
	c.logger.Info("crawl complete",
		"pages", res.Stats.PagesCrawled,
		"failed", res.Stats.PagesFailed,
		"records", len(res.Records),
		"layers", res.Stats.Layers,
		"elapsed", res.Stats.Elapsed,
	)

	return res, nil
}

// result snapshots the collected records and statistics.
func (c *Crawler) result() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Elapsed = time.Since(c.stats.StartedAt)
	c.stats.Records = len(c.records)

	records := make([]model.ScrapedRecord, len(c.records))
	copy(records, c.records)
	stats := c.stats
	stats.LayerSizes = append([]int(nil), c.stats.LayerSizes...)

	return &Result{Records: records, Stats: stats}
}

// process handles one page: scope/visited gate, fetch, extract, persist.
// It returns the in-scope links discovered on the page. Every failure mode
// is logged and converted to "nothing discovered"; process never aborts
// the run.
func (c *Crawler) process(ctx context.Context, pageURL string) []string {
	if !c.scope.InScope(pageURL) {
		c.skip()
		return nil
	}

	// Mark visited before any network I/O so no two workers ever
	// process the same URL, even within one layer.
	if !c.markVisited(pageURL) {
		c.skip()
		return nil
	}

	if c.onPage != nil {
		defer c.onPage(pageURL)
	}

	body, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		c.logger.Warn("fetch failed", "url", pageURL, "error", err)
		c.fail()
		return nil
	}

	page, err := c.extractor.Extract(pageURL, bytes.NewReader(body))
	if err != nil {
		c.logger.Warn("html parse failed", "url", pageURL, "error", err)
		c.fail()
		return nil
	}

	c.mu.Lock()
	c.stats.PagesCrawled++
	c.mu.Unlock()

	if page.Text != "" {
		if c.store != nil {
			if err := c.store.SaveText(pageURL, page.Text); err != nil {
				// Text file loss doesn't invalidate the record
				c.logger.Warn("text write failed", "url", pageURL, "error", err)
			}
		}
		c.mu.Lock()
		c.records = append(c.records, model.ScrapedRecord{URL: pageURL, Content: page.Text})
		c.mu.Unlock()
	}

	discovered := make([]string, 0, len(page.Links))
	for _, link := range page.Links {
		normalized := scope.Normalize(link)
		if !c.scope.InScope(normalized) {
			continue
		}
		if c.isVisited(normalized) {
			continue
		}
		discovered = append(discovered, normalized)
	}

	return discovered
}

// markVisited records a URL as visited and reports whether it was new.
// The check and the insert are one critical section, which is what makes
// at-most-once processing hold across preemptively scheduled workers.
func (c *Crawler) markVisited(pageURL string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.visited[pageURL] {
		return false
	}
	if c.maxPages > 0 && len(c.visited) >= c.maxPages {
		return false
	}
	c.visited[pageURL] = true
	return true
}

// isVisited checks membership without inserting.
func (c *Crawler) isVisited(pageURL string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visited[pageURL]
}

func (c *Crawler) skip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.PagesSkipped++
}

func (c *Crawler) fail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.PagesFailed++
}
