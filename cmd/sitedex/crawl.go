package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/sitedex/sitedex/internal/config"
	"github.com/sitedex/sitedex/internal/crawler"
	"github.com/sitedex/sitedex/internal/extract"
	"github.com/sitedex/sitedex/internal/fetcher"
	"github.com/sitedex/sitedex/internal/index"
	"github.com/sitedex/sitedex/internal/report"
	"github.com/sitedex/sitedex/internal/scope"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [start-url]",
		Short: "Crawl a site section and write a text snapshot plus JSON index",
		Long: `Crawl traverses a site section breadth-first starting from the given URL.

The crawl stays on the start URL's host and below the path prefix derived
from the start URL's directory (override with --prefix). For every page it
extracts the main content text, writes it to a .txt file named after the
URL path, and records it in a JSON index for later searching.

Output goes to a date-stamped directory under the output root:
  <output-root>/<YYYY-MM-DD>/<page>.txt
  <output-root>/<YYYY-MM-DD>/index-<YYYY-MM-DD>.json

Examples:
  # Crawl a documentation section
  sitedex crawl https://example.com/docs/home

  # Widen the scope to the whole host
  sitedex crawl --prefix / https://example.com/docs/home

  # Faster crawl of a site you operate yourself
  sitedex crawl --delay 100ms --concurrency 10 https://example.com/docs/home

  # Use a configuration file
  sitedex crawl -c mysite.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCrawlCmd,
	}

	// Scope flags
	cmd.Flags().StringP("prefix", "P", "",
		"Path prefix the crawl is confined to (default: directory of the start URL)")

	// Politeness and retry flags
	cmd.Flags().DurationP("delay", "d", config.DefaultDelay,
		"Politeness delay before every fetch attempt")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Maximum number of concurrent page fetches")
	cmd.Flags().IntP("max-attempts", "a", config.DefaultMaxAttempts,
		"Total fetch attempts per URL (first fetch plus retries)")
	cmd.Flags().DurationP("backoff", "b", config.DefaultBackoffBase,
		"Base duration for linear retry backoff")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to process (0 = unlimited)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"HTTP timeout for a single request")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header sent with every request")

	// Output flags
	cmd.Flags().StringP("output", "o", "",
		"Output root directory (default: XDG data directory)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output the crawl summary in Markdown")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .sitedex in current or home directory)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCrawlConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	verbose := getVerboseFlag(cmd)
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	markdownReport, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	return runCrawl(ctx, cfg, logger, markdownReport, !verbose)
}

// buildCrawlConfig creates a Config from the config file and cobra flags.
// Precedence is defaults, then file values, then flags the user changed.
func buildCrawlConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.New()

	configPathFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not
	// found. If no path specified, silently continue without a file.
	configPath := config.FindFile(configPathFlag)
	if configPath != "" {
		file, err := config.LoadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := file.Apply(cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	} else if configPathFlag != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPathFlag)
	}

	// Flags the user set override file values.
	if cmd.Flags().Changed("prefix") {
		if cfg.PathPrefix, err = cmd.Flags().GetString("prefix"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("delay") {
		if cfg.Delay, err = cmd.Flags().GetDuration("delay"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("concurrency") {
		if cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-attempts") {
		if cfg.MaxAttempts, err = cmd.Flags().GetInt("max-attempts"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("backoff") {
		if cfg.BackoffBase, err = cmd.Flags().GetDuration("backoff"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-pages") {
		if cfg.MaxPages, err = cmd.Flags().GetInt("max-pages"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("user-agent") {
		if cfg.UserAgent, err = cmd.Flags().GetString("user-agent"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("output") {
		if cfg.OutputRoot, err = cmd.Flags().GetString("output"); err != nil {
			return nil, err
		}
	}

	// The positional argument overrides the config file's start URL.
	if len(args) > 0 {
		cfg.StartURL = args[0]
	}

	return cfg, nil
}

// runCrawl executes the crawl and writes the snapshot, index, and summary.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger, markdownReport, showSpinner bool) error {
	dir, err := index.Open(cfg.OutputRoot, time.Now(), logger)
	if err != nil {
		return fmt.Errorf("failed to open output directory: %w", err)
	}

	f := fetcher.New(
		&http.Client{Timeout: cfg.Timeout},
		fetcher.WithDelay(cfg.Delay),
		fetcher.WithRetryPolicy(fetcher.RetryPolicy{
			MaxAttempts: cfg.MaxAttempts,
			BackoffBase: cfg.BackoffBase,
		}),
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithMaxBodySize(cfg.MaxBodySize),
		fetcher.WithLogger(logger),
	)

	extractOpts := []extract.Option{}
	if len(cfg.Selectors) > 0 {
		extractOpts = append(extractOpts, extract.WithSelectors(cfg.Selectors))
	}

	crawlOpts := []crawler.Option{
		crawler.WithConcurrency(cfg.Concurrency),
		crawler.WithMaxPages(cfg.MaxPages),
		crawler.WithLogger(logger),
	}

	var sp *spinner.Spinner
	if showSpinner {
		sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond,
			spinner.WithWriter(os.Stderr))
		sp.Suffix = " crawling " + cfg.StartURL
		// The callback runs on crawl worker goroutines while the spinner's
		// render loop reads Suffix, so writes go through the spinner mutex.
		crawlOpts = append(crawlOpts, crawler.WithPageCallback(func(pageURL string) {
			sp.Lock()
			sp.Suffix = " " + pageURL
			sp.Unlock()
		}))
		sp.Start()
		defer sp.Stop()
	}

	c := crawler.New(
		f,
		extract.New(extractOpts...),
		scope.New(cfg.StartURL, cfg.EffectivePathPrefix()),
		dir,
		crawlOpts...,
	)

	result, crawlErr := c.Crawl(ctx, cfg.StartURL)
	if sp != nil {
		sp.Stop()
	}
	if crawlErr != nil && result == nil {
		return crawlErr
	}
	if crawlErr != nil {
		// Cancelled mid-run: keep what was collected so far.
		fmt.Fprintf(os.Stderr, "Crawl interrupted: %v (writing partial index)\n", crawlErr)
	}

	// Index write failures never change the exit status: the text files
	// for completed pages are already on disk.
	indexPath, err := dir.WriteIndex(result.Records)
	if err != nil {
		if errors.Is(err, index.ErrNoRecords) {
			fmt.Fprintf(os.Stderr, "No pages yielded content, nothing to index (crawled %d pages)\n",
				result.Stats.PagesCrawled)
		} else {
			logger.Error("failed to write index", "error", err)
			fmt.Fprintf(os.Stderr, "Failed to write index: %v\n", err)
		}
		indexPath = ""
	}

	var writer report.Writer
	if markdownReport {
		writer = report.NewMarkdownWriter(os.Stdout)
	} else {
		writer = report.NewSimpleWriter(os.Stdout)
	}
	if _, err := writer.Write(&result.Stats); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	fmt.Printf("\nText files: %s\n", dir.Path())
	if indexPath != "" {
		fmt.Printf("Index:      %s\n", indexPath)
	}

	return crawlErr
}
