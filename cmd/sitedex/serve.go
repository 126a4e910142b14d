package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sitedex/sitedex/internal/config"
	"github.com/sitedex/sitedex/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a local web UI for searching a crawled index",
		Long: `Serve starts a local HTTP server with a search page over a crawled index.

By default it serves the newest index under the output root. The server
binds to localhost only; it is a personal search tool, not a public
service.

Endpoints:
  GET /                browser search page
  GET /api/search?q=   JSON search results
  GET /api/index       raw index records

Examples:
  # Serve the most recent crawl
  sitedex serve

  # Serve a specific index on a different port
  sitedex serve --index ./2026-03-01/index-2026-03-01.json --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", config.DefaultServeAddr,
		"Listen address for the search UI")
	cmd.Flags().StringP("index", "i", "",
		"Index file to serve (default: newest index under the output root)")
	cmd.Flags().StringP("output", "o", "",
		"Output root directory to locate the newest index in (default: XDG data directory)")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	records, indexPath, err := loadRecords(cmd)
	if err != nil {
		return err
	}

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %d pages from %s\n", len(records), indexPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Search UI: http://%s/\n", addr)

	return server.New(records, logger).ListenAndServe(addr)
}
