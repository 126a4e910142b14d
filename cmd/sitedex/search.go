package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sitedex/sitedex/internal/config"
	"github.com/sitedex/sitedex/internal/index"
	"github.com/sitedex/sitedex/internal/model"
	"github.com/sitedex/sitedex/internal/search"
)

// snippetWidth is the number of runes of context shown per result.
const snippetWidth = 120

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search a crawled index from the terminal",
		Long: `Search queries the JSON index produced by a previous crawl.

Multiple query terms are combined with AND: a page matches only when it
contains every term. Matching is case-insensitive and normalization-aware,
so full-width and half-width forms match each other. Results are ranked by
how often the terms occur.

By default the newest index under the output root is searched.

Examples:
  # Search the most recent crawl
  sitedex search admission

  # Multiple terms must all appear
  sitedex search library hours

  # Search a specific index file
  sitedex search --index ./2026-03-01/index-2026-03-01.json exam`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearchCmd,
	}

	cmd.Flags().StringP("index", "i", "",
		"Index file to search (default: newest index under the output root)")
	cmd.Flags().StringP("output", "o", "",
		"Output root directory to locate the newest index in (default: XDG data directory)")
	cmd.Flags().IntP("limit", "l", 10,
		"Maximum number of results to show (0 = unlimited)")

	return cmd
}

// runSearchCmd executes the search command.
func runSearchCmd(cmd *cobra.Command, args []string) error {
	records, indexPath, err := loadRecords(cmd)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	results := search.NewEngine(records).Search(query)

	if len(results) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No pages matched %q in %s\n", query, indexPath)
		return nil
	}

	shown := len(results)
	if limit > 0 && shown > limit {
		shown = limit
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d page(s) matched %q (showing %d):\n\n",
		len(results), query, shown)
	for _, result := range results[:shown] {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", result.URL)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n\n",
			search.Snippet(result.Content, result.Terms, snippetWidth))
	}

	return nil
}

// loadRecords loads the index named by --index, or the newest index under
// the output root.
func loadRecords(cmd *cobra.Command) ([]model.ScrapedRecord, string, error) {
	indexPath, err := cmd.Flags().GetString("index")
	if err != nil {
		return nil, "", err
	}
	if indexPath != "" {
		records, err := index.Load(indexPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load index %s: %w", indexPath, err)
		}
		return records, indexPath, nil
	}

	root, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, "", err
	}
	if root == "" {
		root = config.DefaultOutputRoot()
	}

	records, path, err := index.LoadLatest(root)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load index under %s: %w (run \"sitedex crawl\" first)", root, err)
	}
	return records, path, nil
}
