package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sitedex/sitedex/internal/model"
)

// SimpleWriter outputs a human-readable crawl summary.
// This is the default format shown on the terminal after a crawl.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the crawl summary in plain text.
func (w *SimpleWriter) Write(stats *model.CrawlStats) (int, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Crawl summary for %s\n", stats.StartURL)
	fmt.Fprintf(&b, "  started:  %s\n", stats.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "  elapsed:  %s\n", stats.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, "  pages:    %d crawled, %d failed, %d skipped\n",
		stats.PagesCrawled, stats.PagesFailed, stats.PagesSkipped)
	fmt.Fprintf(&b, "  records:  %d\n", stats.Records)
	fmt.Fprintf(&b, "  layers:   %d %s\n", stats.Layers, layerSizes(stats))

	return w.output.Write([]byte(b.String()))
}

// layerSizes formats the per-layer URL counts, e.g. "(1 > 12 > 40)".
func layerSizes(stats *model.CrawlStats) string {
	if len(stats.LayerSizes) == 0 {
		return ""
	}
	parts := make([]string, len(stats.LayerSizes))
	for i, n := range stats.LayerSizes {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return "(" + strings.Join(parts, " > ") + ")"
}
