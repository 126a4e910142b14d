package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/sitedex/sitedex/internal/model"
)

// MarkdownWriter outputs crawl summaries in GitHub-flavored Markdown.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
//  1. Type-safe markdown generation
//  2. Support for tables, lists, and code blocks
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the crawl summary in Markdown format.
func (w *MarkdownWriter) Write(stats *model.CrawlStats) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Crawl Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Start URL", "`" + stats.StartURL + "`"},
			{"Started", stats.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", stats.Elapsed.Round(time.Millisecond).String()},
			{"Pages crawled", strconv.Itoa(stats.PagesCrawled)},
			{"Pages failed", strconv.Itoa(stats.PagesFailed)},
			{"Pages skipped", strconv.Itoa(stats.PagesSkipped)},
			{"Records indexed", strconv.Itoa(stats.Records)},
		},
	})
	md.PlainText("")

	if len(stats.LayerSizes) > 0 {
		md.H2("Layers")
		md.PlainText("")

		rows := make([][]string, len(stats.LayerSizes))
		for i, n := range stats.LayerSizes {
			rows[i] = []string{strconv.Itoa(i + 1), strconv.Itoa(n)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Layer", "URLs dispatched"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}
