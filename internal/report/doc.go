// Package report renders crawl run summaries.
// It provides a plain-text writer for terminals and a Markdown writer for
// documentation and sharing.
package report
