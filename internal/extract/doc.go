// Package extract parses fetched HTML and pulls out the page text and
// outbound links. Text extraction prefers a designated main-content region,
// falling back to the full body when no selector matches.
package extract
