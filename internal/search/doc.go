// Package search provides the in-memory full-text index over scraped
// records. Content is segmented into words per Unicode UAX #29, which
// handles Japanese and other non-space-delimited scripts, and terms are
// NFKC-normalized and case-folded before indexing and querying.
package search
