// Package fetcher performs polite HTTP fetches with bounded retry.
// Every attempt is preceded by a fixed politeness delay, and failed
// attempts back off linearly before retrying.
package fetcher
