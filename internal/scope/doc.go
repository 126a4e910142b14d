// Package scope provides URL normalization and crawl scope checks.
// The scope of a crawl is a hostname plus a path prefix; only http(s) URLs
// on that host under that prefix are eligible for crawling.
package scope
