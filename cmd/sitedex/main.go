// Package main provides the entry point for the sitedex CLI.
//
// sitedex crawls a site section breadth-first, extracts the main text of
// every page, and writes a plain-text snapshot plus a JSON search index.
// The index can then be queried from the terminal or through a local
// search UI.
//
// Usage:
//
//	sitedex crawl <start-url>
//	sitedex search <query>
//	sitedex serve
//
// See --help for all available options.
package main

// main is the entry point for sitedex.
func main() {
	Execute()
}
