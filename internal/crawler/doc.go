// Package crawler implements the bounded breadth-first crawl.
// A Crawler owns the visited set and the collected records for one run and
// drives page processing layer by layer through a bounded worker pool.
package crawler
