// Package database provides SQLite-backed persistence for crawled pages.
//
// The store outlives a single crawl run and is shared between crawl runs
// and the search engine. All mutation goes through SQLite's single
// writer, which serializes concurrent upserts from crawl workers; reads
// take a snapshot at query time.
//
// Design decision: We use modernc.org/sqlite (a pure-Go driver) rather
// than cgo-based drivers so the binary cross-compiles without a C
// toolchain.
package database
