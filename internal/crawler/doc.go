// Package crawler implements the domain-scoped, depth-bounded crawl engine.
//
// # Architecture
//
// The package is built around the Engine type, which drives a FIFO
// frontier of (URL, depth) tasks against a bounded worker pool. Three
// shared structures coordinate the workers:
//
//   - VisitedSet: normalized URLs already accepted into the frontier.
//     Its check-and-insert is atomic, which is what guarantees that no
//     URL is enqueued twice even when two workers discover it at once.
//   - Frontier: the concurrency-safe FIFO work queue. Level-order
//     scheduling gives breadth-first traversal.
//   - A PageSink (the store) receiving one record per fetched page.
//
// Fetch failures are page-local: they are logged and the task is
// dropped, never aborting the run. Only configuration errors (an
// unusable seed URL) are fatal.
//
// # Components
//
//   - Engine: orchestrates the crawl run
//   - Fetcher: performs HTTP GETs with timeout and size limits
//   - Extractor: turns HTML into title, text, links, and image URLs
//
// # Politeness
//
// Workers wait a configurable delay before each fetch, the pool size
// bounds concurrent requests, and an identifying User-Agent is sent
// with every request.
package crawler
