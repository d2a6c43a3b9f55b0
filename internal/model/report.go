package model

import "time"

// CrawlSummary captures the outcome of one crawl run.
// It is the unit the report writers consume after crawling finishes.
type CrawlSummary struct {
	// SeedURL is the URL the crawl started from.
	SeedURL string `json:"seed_url"`

	// Host is the domain the crawl was confined to.
	Host string `json:"host"`

	// URLsVisited is the number of distinct URLs dispatched for fetching.
	URLsVisited int `json:"urls_visited"`

	// PagesStored is the number of pages persisted to the store.
	PagesStored int `json:"pages_stored"`

	// PagesFailed is the number of pages dropped due to fetch failures.
	PagesFailed int `json:"pages_failed"`

	// MaxDepth is the link depth bound the crawl ran with.
	MaxDepth int `json:"max_depth"`

	// Elapsed is the wall-clock duration of the crawl.
	Elapsed time.Duration `json:"elapsed_ns"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`

	// Interrupted reports whether the crawl was cancelled before the
	// frontier drained (signal or context deadline). Results up to that
	// point are still valid.
	Interrupted bool `json:"interrupted"`
}

// SearchReport captures the outcome of one search against the store.
type SearchReport struct {
	// Query is the raw query as the user typed it.
	Query string `json:"query"`

	// Terms are the literal terms that were matched against content.
	// Without language model decomposition this is just the raw query.
	Terms []string `json:"terms,omitempty"`

	// Answer is the generated natural language answer, when requested
	// and available. Empty otherwise.
	Answer string `json:"answer,omitempty"`

	// Results are the matching pages in store scan order.
	Results []SearchResult `json:"results"`
}
