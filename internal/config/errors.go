package config

import "errors"

// Configuration validation errors returned by Config.Validate.
//
// Design decision: We use package-level sentinel errors rather than
// creating error instances in Validate. Callers can use errors.Is for
// programmatic handling while the messages remain human-readable.
var (
	// ErrNoSeedURL is returned when no seed URL was provided.
	ErrNoSeedURL = errors.New("no seed URL specified: provide the starting URL of the portal to crawl")

	// ErrInvalidSeedURL is returned when the seed URL cannot be parsed
	// or has no host component.
	ErrInvalidSeedURL = errors.New("invalid seed URL: must be an absolute URL with a host")

	// ErrInvalidSeedScheme is returned when the seed URL scheme is not
	// http or https. Other schemes cannot be crawled.
	ErrInvalidSeedScheme = errors.New("invalid seed URL scheme: must be http or https")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidDepth is returned when the maximum crawl depth is negative.
	// Use 0 to crawl only the seed page.
	ErrInvalidDepth = errors.New("invalid max depth: must be non-negative")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("invalid worker count: must be positive")

	// ErrInvalidDelay is returned when the politeness delay is negative.
	// Use 0 for no delay between requests.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidLimit is returned when the search result limit is not positive.
	ErrInvalidLimit = errors.New("invalid search limit: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
