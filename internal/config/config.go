package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror the behavior of a polite, single-domain crawler: short
// timeouts, a small politeness delay, and a bounded worker pool.
const (
	// DefaultMaxDepth bounds link-following from the seed page.
	// Depth 0 is only the seed; each level of discovered links adds one.
	// 5 explores most portals thoroughly without runaway crawling.
	DefaultMaxDepth = 5

	// DefaultTimeout is the per-request timeout. Crawled portals are
	// regular clearnet sites, so a short timeout keeps failed pages from
	// stalling the whole run.
	DefaultTimeout = 10 * time.Second

	// DefaultDelay is the politeness delay between requests per worker.
	// 100ms is low enough to crawl quickly while avoiding hammering
	// small servers.
	DefaultDelay = 100 * time.Millisecond

	// DefaultWorkers is the number of concurrent fetches. Five workers
	// saturate most small sites without tripping rate limits.
	DefaultWorkers = 5

	// DefaultUserAgent identifies the crawler in HTTP requests.
	// A descriptive User-Agent lets site operators identify the traffic.
	DefaultUserAgent = "websearch/1.0 (+https://github.com/Senthilsivam41/feature-websearch)"

	// DefaultMaxBodySize limits the response body size to read.
	// 5MB covers any realistic HTML page while preventing memory
	// exhaustion from unexpected large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultSearchLimit is the maximum number of search results returned.
	DefaultSearchLimit = 5

	// DefaultOllamaURL is the base URL of a local Ollama instance used
	// for optional search augmentation.
	DefaultOllamaURL = "http://localhost:11434"

	// DefaultModel is the Ollama model used for query decomposition and
	// relevance annotation.
	DefaultModel = "llama3.1"

	// AppName is the application name used for XDG directory paths.
	AppName = "websearch"
)

// Config holds all runtime options for crawling and searching.
// It is populated from CLI flags and passed through the application via
// dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, SearchConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without benefit.
type Config struct {
	// SeedURL is the starting URL of the portal to crawl.
	// Its host defines the crawl scope: only URLs on exactly this host
	// are followed.
	SeedURL string

	// MaxDepth is the maximum crawl depth from the seed. The bound is
	// inclusive: pages at MaxDepth are fetched and stored but their
	// links are not followed.
	MaxDepth int

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// Delay is the politeness delay a worker waits before each fetch.
	// Zero disables the delay.
	Delay time.Duration

	// Workers is the maximum number of concurrent fetches.
	Workers int

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Larger responses are truncated.
	MaxBodySize int64

	// DBDir is the directory holding the SQLite database. Defaults to
	// the XDG data directory (~/.local/share/websearch on Linux).
	DBDir string

	// CaseSensitive makes search matching case-sensitive.
	CaseSensitive bool

	// SearchLimit is the maximum number of search results to return.
	SearchLimit int

	// OllamaURL is the base URL of the Ollama API used for search
	// augmentation. The capability is strictly optional: if the server
	// is unreachable, search falls back to raw-query matching.
	OllamaURL string

	// Model is the Ollama model identifier.
	Model string

	// NoLLM disables the language-model augmentation entirely, even if
	// an Ollama instance is reachable.
	NoLLM bool

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is an explicit path to the .websearch site file.
	// Empty means search the current directory and then the home
	// directory.
	ConfigFilePath string

	// Sites holds per-host overrides loaded from the site file.
	Sites *File

	// JSONReport emits reports as JSON. Mutually exclusive with
	// MarkdownReport.
	JSONReport bool

	// MarkdownReport emits reports as GitHub-flavored Markdown.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to this path instead of stdout.
	ReportFile string
}

// NewConfig creates a Config with default values.
// Many defaults are non-zero, so callers must start from this constructor
// rather than a zero Config.
func NewConfig() *Config {
	return &Config{
		MaxDepth:    DefaultMaxDepth,
		Timeout:     DefaultTimeout,
		Delay:       DefaultDelay,
		Workers:     DefaultWorkers,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		SearchLimit: DefaultSearchLimit,
		OllamaURL:   DefaultOllamaURL,
		Model:       DefaultModel,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for websearch.
// On Linux: ~/.local/share/websearch
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for websearch.
// On Linux: ~/.config/websearch
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns a sentinel error
// describing the first problem found. It is called once after flag
// parsing, before any fetch is attempted, so configuration errors are
// the only errors that abort a run.
func (c *Config) Validate() error {
	if err := c.validateSeed(); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxDepth < 0 {
		return ErrInvalidDepth
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.Delay < 0 {
		return ErrInvalidDelay
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.SearchLimit <= 0 {
		return ErrInvalidLimit
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// validateSeed checks that the seed URL is present, parseable, and uses
// an http or https scheme with a non-empty host.
func (c *Config) validateSeed() error {
	if c.SeedURL == "" {
		return ErrNoSeedURL
	}
	u, err := url.Parse(c.SeedURL)
	if err != nil {
		return ErrInvalidSeedURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidSeedScheme
	}
	if u.Host == "" {
		return ErrInvalidSeedURL
	}
	return nil
}

// SiteFor returns the merged per-host overrides for the given host.
// When no site file was loaded it returns the zero SiteConfig.
func (c *Config) SiteFor(host string) SiteConfig {
	if c.Sites == nil {
		return SiteConfig{}
	}
	return c.Sites.SiteFor(host)
}
