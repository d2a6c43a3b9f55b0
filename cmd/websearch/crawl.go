package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Senthilsivam41/feature-websearch/internal/config"
	"github.com/Senthilsivam41/feature-websearch/internal/crawler"
	"github.com/Senthilsivam41/feature-websearch/internal/database"
	"github.com/Senthilsivam41/feature-websearch/internal/model"
	"github.com/spf13/cobra"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <seed-url>",
		Short: "Crawl all pages of a single web domain into the local database",
		Long: `Crawl fetches the seed URL and follows links breadth-first, staying on
the seed's domain. Each fetched page is stored in the local SQLite
database: title, extracted text content, image URLs, and fetch metadata.
Re-crawling a domain updates existing pages in place.

Failed pages (network errors, timeouts, non-2xx responses) are logged
and skipped; the crawl continues with the remaining pages.

Examples:
  # Crawl a site with defaults (depth 5, 5 workers)
  websearch crawl https://blog.example.com

  # Shallow crawl with a longer timeout
  websearch crawl -d 2 -t 30s https://docs.example.com

  # Crawl politely with a 1s delay between requests per worker
  websearch crawl --delay 1s https://smallsite.example

  # Write a JSON crawl report to a file
  websearch crawl --json -o report.json https://blog.example.com

Configuration file (.websearch) example:
  sites:
    docs.example.com:
      userAgent: "custom-agent/1.0"
      headers:
        Authorization: "Bearer token"
      depth: 3
      delay: "1s"`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawlCmd,
	}

	// Crawl behavior flags
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Maximum link depth from the seed (0 crawls only the seed page)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().Duration("delay", config.DefaultDelay,
		"Politeness delay before each request per worker")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of concurrent fetches")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with requests")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body size in bytes to read")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Site configuration file path (default: .websearch in current or home directory)")
	cmd.Flags().String("db", "",
		"Database directory (default: XDG data directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCrawlConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCrawl(ctx, cfg, logger)
}

// buildCrawlConfig creates a Config from cobra command flags.
func buildCrawlConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.SeedURL = args[0]
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.MaxDepth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Delay, err = cmd.Flags().GetDuration("delay")
	if err != nil {
		return nil, err
	}

	cfg.Workers, err = cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	dbDir, err := cmd.Flags().GetString("db")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	// Load per-site configurations from the site file.
	// An explicitly specified file must exist; otherwise a missing file
	// just means no overrides.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Sites, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.Sites = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// runCrawl executes the crawl.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	seed, err := url.Parse(cfg.SeedURL)
	if err != nil {
		return fmt.Errorf("invalid seed URL %q: %w", cfg.SeedURL, err)
	}
	host := seed.Host

	// Per-host overrides from the site file
	site := cfg.SiteFor(host)
	userAgent := cfg.UserAgent
	if site.UserAgent != "" {
		userAgent = site.UserAgent
	}
	maxDepth := cfg.MaxDepth
	if site.Depth > 0 {
		maxDepth = site.Depth
	}
	delay := cfg.Delay
	if site.Delay > 0 {
		delay = time.Duration(site.Delay)
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	logger.Info("database opened", "path", db.Path())

	fetcherOpts := []crawler.FetcherOption{
		crawler.WithUserAgent(userAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
	}
	if len(site.Headers) > 0 {
		fetcherOpts = append(fetcherOpts, crawler.WithHeaders(site.Headers))
	}
	fetcher := crawler.NewFetcher(cfg.Timeout, fetcherOpts...)

	engine := crawler.New(fetcher, db,
		crawler.WithMaxDepth(maxDepth),
		crawler.WithWorkers(cfg.Workers),
		crawler.WithDelay(delay),
		crawler.WithLogger(logger),
	)

	fmt.Printf("Crawling %s...\n", host)
	startedAt := time.Now()

	stats, err := engine.Run(ctx, cfg.SeedURL)
	interrupted := false
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		interrupted = true
		fmt.Fprintln(os.Stderr, "Crawl interrupted; partial results were saved.")
	default:
		return fmt.Errorf("crawl failed: %w", err)
	}

	fmt.Printf("Crawl completed in %s\n\n", stats.Elapsed.Round(time.Millisecond))

	summary := &model.CrawlSummary{
		SeedURL:     cfg.SeedURL,
		Host:        host,
		URLsVisited: stats.URLsVisited,
		PagesStored: stats.PagesStored,
		PagesFailed: stats.PagesFailed,
		MaxDepth:    maxDepth,
		Elapsed:     stats.Elapsed,
		StartedAt:   startedAt,
		Interrupted: interrupted,
	}

	output, closeOutput, err := openReportOutput(cfg)
	if err != nil {
		return err
	}
	defer closeOutput() //nolint:errcheck // Best effort cleanup

	if _, err := newReportWriter(cfg, output).WriteCrawl(summary); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
