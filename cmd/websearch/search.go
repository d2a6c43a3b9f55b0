package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Senthilsivam41/feature-websearch/internal/config"
	"github.com/Senthilsivam41/feature-websearch/internal/database"
	"github.com/Senthilsivam41/feature-websearch/internal/llm"
	"github.com/Senthilsivam41/feature-websearch/internal/model"
	"github.com/Senthilsivam41/feature-websearch/internal/search"
	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search the crawled content in the local database",
		Long: `Search scans the locally stored pages for the query and prints matching
pages with context snippets.

When a local Ollama instance is reachable, the query is first decomposed
into semantic search terms and each result is annotated with a relevance
note. Augmentation is strictly best-effort: if Ollama is missing or slow,
search silently falls back to plain substring matching of the raw query.

Examples:
  # Search the default database
  websearch search golang concurrency

  # Case-sensitive search with more results
  websearch search --case-sensitive -n 10 ErrNotFound

  # Plain substring search without language model augmentation
  websearch search --no-llm golang

  # Markdown report to a file
  websearch search --markdown -o results.md golang`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearchCmd,
	}

	addSearchFlags(cmd)
	return cmd
}

// addSearchFlags registers the flags shared by search and ask.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("limit", "n", config.DefaultSearchLimit,
		"Maximum number of results")
	cmd.Flags().Bool("case-sensitive", false,
		"Match the query case-sensitively")
	cmd.Flags().StringP("model", "m", config.DefaultModel,
		"Ollama model used for query decomposition and annotation")
	cmd.Flags().String("ollama", config.DefaultOllamaURL,
		"Base URL of the Ollama API")
	cmd.Flags().Bool("no-llm", false,
		"Disable language model augmentation")
	cmd.Flags().String("db", "",
		"Database directory (default: XDG data directory)")

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().Bool("markdown", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

// runSearchCmd executes the search command.
func runSearchCmd(cmd *cobra.Command, args []string) error {
	cfg, query, err := buildSearchConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	db, engine, err := openSearchEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := engine.Search(cmd.Context(), query, search.Options{
		Limit:         cfg.SearchLimit,
		CaseSensitive: cfg.CaseSensitive,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return writeSearchReport(cfg, &model.SearchReport{
		Query:   query,
		Terms:   matchedTerms(results),
		Results: results,
	})
}

// matchedTerms collects the distinct terms that produced matches,
// preserving first-seen order.
func matchedTerms(results []model.SearchResult) []string {
	seen := make(map[string]bool, len(results))
	var terms []string
	for _, r := range results {
		if r.Term == "" || seen[r.Term] {
			continue
		}
		seen[r.Term] = true
		terms = append(terms, r.Term)
	}
	return terms
}

// buildSearchConfig creates a Config from the shared search flags and
// joins the positional arguments into the query string.
func buildSearchConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.SearchLimit, err = cmd.Flags().GetInt("limit")
	if err != nil {
		return nil, "", err
	}
	if cfg.SearchLimit <= 0 {
		return nil, "", config.ErrInvalidLimit
	}

	cfg.CaseSensitive, err = cmd.Flags().GetBool("case-sensitive")
	if err != nil {
		return nil, "", err
	}

	cfg.Model, err = cmd.Flags().GetString("model")
	if err != nil {
		return nil, "", err
	}

	cfg.OllamaURL, err = cmd.Flags().GetString("ollama")
	if err != nil {
		return nil, "", err
	}

	cfg.NoLLM, err = cmd.Flags().GetBool("no-llm")
	if err != nil {
		return nil, "", err
	}

	dbDir, err := cmd.Flags().GetString("db")
	if err != nil {
		return nil, "", err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, "", err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, "", err
	}
	if cfg.JSONReport && cfg.MarkdownReport {
		return nil, "", config.ErrConflictingReportFormats
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, "", err
	}

	return cfg, strings.Join(args, " "), nil
}

// openSearchEngine opens the database read-only and constructs the
// search engine, wiring in the Ollama client unless disabled.
func openSearchEngine(cfg *config.Config, logger *slog.Logger) (*database.CrawlDB, *search.Engine, error) {
	db, err := database.Open(cfg.DBDir, database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	opts := []search.EngineOption{search.WithLogger(logger)}
	if !cfg.NoLLM {
		client := llm.NewClient(
			llm.WithBaseURL(cfg.OllamaURL),
			llm.WithModel(cfg.Model),
		)
		opts = append(opts, search.WithCompleter(client))
		logger.Debug("language model augmentation enabled",
			"url", cfg.OllamaURL,
			"model", client.Model(),
		)
	}

	return db, search.New(db, opts...), nil
}

// writeSearchReport renders the report in the requested format.
func writeSearchReport(cfg *config.Config, report *model.SearchReport) error {
	output, closeOutput, err := openReportOutput(cfg)
	if err != nil {
		return err
	}
	defer closeOutput() //nolint:errcheck // Best effort cleanup

	if _, err := newReportWriter(cfg, output).WriteSearch(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
