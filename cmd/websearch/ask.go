package main

import (
	"fmt"
	"log/slog"

	"github.com/Senthilsivam41/feature-websearch/internal/model"
	"github.com/Senthilsivam41/feature-websearch/internal/search"
	"github.com/spf13/cobra"
)

// NewAskCmd creates the ask command.
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>...",
		Short: "Ask a question about the crawled content",
		Long: `Ask searches the locally stored pages like the search command, then asks
the local Ollama instance for a natural language answer grounded in the
matching pages.

The answer requires Ollama. If it is unreachable or fails, the matching
pages are still printed, just without the generated answer.

Examples:
  # Ask a question against the default database
  websearch ask how does the site handle authentication

  # Use a specific model
  websearch ask -m mistral what are the deployment steps`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAskCmd,
	}

	addSearchFlags(cmd)
	return cmd
}

// runAskCmd executes the ask command.
func runAskCmd(cmd *cobra.Command, args []string) error {
	cfg, query, err := buildSearchConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.NoLLM {
		return fmt.Errorf("ask requires the language model; remove --no-llm or use the search command")
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	db, engine, err := openSearchEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	answer, results, err := engine.Answer(cmd.Context(), query, search.Options{
		Limit:         cfg.SearchLimit,
		CaseSensitive: cfg.CaseSensitive,
	})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	return writeSearchReport(cfg, &model.SearchReport{
		Query:   query,
		Terms:   matchedTerms(results),
		Answer:  answer,
		Results: results,
	})
}
