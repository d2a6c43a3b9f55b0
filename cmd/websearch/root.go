// Package main provides the entry point for the websearch CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Senthilsivam41/feature-websearch/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for websearch.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "websearch",
		Short: "Crawl a web domain and search the crawled content",
		Long: `websearch crawls all pages of a single web domain into a local SQLite
database, then searches the crawled content offline.

Crawling never leaves the seed URL's domain. Search runs entirely against
the local database; when a local Ollama instance is reachable, queries are
decomposed into semantic terms and results are annotated with relevance
notes. Without Ollama, search falls back to plain substring matching.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewExtractCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
// The logger masks credential values, so configured Authorization
// headers and tokens never appear in verbose output.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}
