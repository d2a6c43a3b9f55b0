package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/Senthilsivam41/feature-websearch/internal/config"
	"github.com/Senthilsivam41/feature-websearch/internal/crawler"
	"github.com/spf13/cobra"
)

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <url>",
		Short: "Fetch a single page and print its content blocks",
		Long: `Extract fetches one page without crawling or touching the database and
prints its content blocks. With --focus, only the blocks containing the
focus term (case-insensitive) are printed; without it, every non-empty
block is printed.

This is useful for checking what the crawler would extract from a page,
or for pulling a specific section out of a known URL.

Examples:
  # Print every content block of a page
  websearch extract https://docs.example.com/install

  # Only the blocks mentioning "docker"
  websearch extract -f docker https://docs.example.com/install

  # Machine-readable output
  websearch extract --json -f docker https://docs.example.com/install`,
		Args: cobra.ExactArgs(1),
		RunE: runExtractCmd,
	}

	cmd.Flags().StringP("focus", "f", "",
		"Only print blocks containing this term (case-insensitive)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for the request")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with the request")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body size in bytes to read")
	cmd.Flags().BoolP("json", "j", false,
		"Output blocks as a JSON array")

	return cmd
}

// runExtractCmd executes the extract command.
func runExtractCmd(cmd *cobra.Command, args []string) error {
	pageURL := args[0]
	if u, err := url.Parse(pageURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid URL %q: scheme must be http or https", pageURL)
	}

	focus, err := cmd.Flags().GetString("focus")
	if err != nil {
		return err
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	userAgent, err := cmd.Flags().GetString("user-agent")
	if err != nil {
		return err
	}
	maxBodySize, err := cmd.Flags().GetInt64("max-body-size")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	fetcher := crawler.NewFetcher(timeout,
		crawler.WithUserAgent(userAgent),
		crawler.WithMaxBodySize(maxBodySize),
	)
	resp, err := fetcher.Fetch(cmd.Context(), pageURL)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	extractor, err := crawler.NewExtractor(pageURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	blocks, err := extractor.ExtractBlocks(bytes.NewReader(resp.Body), focus)
	if err != nil {
		return fmt.Errorf("failed to parse page: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(blocks)
	}

	if len(blocks) == 0 {
		if focus != "" {
			fmt.Fprintf(out, "No blocks containing %q found.\n", focus)
		} else {
			fmt.Fprintln(out, "No content blocks found.")
		}
		return nil
	}
	for i, block := range blocks {
		fmt.Fprintf(out, "[%d] %s\n\n", i+1, block)
	}
	return nil
}
