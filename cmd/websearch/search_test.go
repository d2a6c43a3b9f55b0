package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Senthilsivam41/feature-websearch/internal/config"
	"github.com/Senthilsivam41/feature-websearch/internal/database"
	"github.com/Senthilsivam41/feature-websearch/internal/model"
)

// TestNewSearchCmd tests the search command creation.
func TestNewSearchCmd(t *testing.T) {
	t.Parallel()

	cmd := NewSearchCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "search <query>..." {
			t.Errorf("expected use 'search <query>...', got %q", cmd.Use)
		}
	})

	t.Run("has limit flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("limit")
		if flag == nil {
			t.Fatal("expected limit flag")
		}
		if flag.Shorthand != "n" {
			t.Errorf("expected shorthand 'n', got %q", flag.Shorthand)
		}
	})

	t.Run("has model flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("model")
		if flag == nil {
			t.Fatal("expected model flag")
		}
		if flag.Shorthand != "m" {
			t.Errorf("expected shorthand 'm', got %q", flag.Shorthand)
		}
	})

	t.Run("has augmentation flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"ollama", "no-llm", "case-sensitive", "db", "json", "markdown", "output"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})
}

// TestBuildSearchConfig tests flag parsing for the search command.
func TestBuildSearchConfig(t *testing.T) {
	t.Parallel()

	t.Run("joins query arguments", func(t *testing.T) {
		t.Parallel()

		cmd := NewSearchCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("ParseFlags() error = %v", err)
		}
		cfg, query, err := buildSearchConfig(cmd, []string{"golang", "worker", "pools"})
		if err != nil {
			t.Fatalf("buildSearchConfig() error = %v", err)
		}
		if query != "golang worker pools" {
			t.Errorf("query = %q, want %q", query, "golang worker pools")
		}
		if cfg.SearchLimit != config.DefaultSearchLimit {
			t.Errorf("SearchLimit = %d, want %d", cfg.SearchLimit, config.DefaultSearchLimit)
		}
	})

	t.Run("rejects non-positive limit", func(t *testing.T) {
		t.Parallel()

		cmd := NewSearchCmd()
		if err := cmd.ParseFlags([]string{"-n", "0"}); err != nil {
			t.Fatalf("ParseFlags() error = %v", err)
		}
		if _, _, err := buildSearchConfig(cmd, []string{"x"}); !errors.Is(err, config.ErrInvalidLimit) {
			t.Errorf("error = %v, want %v", err, config.ErrInvalidLimit)
		}
	})

	t.Run("rejects conflicting report formats", func(t *testing.T) {
		t.Parallel()

		cmd := NewSearchCmd()
		if err := cmd.ParseFlags([]string{"--json", "--markdown"}); err != nil {
			t.Fatalf("ParseFlags() error = %v", err)
		}
		if _, _, err := buildSearchConfig(cmd, []string{"x"}); !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("error = %v, want %v", err, config.ErrConflictingReportFormats)
		}
	})
}

// seedDatabase creates a database with a few pages for search tests.
func seedDatabase(t *testing.T) string {
	t.Helper()

	dbDir := t.TempDir()
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	pages := []*model.PageRecord{
		{
			URL:     "http://blog.example/go",
			Title:   "Go Patterns",
			Content: "worker pools bound concurrency in golang services",
		},
		{
			URL:     "http://blog.example/ops",
			Title:   "Operations",
			Content: "deployment notes with nothing else",
		},
	}
	for _, p := range pages {
		if err := db.UpsertPage(context.Background(), p); err != nil {
			t.Fatalf("UpsertPage() error = %v", err)
		}
	}
	return dbDir
}

// TestSearchCommand tests search end to end through the CLI.
func TestSearchCommand(t *testing.T) {
	t.Parallel()

	t.Run("finds matching page", func(t *testing.T) {
		t.Parallel()

		dbDir := seedDatabase(t)
		reportFile := filepath.Join(t.TempDir(), "results.json")

		cmd := NewRootCmd()
		cmd.SetArgs([]string{
			"search", "--no-llm", "--json",
			"--db", dbDir,
			"-o", reportFile,
			"golang",
		})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		data, err := os.ReadFile(reportFile)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		var got model.SearchReport
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("report is not valid JSON: %v", err)
		}
		if got.Query != "golang" {
			t.Errorf("Query = %q, want %q", got.Query, "golang")
		}
		if len(got.Results) != 1 {
			t.Fatalf("got %d results, want 1", len(got.Results))
		}
		if got.Results[0].URL != "http://blog.example/go" {
			t.Errorf("URL = %q", got.Results[0].URL)
		}
	})

	t.Run("no matches yields empty results", func(t *testing.T) {
		t.Parallel()

		dbDir := seedDatabase(t)
		reportFile := filepath.Join(t.TempDir(), "results.json")

		cmd := NewRootCmd()
		cmd.SetArgs([]string{
			"search", "--no-llm", "--json",
			"--db", dbDir,
			"-o", reportFile,
			"absent-term",
		})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		data, err := os.ReadFile(reportFile)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		var got model.SearchReport
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("report is not valid JSON: %v", err)
		}
		if len(got.Results) != 0 {
			t.Errorf("got %d results, want 0", len(got.Results))
		}
	})

	t.Run("missing database fails", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetArgs([]string{
			"search", "--no-llm",
			"--db", filepath.Join(t.TempDir(), "empty"),
			"golang",
		})
		if err := cmd.Execute(); err == nil {
			t.Error("Execute() error = nil, want error for missing database")
		}
	})
}
