package database

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Senthilsivam41/feature-websearch/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *CrawlDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// testRecord returns a fully populated record for round-trip tests.
func testRecord(url string) *model.PageRecord {
	return &model.PageRecord{
		URL:     url,
		Title:   "Example Page",
		Content: "some extracted text",
		Images: []string{
			"http://example.com/a.png",
			"http://example.com/b.png",
		},
		Metadata: map[string]string{
			model.MetaStatusCode:  "200",
			model.MetaContentType: "text/html",
		},
		FetchedAt: time.Now(),
	}
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database file in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "nested", "dir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, DBFileName)); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false fails for missing database", func(t *testing.T) {
		t.Parallel()

		opts := Options{CreateIfNotExists: false, EnableWAL: true}
		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected error for missing database")
		}
	})

	t.Run("reopens existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		if err := db.UpsertPage(context.Background(), testRecord("http://example.com/")); err != nil {
			t.Fatalf("failed to upsert: %v", err)
		}
		_ = db.Close()

		reopened, err := Open(dir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer reopened.Close()

		count, err := reopened.CountPages(context.Background())
		if err != nil {
			t.Fatalf("failed to count pages: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 page after reopen, got %d", count)
		}
	})
}

// TestUpsertPage tests upsert and retrieval round-trips.
func TestUpsertPage(t *testing.T) {
	t.Parallel()

	t.Run("upsert then get returns equal record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		want := testRecord("http://example.com/page")

		if err := db.UpsertPage(ctx, want); err != nil {
			t.Fatalf("failed to upsert: %v", err)
		}

		got, err := db.GetPage(ctx, want.URL)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if got == nil {
			t.Fatal("expected record, got nil")
		}

		if got.URL != want.URL || got.Title != want.Title || got.Content != want.Content {
			t.Errorf("round-trip mismatch: got %+v, want %+v", got, want)
		}
		if !reflect.DeepEqual(got.Images, want.Images) {
			t.Errorf("images mismatch: got %v, want %v", got.Images, want.Images)
		}
		if !reflect.DeepEqual(got.Metadata, want.Metadata) {
			t.Errorf("metadata mismatch: got %v, want %v", got.Metadata, want.Metadata)
		}
		if got.FetchedAt.IsZero() {
			t.Error("expected non-zero fetched_at")
		}
	})

	t.Run("second upsert overwrites with last write", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		first := testRecord("http://example.com/page")
		if err := db.UpsertPage(ctx, first); err != nil {
			t.Fatalf("failed to upsert: %v", err)
		}

		second := testRecord("http://example.com/page")
		second.Title = "Updated"
		second.Content = "new text"
		if err := db.UpsertPage(ctx, second); err != nil {
			t.Fatalf("failed to upsert again: %v", err)
		}

		got, err := db.GetPage(ctx, first.URL)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if got.Title != "Updated" || got.Content != "new text" {
			t.Errorf("expected overwritten record, got %+v", got)
		}

		count, err := db.CountPages(ctx)
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 1 {
			t.Errorf("expected exactly 1 record after overwrite, got %d", count)
		}
	})

	t.Run("empty images round-trip as nil", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		rec := testRecord("http://example.com/noimg")
		rec.Images = nil
		if err := db.UpsertPage(ctx, rec); err != nil {
			t.Fatalf("failed to upsert: %v", err)
		}

		got, err := db.GetPage(ctx, rec.URL)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if got.Images != nil {
			t.Errorf("expected nil images, got %v", got.Images)
		}
	})

	t.Run("get absent URL returns nil without error", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		got, err := db.GetPage(context.Background(), "http://example.com/absent")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil for absent URL, got %+v", got)
		}
	})
}

// TestListPages tests corpus snapshots.
func TestListPages(t *testing.T) {
	t.Parallel()

	t.Run("returns all records ordered by URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		for _, url := range []string{
			"http://example.com/c",
			"http://example.com/a",
			"http://example.com/b",
		} {
			if err := db.UpsertPage(ctx, testRecord(url)); err != nil {
				t.Fatalf("failed to upsert %s: %v", url, err)
			}
		}

		records, err := db.ListPages(ctx)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(records))
		}
		want := []string{
			"http://example.com/a",
			"http://example.com/b",
			"http://example.com/c",
		}
		for i, w := range want {
			if records[i].URL != w {
				t.Errorf("record %d: got %q, want %q", i, records[i].URL, w)
			}
		}
	})

	t.Run("empty database lists nothing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		records, err := db.ListPages(context.Background())
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected empty snapshot, got %d records", len(records))
		}
	})
}

// TestParseTimestamp tests the multi-format timestamp fallback.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		zero bool
	}{
		{name: "sqlite default", in: "2026-08-30 12:34:56"},
		{name: "iso with Z", in: "2026-08-30T12:34:56Z"},
		{name: "garbage is zero time", in: "not-a-time", zero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseTimestamp(tt.in)
			if got.IsZero() != tt.zero {
				t.Errorf("parseTimestamp(%q).IsZero() = %v, want %v", tt.in, got.IsZero(), tt.zero)
			}
		})
	}
}
