package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Senthilsivam41/feature-websearch/internal/model"
)

// DBFileName is the SQLite database file name inside the data directory.
const DBFileName = "websearch.db"

// imageDelimiter separates image URLs in the stored column.
// Commas cannot appear unencoded in URLs, so splitting is unambiguous.
const imageDelimiter = ","

// CrawlDB stores page records keyed by URL with upsert semantics.
// It manages connection pooling and owns the schema.
type CrawlDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures CrawlDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if
	// they don't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging, which lets search reads
	// proceed while crawl workers write.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a CrawlDB in the given directory.
// If CreateIfNotExists is false and the database doesn't exist, an
// error is returned instead of creating an empty corpus; search against
// a database that was never crawled is almost always a user mistake.
func Open(dbDir string, opts Options) (*CrawlDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (crawl first, or use CreateIfNotExists)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; a single connection also
	// serializes the crawl workers' upserts.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CrawlDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Close closes the database connection.
func (cdb *CrawlDB) Close() error {
	return cdb.db.Close()
}

// Path returns the path of the underlying database file.
func (cdb *CrawlDB) Path() string {
	return cdb.dbPath
}

// createTables creates the schema if it doesn't exist.
func (cdb *CrawlDB) createTables() error {
	schema := `
	-- One row per crawled page, keyed by normalized URL.
	CREATE TABLE IF NOT EXISTS web_pages (
		url TEXT PRIMARY KEY,
		content TEXT,
		title TEXT,
		images TEXT,
		metadata TEXT,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_web_pages_fetched ON web_pages(fetched_at);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// UpsertPage inserts or overwrites a page record keyed by URL.
// Last write wins; re-crawling a page replaces its previous record.
func (cdb *CrawlDB) UpsertPage(ctx context.Context, record *model.PageRecord) error {
	metadataJSON, err := json.Marshal(record.Metadata)
	if err != nil {
		return fmt.Errorf("failed to serialize metadata: %w", err)
	}

	fetchedAt := record.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	query := `
	INSERT INTO web_pages (url, content, title, images, metadata, fetched_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(url) DO UPDATE SET
		content = excluded.content,
		title = excluded.title,
		images = excluded.images,
		metadata = excluded.metadata,
		fetched_at = excluded.fetched_at
	`

	_, err = cdb.db.ExecContext(ctx, query,
		record.URL,
		record.Content,
		record.Title,
		strings.Join(record.Images, imageDelimiter),
		string(metadataJSON),
		fetchedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert page: %w", err)
	}
	return nil
}

// GetPage retrieves a page record by URL.
// Returns (nil, nil) when the URL is absent.
func (cdb *CrawlDB) GetPage(ctx context.Context, url string) (*model.PageRecord, error) {
	query := `
	SELECT url, content, title, images, metadata, fetched_at
	FROM web_pages
	WHERE url = ?
	`

	record, err := scanPage(cdb.db.QueryRowContext(ctx, query, url))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return record, nil
}

// ListPages returns a snapshot of all stored records ordered by URL.
// The ordering is stable so repeated searches over an unchanged corpus
// return results in the same order.
func (cdb *CrawlDB) ListPages(ctx context.Context) ([]*model.PageRecord, error) {
	query := `
	SELECT url, content, title, images, metadata, fetched_at
	FROM web_pages
	ORDER BY url
	`

	rows, err := cdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var records []*model.PageRecord
	for rows.Next() {
		record, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// CountPages returns the number of stored records.
func (cdb *CrawlDB) CountPages(ctx context.Context) (int, error) {
	var count int
	err := cdb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM web_pages").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}

// rowScanner abstracts sql.Row and sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanPage reads one web_pages row into a PageRecord.
func scanPage(row rowScanner) (*model.PageRecord, error) {
	var record model.PageRecord
	var images, metadataJSON, fetchedAt string

	if err := row.Scan(
		&record.URL,
		&record.Content,
		&record.Title,
		&images,
		&metadataJSON,
		&fetchedAt,
	); err != nil {
		return nil, err
	}

	if images != "" {
		record.Images = strings.Split(images, imageDelimiter)
	}
	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &record.Metadata); err != nil {
			return nil, fmt.Errorf("failed to parse metadata: %w", err)
		}
	}
	record.FetchedAt = parseTimestamp(fetchedAt)

	return &record, nil
}

// timestampFormats contains the timestamp formats SQLite may return.
// More specific formats come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp parses a timestamp string with multiple fallback
// formats; SQLite's output format depends on how the value was written.
// Returns zero time if nothing matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
