package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// PageRecord is the stored representation of one successfully crawled page.
// Records are keyed by URL with last-write-wins upsert semantics, so a
// re-crawl of the same page simply overwrites the previous record.
//
// Design decision: We store extracted text rather than raw HTML because:
//  1. The search engine only ever matches against text content
//  2. Raw markup would inflate the database for no benefit
//  3. A content hash in Metadata is enough for change detection
type PageRecord struct {
	// URL is the normalized URL of the page. It is the upsert key.
	URL string `json:"url"`

	// Title is the page title from the <title> tag, or the literal
	// placeholder "No Title" when the document has none.
	Title string `json:"title"`

	// Content is the extracted text content of the page with script and
	// style subtrees removed. Limited to MaxContentSize bytes.
	Content string `json:"content"`

	// Images contains the absolute URLs of all images on the page in
	// encounter order. Duplicates are preserved.
	Images []string `json:"images,omitempty"`

	// Metadata holds auxiliary key/value data about the fetch, such as
	// the HTTP status code, content type, content hash, and crawl depth.
	// See the Meta* key constants.
	Metadata map[string]string `json:"metadata,omitempty"`

	// FetchedAt is when the page was fetched. Set by the store on upsert
	// if zero.
	FetchedAt time.Time `json:"fetched_at"`
}

// Metadata keys written by the crawler.
const (
	// MetaStatusCode is the HTTP status code of the fetch, as a decimal string.
	MetaStatusCode = "status_code"

	// MetaContentType is the Content-Type header of the response.
	MetaContentType = "content_type"

	// MetaContentHash is the SHA-256 hex digest of the raw response body.
	// Used for change detection between crawl runs.
	MetaContentHash = "content_hash"

	// MetaDepth is the crawl depth at which the page was discovered,
	// as a decimal string. The seed page has depth 0.
	MetaDepth = "depth"
)

// NoTitle is the placeholder title for documents without a <title> element.
const NoTitle = "No Title"

// MaxContentSize is the maximum size of stored text content in bytes.
// Larger content is truncated to prevent unbounded record growth from
// pathological pages.
const MaxContentSize = 512 * 1024 // 512 KB

// TruncateContent enforces MaxContentSize on the record's content.
// Call this after setting Content.
func (p *PageRecord) TruncateContent() {
	if len(p.Content) > MaxContentSize {
		p.Content = p.Content[:MaxContentSize]
	}
}

// HashBody returns the SHA-256 hex digest of a raw response body.
// The empty body hashes to the empty string, which keeps absent content
// distinguishable from real content in Metadata.
func HashBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
