package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Senthilsivam41/feature-websearch/internal/model"
)

// TextWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type TextWriter struct {
	baseWriter

	// verbose enables additional detail in the output, such as
	// relevance notes and image lists per result.
	verbose bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = verbose
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteCrawl outputs the crawl summary in human-readable format.
func (w *TextWriter) WriteCrawl(summary *model.CrawlSummary) (int, error) {
	var sb strings.Builder

	writeRule(&sb, "=")
	sb.WriteString("                          CRAWL REPORT\n")
	writeRule(&sb, "=")
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Seed URL:      %s\n", summary.SeedURL))
	sb.WriteString(fmt.Sprintf("Domain:        %s\n", summary.Host))
	sb.WriteString(fmt.Sprintf("Started:       %s\n", summary.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Max Depth:     %d\n", summary.MaxDepth))
	sb.WriteString(fmt.Sprintf("Elapsed:       %s\n", summary.Elapsed.Round(timeRounding)))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  URLs visited: %d\n", summary.URLsVisited))
	sb.WriteString(fmt.Sprintf("  Pages stored: %d\n", summary.PagesStored))
	sb.WriteString(fmt.Sprintf("  Pages failed: %d\n", summary.PagesFailed))
	sb.WriteString("\n")

	if summary.Interrupted {
		sb.WriteString("Status: INTERRUPTED (partial results)\n")
	} else {
		sb.WriteString("Status: Complete\n")
	}

	writeRule(&sb, "=")

	return w.output.Write([]byte(sb.String()))
}

// WriteSearch outputs the search report in human-readable format.
func (w *TextWriter) WriteSearch(report *model.SearchReport) (int, error) {
	var sb strings.Builder

	writeRule(&sb, "=")
	sb.WriteString("                         SEARCH RESULTS\n")
	writeRule(&sb, "=")
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Query: %s\n", report.Query))
	if len(report.Terms) > 0 {
		sb.WriteString(fmt.Sprintf("Terms: %s\n", strings.Join(report.Terms, ", ")))
	}
	sb.WriteString("\n")

	if report.Answer != "" {
		writeRule(&sb, "-")
		sb.WriteString("ANSWER\n")
		writeRule(&sb, "-")
		sb.WriteString("\n")
		sb.WriteString(report.Answer)
		sb.WriteString("\n\n")
	}

	writeRule(&sb, "-")
	sb.WriteString(fmt.Sprintf("MATCHES (%d)\n", len(report.Results)))
	writeRule(&sb, "-")
	sb.WriteString("\n")

	if len(report.Results) == 0 {
		sb.WriteString("  No pages matched the query.\n")
	}
	for i, r := range report.Results {
		w.writeResult(&sb, i+1, r)
	}

	writeRule(&sb, "=")

	return w.output.Write([]byte(sb.String()))
}

// writeResult writes one search result entry.
func (w *TextWriter) writeResult(sb *strings.Builder, n int, r model.SearchResult) {
	sb.WriteString(fmt.Sprintf("%d. %s\n", n, r.Title))
	sb.WriteString(fmt.Sprintf("   URL:     %s\n", r.URL))
	sb.WriteString(fmt.Sprintf("   Term:    %s\n", r.Term))
	sb.WriteString(fmt.Sprintf("   Snippet: %s\n", r.Snippet))

	if w.verbose {
		if r.Relevance != "" {
			sb.WriteString(fmt.Sprintf("   Relevance: %s\n", r.Relevance))
		}
		for _, img := range r.Images {
			sb.WriteString(fmt.Sprintf("   Image:   %s\n", img))
		}
	}
	sb.WriteString("\n")
}

// writeRule writes a 70-character horizontal rule of the given character.
func writeRule(sb *strings.Builder, char string) {
	sb.WriteString(strings.Repeat(char, 70))
	sb.WriteString("\n")
}
