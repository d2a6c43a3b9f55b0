package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/Senthilsivam41/feature-websearch/internal/model"
	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteCrawl outputs the crawl summary in Markdown format.
func (w *MarkdownWriter) WriteCrawl(summary *model.CrawlSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed URL", "`" + summary.SeedURL + "`"},
			{"Domain", summary.Host},
			{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Max Depth", strconv.Itoa(summary.MaxDepth)},
			{"URLs Visited", strconv.Itoa(summary.URLsVisited)},
			{"Pages Stored", strconv.Itoa(summary.PagesStored)},
			{"Pages Failed", strconv.Itoa(summary.PagesFailed)},
			{"Elapsed", summary.Elapsed.Round(timeRounding).String()},
			{"Status", crawlStatusText(summary)},
		},
	})
	md.PlainText("")

	switch {
	case summary.Interrupted:
		md.Warningf(
			"Crawl was interrupted. %d page(s) were stored before it stopped.",
			summary.PagesStored,
		)
	case summary.PagesFailed > 0:
		md.Notef(
			"%d page(s) could not be fetched and were skipped.",
			summary.PagesFailed,
		)
	default:
		md.Tip("All reachable pages were fetched and stored.")
	}
	md.PlainText("")

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteSearch outputs the search report in Markdown format.
func (w *MarkdownWriter) WriteSearch(report *model.SearchReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Search Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Query", report.Query},
			{"Terms", strings.Join(report.Terms, ", ")},
			{"Results", strconv.Itoa(len(report.Results))},
		},
	})
	md.PlainText("")

	if report.Answer != "" {
		md.H2("Answer")
		md.PlainText("")
		md.Blockquote(report.Answer)
		md.PlainText("")
	}

	md.H2("Results")
	md.PlainText("")

	if len(report.Results) == 0 {
		md.PlainText("No pages matched the query.")
		md.PlainText("")
	} else {
		w.writeResultsTable(md, report.Results)
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeResultsTable writes the matched pages with snippets.
func (w *MarkdownWriter) writeResultsTable(md *markdown.Markdown, results []model.SearchResult) {
	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			truncateString(r.Title, 40),
			"`" + r.URL + "`",
			r.Term,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Title", "URL", "Matched Term"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, r := range results {
		detail := r.Snippet
		if r.Relevance != "" {
			detail += "\n\n" + r.Relevance
		}
		md.Details(r.Title, detail)
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by websearch*")
}

// crawlStatusText returns the status text based on summary state.
func crawlStatusText(summary *model.CrawlSummary) string {
	if summary.Interrupted {
		return "⚠️ Interrupted (partial results)"
	}
	return "✅ Complete"
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
