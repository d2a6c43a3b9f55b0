// Package report formats crawl summaries and search results for output.
//
// Three formats are supported: plain text for terminal display, JSON for
// tool integration, and Markdown for documentation. All writers share the
// Writer interface so commands can pick a format at runtime, and
// MultiWriter fans one report out to several destinations (for example
// terminal plus file).
package report
