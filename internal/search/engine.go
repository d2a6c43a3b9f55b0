package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Senthilsivam41/feature-websearch/internal/model"
	"golang.org/x/text/language"
	textsearch "golang.org/x/text/search"
)

// Snippet window sizes in bytes around the first match.
const (
	snippetBefore = 50
	snippetAfter  = 100
)

// Truncation bounds for text handed to the language model.
const (
	annotateContentLimit = 500
	answerContentLimit   = 300
)

// Token budgets for the language model calls.
const (
	decomposeTokens = 100
	annotateTokens  = 200
	answerTokens    = 1000
)

// Corpus is the read side of the store: a snapshot of all page records.
type Corpus interface {
	ListPages(ctx context.Context) ([]*model.PageRecord, error)
}

// Completer is the optional text-completion capability used for query
// decomposition, relevance annotation, and answer generation.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Engine scans the corpus for query matches.
// Each call recomputes results from the current store snapshot; nothing
// is cached between searches.
type Engine struct {
	// corpus supplies the records to scan.
	corpus Corpus

	// completer is the optional augmentation capability. Nil disables
	// decomposition, annotation, and answers.
	completer Completer

	// logger receives augmentation fallback notices.
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithCompleter enables language-model augmentation.
func WithCompleter(c Completer) EngineOption {
	return func(e *Engine) {
		e.completer = c
	}
}

// WithLogger sets a custom logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine reading from the given corpus.
func New(corpus Corpus, opts ...EngineOption) *Engine {
	e := &Engine{corpus: corpus}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Options controls a single search call.
type Options struct {
	// Limit is the maximum number of results. Zero means no limit.
	Limit int

	// CaseSensitive disables case folding during matching.
	CaseSensitive bool
}

// Search scans the corpus for the query and returns matching results in
// corpus scan order, truncated to Limit. When a completer is configured
// the query is first decomposed into terms (OR-combined) and results
// are annotated with relevance notes; both augmentations degrade
// silently to raw-query matching on failure.
func (e *Engine) Search(ctx context.Context, query string, opts Options) ([]model.SearchResult, error) {
	terms := e.decompose(ctx, query)

	pages, err := e.corpus.ListPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	var results []model.SearchResult
	for _, page := range pages {
		term, start, end, ok := firstMatch(page.Content, terms, opts.CaseSensitive)
		if !ok {
			continue
		}

		results = append(results, model.SearchResult{
			URL:     page.URL,
			Title:   page.Title,
			Snippet: snippet(page.Content, start, end),
			Term:    term,
			Images:  page.Images,
		})

		if opts.Limit > 0 && len(results) >= opts.Limit {
			break
		}
	}

	e.annotate(ctx, query, pages, results)

	return results, nil
}

// Answer runs a search and asks the language model for a natural
// language answer grounded in the top results. When the capability is
// absent or fails, the answer is empty and the results still come back.
func (e *Engine) Answer(ctx context.Context, query string, opts Options) (string, []model.SearchResult, error) {
	results, err := e.Search(ctx, query, opts)
	if err != nil {
		return "", nil, err
	}
	if e.completer == nil || len(results) == 0 {
		return "", results, nil
	}

	pages, err := e.corpus.ListPages(ctx)
	if err != nil {
		return "", results, nil
	}
	byURL := make(map[string]*model.PageRecord, len(pages))
	for _, p := range pages {
		byURL[p.URL] = p
	}

	var sb strings.Builder
	for _, r := range results {
		content := ""
		if p, ok := byURL[r.URL]; ok {
			content = truncate(p.Content, answerContentLimit)
		}
		fmt.Fprintf(&sb, "Source: %s\nTitle: %s\nContent: %s...\n\n", r.URL, r.Title, content)
	}

	prompt := fmt.Sprintf(`User Query: %s

Contextual Search Results:
%s
Please provide a comprehensive, natural language response that directly
addresses the user's query using the contextual information from the web
crawl. Include a direct answer, key insights from crawled sources, and
relevant source URLs.`, query, sb.String())

	answer, err := e.completer.Complete(ctx, prompt, answerTokens)
	if err != nil {
		e.logger.Warn("answer generation failed, returning results only", "error", err)
		return "", results, nil
	}
	return strings.TrimSpace(answer), results, nil
}

// decompose asks the language model to split a natural language query
// into literal search terms. The raw query is the fallback for every
// failure mode: missing capability, request error, or unusable output.
func (e *Engine) decompose(ctx context.Context, query string) []string {
	if e.completer == nil {
		return []string{query}
	}

	prompt := fmt.Sprintf(`Analyze the following search query and extract key semantic search terms:
Query: %s

Provide a comma-separated list of key search terms that capture the query's intent.
Respond with the terms only.`, query)

	raw, err := e.completer.Complete(ctx, prompt, decomposeTokens)
	if err != nil {
		e.logger.Debug("query decomposition failed, using raw query", "error", err)
		return []string{query}
	}

	var terms []string
	for _, part := range strings.Split(raw, ",") {
		if term := strings.TrimSpace(part); term != "" {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return []string{query}
	}
	return terms
}

// annotate attaches a relevance note to each result, best-effort.
func (e *Engine) annotate(ctx context.Context, query string, pages []*model.PageRecord, results []model.SearchResult) {
	if e.completer == nil || len(results) == 0 {
		return
	}

	byURL := make(map[string]*model.PageRecord, len(pages))
	for _, p := range pages {
		byURL[p.URL] = p
	}

	for i := range results {
		content := ""
		if p, ok := byURL[results[i].URL]; ok {
			content = truncate(p.Content, annotateContentLimit)
		}

		prompt := fmt.Sprintf(`Evaluate the relevance of this content to the query: %q

Content Details:
Title: %s
Content Snippet: %s

Provide a brief relevance assessment and key insights.`, query, results[i].Title, content)

		note, err := e.completer.Complete(ctx, prompt, annotateTokens)
		if err != nil {
			e.logger.Debug("relevance annotation failed", "url", results[i].URL, "error", err)
			continue
		}
		results[i].Relevance = strings.TrimSpace(note)
	}
}

// firstMatch finds the first of the terms that occurs in the content
// and returns the term with the match's byte offsets. Terms are tried
// in order, so decomposed queries match deterministically.
func firstMatch(content string, terms []string, caseSensitive bool) (term string, start, end int, ok bool) {
	var matcher *textsearch.Matcher
	if !caseSensitive {
		matcher = textsearch.New(language.Und, textsearch.IgnoreCase)
	}

	for _, t := range terms {
		if t == "" {
			continue
		}
		if caseSensitive {
			if idx := strings.Index(content, t); idx >= 0 {
				return t, idx, idx + len(t), true
			}
			continue
		}
		if s, e := matcher.IndexString(content, t); s >= 0 {
			return t, s, e, true
		}
	}
	return "", 0, 0, false
}

// snippet extracts the context window around a match, clamped to the
// content bounds, with ellipsis markers at both ends.
func snippet(content string, start, end int) string {
	s := start - snippetBefore
	if s < 0 {
		s = 0
	}
	e := end + snippetAfter
	if e > len(content) {
		e = len(content)
	}
	return "..." + content[s:e] + "..."
}

// truncate bounds a string to n bytes.
func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
