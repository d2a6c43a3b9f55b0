package crawler

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Senthilsivam41/feature-websearch/internal/model"
)

// PageSink receives one record per successfully fetched page.
// The store implements it; tests substitute lighter fakes.
type PageSink interface {
	UpsertPage(ctx context.Context, record *model.PageRecord) error
}

// Engine orchestrates one crawl run: it seeds the frontier, dispatches
// tasks to a bounded worker pool, and coordinates the visited set,
// fetcher, extractor, and sink.
//
// The engine exclusively owns its VisitedSet and Frontier for the
// lifetime of one run; both are created in Run and discarded when the
// run completes. The sink outlives the run.
type Engine struct {
	// fetcher performs the HTTP GETs.
	fetcher *Fetcher

	// sink receives page records. Upserts serialize in the sink itself.
	sink PageSink

	// logger receives per-page progress and failure logs.
	logger *slog.Logger

	// maxDepth is the inclusive depth bound: pages at maxDepth are
	// fetched and stored but spawn no successors.
	maxDepth int

	// workers bounds the number of concurrent fetches.
	workers int

	// delay is the politeness wait before each fetch.
	delay time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth sets the maximum crawl depth.
// 0 = only the seed page, 1 = the seed plus its links, etc.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		e.maxDepth = depth
	}
}

// WithWorkers sets the maximum number of concurrent fetches.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithDelay sets the politeness delay before each fetch.
func WithDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.delay = d
	}
}

// WithLogger sets a custom logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine writing records to the given sink.
func New(fetcher *Fetcher, sink PageSink, opts ...Option) *Engine {
	e := &Engine{
		fetcher:  fetcher,
		sink:     sink,
		maxDepth: 5,
		workers:  5,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Stats summarizes a completed crawl run.
type Stats struct {
	// URLsVisited is the number of distinct URLs accepted into the
	// frontier, including ones whose fetch later failed.
	URLsVisited int

	// PagesStored is the number of records written to the sink.
	PagesStored int

	// PagesFailed is the number of tasks dropped due to fetch or store
	// failures.
	PagesFailed int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// counters aggregates per-run tallies shared by workers.
type counters struct {
	mu     sync.Mutex
	stored int
	failed int
}

// Run crawls the domain of seedURL breadth-first until the frontier
// drains or the context is cancelled. Per-page failures are logged and
// dropped; the only fatal error is an unusable seed URL. Cancellation
// stops new dispatch and returns the stats gathered so far together
// with the context's error.
func (e *Engine) Run(ctx context.Context, seedURL string) (*Stats, error) {
	seed, err := url.Parse(seedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL: %w", err)
	}
	if seed.Scheme != "http" && seed.Scheme != "https" {
		return nil, fmt.Errorf("invalid seed URL %q: scheme must be http or https", seedURL)
	}

	host := seed.Host
	visited := NewVisitedSet()
	frontier := NewFrontier()

	normalized := Normalize(seedURL)
	visited.Add(normalized)
	frontier.Push(Task{URL: normalized, Depth: 0})

	e.logger.Info("starting crawl",
		"seed", normalized,
		"domain", host,
		"max_depth", e.maxDepth,
		"workers", e.workers,
	)

	start := time.Now()
	var tally counters

	// Each iteration dispatches one breadth-first level: Drain takes the
	// depth-d tasks, and successors pushed while they run accumulate as
	// the depth-(d+1) level.
	for frontier.Len() > 0 && ctx.Err() == nil {
		batch := frontier.Drain()

		g := new(errgroup.Group)
		g.SetLimit(e.workers)
		for _, task := range batch {
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				e.crawl(ctx, task, host, visited, frontier, &tally)
				return nil
			})
		}
		// Workers never return errors; page failures are counted instead.
		_ = g.Wait()
	}

	stats := &Stats{
		URLsVisited: visited.Len(),
		PagesStored: tally.stored,
		PagesFailed: tally.failed,
		Elapsed:     time.Since(start),
	}

	e.logger.Info("crawl finished",
		"urls_visited", stats.URLsVisited,
		"pages_stored", stats.PagesStored,
		"pages_failed", stats.PagesFailed,
		"elapsed", stats.Elapsed,
	)

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

// crawl processes a single task: politeness delay, fetch, extract,
// store, and successor discovery. All failures are page-local.
func (e *Engine) crawl(ctx context.Context, task Task, host string, visited *VisitedSet, frontier *Frontier, tally *counters) {
	if e.delay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(e.delay):
		}
	}

	e.logger.Debug("crawling", "url", task.URL, "depth", task.Depth)

	resp, err := e.fetcher.Fetch(ctx, task.URL)
	if err != nil {
		e.logger.Warn("fetch failed", "url", task.URL, "error", err)
		tally.add(0, 1)
		return
	}

	record, links := e.extract(task, resp)

	if err := e.sink.UpsertPage(ctx, record); err != nil {
		e.logger.Warn("store failed", "url", task.URL, "error", err)
		tally.add(0, 1)
	} else {
		tally.add(1, 0)
	}

	// Inclusive depth bound: maxDepth pages are stored above but spawn
	// no successors.
	if task.Depth >= e.maxDepth {
		return
	}
	for _, link := range links {
		if !InScope(link, host) {
			continue
		}
		// Add is the atomic check-and-insert that makes enqueueing
		// at-most-once under concurrent discovery.
		if normalized := Normalize(link); visited.Add(normalized) {
			frontier.Push(Task{URL: normalized, Depth: task.Depth + 1})
		}
	}
}

// extract builds the page record and discovered links for a fetched
// response. Non-HTML responses and parse failures degrade to a record
// with empty extraction fields rather than dropping the page.
func (e *Engine) extract(task Task, resp *Response) (*model.PageRecord, []string) {
	record := &model.PageRecord{
		URL:   task.URL,
		Title: model.NoTitle,
		Metadata: map[string]string{
			model.MetaStatusCode:  strconv.Itoa(resp.StatusCode),
			model.MetaContentType: resp.ContentType,
			model.MetaContentHash: model.HashBody(resp.Body),
			model.MetaDepth:       strconv.Itoa(task.Depth),
		},
		FetchedAt: time.Now(),
	}

	if !strings.Contains(resp.ContentType, "text/html") {
		return record, nil
	}

	extractor, err := NewExtractor(task.URL)
	if err != nil {
		e.logger.Debug("extractor setup failed", "url", task.URL, "error", err)
		return record, nil
	}

	result, err := extractor.Extract(bytes.NewReader(resp.Body))
	if err != nil {
		e.logger.Debug("parse failed", "url", task.URL, "error", err)
	}
	record.Title = result.Title
	record.Content = result.Text
	record.Images = result.Images
	record.TruncateContent()

	return record, result.Links
}

// add updates the tallies under the counters' lock.
func (c *counters) add(stored, failed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored += stored
	c.failed += failed
}
