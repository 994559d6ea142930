// Package engine exposes the search engine as a single facade: crawl
// a set of seeds into a fresh index, then query that index by text,
// term statistics, page rank or link structure. It owns the one
// piece of mutable state in the system, its current *webindex.Index,
// and replaces it atomically whenever a crawl completes.
package engine

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/nicwatson/javasandcrawer/crawler"
	"github.com/nicwatson/javasandcrawer/urlnorm"
	"github.com/nicwatson/javasandcrawer/webindex"
)

// Engine is a crawl-and-query facade over a webindex.Index. The zero
// value is not usable; construct one with New.
type Engine struct {
	cfg Config

	index atomic.Pointer[webindex.Index]
}

// New returns an Engine configured by cfg, applying defaults for any
// unset fields. Malformed seed URLs are dropped rather than causing
// construction to fail.
func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Engine{cfg: cfg}, nil
}

// Initialize clears any snapshot left behind by a previous run from
// the engine's configured Store, if any, so that the upcoming Crawl
// starts from a clean slate rather than resuming stale state. It is a
// no-op if no Store is configured.
func (e *Engine) Initialize(ctx context.Context) error {
	if e.cfg.Store == nil {
		return nil
	}

	if err := e.cfg.Store.Clear(); err != nil {
		return fmt.Errorf("engine: clear snapshot: %w", err)
	}

	return nil
}

// Crawl runs a fresh breadth-first crawl from the engine's configured
// seeds, builds a new index from the results, and atomically swaps it
// in as the engine's current index. If a Store is configured, the new
// index is persisted before Crawl returns.
func (e *Engine) Crawl(ctx context.Context) error {
	e.reportProgress(Retrieving)

	seeds := make([]urlnorm.URL, 0, len(e.cfg.Seeds))
	for _, raw := range e.cfg.Seeds {
		u, err := urlnorm.Parse(raw)
		if err != nil {
			e.cfg.Logger.WithField("seed", raw).WithError(err).Warn("engine: dropping malformed seed")

			continue
		}

		seeds = append(seeds, u)
	}

	if len(seeds) == 0 {
		return fmt.Errorf("engine: no valid seed urls")
	}

	cr, err := crawler.New(crawler.Config{
		Seeds:             seeds,
		MaxRetries:        e.cfg.MaxRetries,
		MaxPages:          e.cfg.MaxPages,
		NumOfFetchWorkers: e.cfg.NumOfFetchWorkers,
		Logger:            e.cfg.Logger,
	})
	if err != nil {
		return fmt.Errorf("engine: configure crawler: %w", err)
	}

	rawPages, err := cr.Crawl(ctx)
	if err != nil {
		return fmt.Errorf("engine: crawl: %w", err)
	}

	e.reportProgress(Parsing)

	unprocessed := make([]webindex.UnprocessedPage, len(rawPages))
	copy(unprocessed, rawPages)

	idx := webindex.NewIndex(e.cfg.Logger)

	e.reportProgress(Linking)

	if err := idx.Build(ctx, unprocessed, e.cfg.Alpha, e.cfg.Epsilon); err != nil {
		return fmt.Errorf("engine: build index: %w", err)
	}

	e.reportProgress(Ranking)

	e.index.Store(idx)

	if e.cfg.Store != nil {
		snap, err := idx.Snapshot()
		if err != nil {
			return fmt.Errorf("engine: snapshot index: %w", err)
		}

		if err := e.cfg.Store.Save(snap); err != nil {
			return fmt.Errorf("engine: persist snapshot: %w", err)
		}
	}

	e.reportProgress(Done)

	return nil
}

func (e *Engine) reportProgress(stage Stage) {
	if e.cfg.Progress != nil {
		e.cfg.Progress(stage)
	}
}

func (e *Engine) current() (*webindex.Index, error) {
	idx := e.index.Load()
	if idx == nil {
		return nil, fmt.Errorf("engine: no index built yet")
	}

	return idx, nil
}

// Search runs a text query against the current index. When boost is
// true, each page's cosine score is multiplied by its PageRank before
// results are ordered.
func (e *Engine) Search(text string, boost bool, topK int) ([]webindex.SearchResult, error) {
	idx, err := e.current()
	if err != nil {
		return nil, err
	}

	return idx.Search(text, boost, topK)
}

// SearchPlus is Search with each result's PageRank attached.
func (e *Engine) SearchPlus(text string, boost bool, topK int) ([]webindex.SearchResultPlus, error) {
	idx, err := e.current()
	if err != nil {
		return nil, err
	}

	return idx.SearchPlus(text, boost, topK)
}

// Idf returns the current index's inverse document frequency for
// word, or 0 if the engine has not indexed anything yet or word is
// unknown.
func (e *Engine) Idf(word string) float64 {
	idx, err := e.current()
	if err != nil {
		return 0
	}

	return idx.Idf(word)
}

// Tf returns the term frequency of word on the page at url.
func (e *Engine) Tf(url urlnorm.URL, word string) float64 {
	idx, err := e.current()
	if err != nil {
		return 0
	}

	return idx.Tf(url, word)
}

// TfIdf returns the TF-IDF weight of word on the page at url.
func (e *Engine) TfIdf(url urlnorm.URL, word string) float64 {
	idx, err := e.current()
	if err != nil {
		return 0
	}

	return idx.TfIdf(url, word)
}

// Text returns the page's raw extracted paragraph text, or "" if the
// engine has not indexed anything yet, the page is unknown, or the
// current index was restored from a snapshot with no raw text.
func (e *Engine) Text(url urlnorm.URL) string {
	idx, err := e.current()
	if err != nil {
		return ""
	}

	return idx.Text(url)
}

// PageRank returns the page's PageRank score, or -1 if the engine has
// not indexed anything yet or the page is unknown.
func (e *Engine) PageRank(url urlnorm.URL) float64 {
	idx, err := e.current()
	if err != nil {
		return -1
	}

	return idx.PageRank(url)
}

// Outgoing returns the page's outbound links.
func (e *Engine) Outgoing(url urlnorm.URL) []urlnorm.URL {
	idx, err := e.current()
	if err != nil {
		return nil
	}

	return idx.Outgoing(url)
}

// Incoming returns the pages linking to url.
func (e *Engine) Incoming(url urlnorm.URL) []urlnorm.URL {
	idx, err := e.current()
	if err != nil {
		return nil
	}

	return idx.Incoming(url)
}
