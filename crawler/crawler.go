package crawler

import (
	"context"

	"github.com/nicwatson/javasandcrawer/pipeline"
	"github.com/nicwatson/javasandcrawer/urlnorm"
	"github.com/nicwatson/javasandcrawer/webindex"
)

// Crawler performs a breadth-first crawl starting from a set of seed
// URLs, producing the raw pages webindex.Index.Build consumes. The
// crawl loop itself is single-threaded and cooperative: the frontier,
// the seen set and the retry budget are all touched by one goroutine
// at a time. Only page retrieval may run across multiple workers when
// NumOfFetchWorkers > 1, and even then results are folded back into
// the frontier in the order their fetches completed, keeping the
// overall crawl output deterministic.
type Crawler struct {
	cfg Config
}

// New returns a Crawler configured by cfg, applying defaults for any
// zero-valued fields.
func New(cfg Config) (*Crawler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Crawler{cfg: cfg}, nil
}

// frontierEntry is one URL waiting to be fetched, along with how many
// times it has already failed.
type frontierEntry struct {
	url     urlnorm.URL
	attempt int
}

// Crawl runs the breadth-first crawl to completion, bounded by
// MaxPages, and returns every page it admitted in the order they
// were first fetched. A page that exhausts its retry budget is
// admitted blank rather than dropped, so that other pages' links to
// it remain valid.
func (cr *Crawler) Crawl(ctx context.Context) ([]webindex.UnprocessedPage, error) {
	seen := make(map[string]bool)
	frontier := make([]frontierEntry, 0, len(cr.cfg.Seeds))

	enqueue := func(u urlnorm.URL) {
		key := u.String()
		if seen[key] {
			return
		}

		seen[key] = true
		frontier = append(frontier, frontierEntry{url: u})
	}

	for _, seed := range cr.cfg.Seeds {
		enqueue(seed)
	}

	var pages []webindex.UnprocessedPage

	for len(frontier) > 0 && len(pages) < cr.cfg.MaxPages {
		batchSize := cr.cfg.NumOfFetchWorkers
		if batchSize > len(frontier) {
			batchSize = len(frontier)
		}

		batch := frontier[:batchSize]
		frontier = frontier[batchSize:]

		outcomes, err := cr.fetchBatch(ctx, batch)
		if err != nil {
			return nil, err
		}

		for _, outcome := range outcomes {
			if outcome.err != nil {
				cr.cfg.Logger.WithField("url", outcome.entry.url.String()).WithError(outcome.err).
					Warn("crawler: fetch failed")

				if outcome.entry.attempt < cr.cfg.MaxRetries {
					if cr.cfg.RetryBackoff > 0 {
						select {
						case <-ctx.Done():
							return nil, ctx.Err()
						case <-cr.cfg.Clock.After(cr.cfg.RetryBackoff):
						}
					}

					frontier = append(frontier, frontierEntry{
						url:     outcome.entry.url,
						attempt: outcome.entry.attempt + 1,
					})

					continue
				}

				pages = append(pages, webindex.UnprocessedPage{URL: outcome.entry.url})

				continue
			}

			page := webindex.UnprocessedPage{
				URL:   outcome.entry.url,
				Title: outcome.page.title,
				Text:  outcome.page.text,
			}

			for _, href := range outcome.page.hrefs {
				resolved := urlnorm.ResolveAgainst(outcome.entry.url, href)
				page.Outlinks = append(page.Outlinks, resolved)
				enqueue(resolved)
			}

			pages = append(pages, page)

			if len(pages) >= cr.cfg.MaxPages {
				break
			}
		}
	}

	return pages, nil
}

// fetchBatch retrieves every entry in batch, sequentially when only
// one worker is configured or the batch is trivially small, otherwise
// through a fixed worker pool pipeline whose output preserves
// completion order.
func (cr *Crawler) fetchBatch(ctx context.Context, batch []frontierEntry) ([]fetchOutcome, error) {
	proc := &fetchProcessor{getter: cr.cfg.URLGetter, detector: cr.cfg.PrivateNetworkDetector}

	if cr.cfg.NumOfFetchWorkers <= 1 || len(batch) <= 1 {
		outcomes := make([]fetchOutcome, 0, len(batch))

		for _, entry := range batch {
			result, err := proc.Process(ctx, &fetchPayload{entry: entry})
			if err != nil {
				return nil, err
			}

			outcomes = append(outcomes, result.(*fetchPayload).outcome)
		}

		return outcomes, nil
	}

	src := &frontierSource{entries: batch}
	sink := &outcomeSink{}

	workers := cr.cfg.NumOfFetchWorkers
	if workers > len(batch) {
		workers = len(batch)
	}

	p := pipeline.New(pipeline.NewFixedWorkerPool(proc, workers))
	if err := p.Execute(ctx, src, sink); err != nil {
		return nil, err
	}

	return sink.outcomes, nil
}

// frontierSource feeds a fixed slice of frontier entries into a
// pipeline.
type frontierSource struct {
	entries []frontierEntry
	pos     int
	err     error
}

func (s *frontierSource) Next(ctx context.Context) bool {
	return s.pos < len(s.entries)
}

func (s *frontierSource) Payload() pipeline.Payload {
	entry := s.entries[s.pos]
	s.pos++

	return &fetchPayload{entry: entry}
}

func (s *frontierSource) Error() error { return s.err }

// outcomeSink collects fetch outcomes in the order the pipeline
// delivers them, which is the order their fetches completed.
type outcomeSink struct {
	outcomes []fetchOutcome
}

func (s *outcomeSink) Consume(ctx context.Context, p pipeline.Payload) error {
	s.outcomes = append(s.outcomes, p.(*fetchPayload).outcome)

	return nil
}
