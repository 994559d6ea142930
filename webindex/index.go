package webindex

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/nicwatson/javasandcrawer/pagerank"
	"github.com/nicwatson/javasandcrawer/tokenize"
	"github.com/nicwatson/javasandcrawer/urlnorm"
)

// UnprocessedPage is the raw material handed to Index.Build for a
// single crawled page: its resolved location, extracted title,
// concatenated paragraph text and the outbound links discovered on
// it. It carries no statistics of its own; Build is what turns pages
// into IndexedPages.
type UnprocessedPage struct {
	URL      urlnorm.URL
	Title    string
	Text     string
	Outlinks []urlnorm.URL
}

// Index is the built inverted index over a set of crawled pages: per
// page and per word statistics, reciprocal in-links, and PageRank
// scores. It is assembled once by Build and is safe for concurrent
// read-only queries afterwards; nothing mutates it except the lazy
// statistic caches owned by its GlobalTermStat and DocTermStat
// entries, each of which settles after its first read.
type Index struct {
	Logger *logrus.Entry

	pageOrder []string // URL strings, order of first successful fetch
	pages     map[string]*IndexedPage

	wordOrder []string // words, order of first insertion
	words     map[string]*GlobalTermStat

	built bool
}

// NewIndex returns an empty Index ready for Build.
func NewIndex(logger *logrus.Entry) *Index {
	if logger == nil {
		logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return &Index{
		Logger: logger,
		pages:  make(map[string]*IndexedPage),
		words:  make(map[string]*GlobalTermStat),
	}
}

// Build assembles the index from raw crawled pages in four stages:
// parse and register terms, prime every TF-IDF cache, link reciprocal
// in-links, then compute PageRank. Pages are consumed in the order
// given, which becomes Index.pages' iteration order.
func (idx *Index) Build(ctx context.Context, rawPages []UnprocessedPage, alpha, epsilon float64) error {
	idx.parse(rawPages)
	idx.primeTFIDF()
	idx.linkReciprocalInlinks()

	if err := idx.rankPages(ctx, alpha, epsilon); err != nil {
		return err
	}

	idx.built = true

	return nil
}

func (idx *Index) resolveGlobal(word string) *GlobalTermStat {
	if g, ok := idx.words[word]; ok {
		return g
	}

	g := newGlobalTermStat(word)
	idx.words[word] = g
	idx.wordOrder = append(idx.wordOrder, word)

	return g
}

// parse is stage 1: for each raw page, extract its title and tokenise
// its text, registering new words into the global term table and
// incrementing per-page counts.
func (idx *Index) parse(rawPages []UnprocessedPage) {
	for _, raw := range rawPages {
		key := raw.URL.String()
		if _, exists := idx.pages[key]; exists {
			continue
		}

		page := newIndexedPage(raw.URL, raw.Outlinks)
		page.Title = raw.Title
		page.Text = raw.Text

		for _, word := range tokenize.Tokenize(raw.Text) {
			page.addToken(word, idx.resolveGlobal)
		}

		idx.pages[key] = page
		idx.pageOrder = append(idx.pageOrder, key)
	}
}

// primeTFIDF is stage 2: force every DocTermStat's TF-IDF to evaluate
// and cache now, while the total page count is final, before any
// query can observe a partially-computed model.
func (idx *Index) primeTFIDF() {
	n := len(idx.pageOrder)

	for _, key := range idx.pageOrder {
		page := idx.pages[key]
		size := page.Size()

		for _, word := range idx.wordOrder {
			if stat := page.Stat(word); stat != nil {
				stat.TFIDF(size, n)
			}
		}
	}
}

// linkReciprocalInlinks is stage 3: for every indexed page and every
// outlink it carries, if the destination is also indexed, record the
// source as one of the destination's in-links.
func (idx *Index) linkReciprocalInlinks() {
	for _, key := range idx.pageOrder {
		page := idx.pages[key]

		for _, dest := range page.Outlinks {
			if target, ok := idx.pages[dest.String()]; ok {
				target.addInlink(page.URL)
			}
		}
	}
}

// rankPages is stage 4: run PageRank over the indexed page graph and
// write each page's score back onto its IndexedPage.
func (idx *Index) rankPages(ctx context.Context, alpha, epsilon float64) error {
	calc, err := pagerank.NewCalculator(pagerank.Config{
		Alpha:   alpha,
		Epsilon: epsilon,
		Logger:  idx.Logger,
	})
	if err != nil {
		return err
	}

	for _, key := range idx.pageOrder {
		calc.AddVertex(key)
	}

	for _, key := range idx.pageOrder {
		page := idx.pages[key]
		for _, dest := range page.Outlinks {
			if _, ok := idx.pages[dest.String()]; ok {
				if err := calc.AddEdge(key, dest.String()); err != nil {
					return err
				}
			}
		}
	}

	if err := calc.CalculatePageRanks(ctx); err != nil {
		return err
	}

	return calc.Scores(func(id string, score float64) error {
		idx.pages[id].PageRank = score

		return nil
	})
}

// PageCount returns the number of indexed pages.
func (idx *Index) PageCount() int { return len(idx.pageOrder) }

// Page returns the indexed page at url, or nil if it was never
// indexed.
func (idx *Index) Page(url urlnorm.URL) *IndexedPage {
	return idx.pages[url.String()]
}

// Pages returns indexed pages in the order they were first
// successfully fetched.
func (idx *Index) Pages() []*IndexedPage {
	out := make([]*IndexedPage, len(idx.pageOrder))
	for i, key := range idx.pageOrder {
		out[i] = idx.pages[key]
	}

	return out
}

// Tf returns the term frequency of word on the page at url, or 0 if
// either the page or the word within it is unknown.
func (idx *Index) Tf(url urlnorm.URL, word string) float64 {
	page, ok := idx.pages[url.String()]
	if !ok {
		return 0
	}

	stat := page.Stat(word)
	if stat == nil {
		return 0
	}

	return stat.TF(page.Size())
}

// Idf returns the inverse document frequency of word across the
// whole index, or 0 if the word was never indexed.
func (idx *Index) Idf(word string) float64 {
	global, ok := idx.words[word]
	if !ok {
		return 0
	}

	return global.IDF(idx.PageCount())
}

// TfIdf returns the TF-IDF weight of word on the page at url, or 0 if
// either is unknown.
func (idx *Index) TfIdf(url urlnorm.URL, word string) float64 {
	page, ok := idx.pages[url.String()]
	if !ok {
		return 0
	}

	stat := page.Stat(word)
	if stat == nil {
		return 0
	}

	return stat.TFIDF(page.Size(), idx.PageCount())
}

// PageRank returns the page's PageRank score, or -1 if the page was
// never indexed.
func (idx *Index) PageRank(url urlnorm.URL) float64 {
	page, ok := idx.pages[url.String()]
	if !ok {
		return -1
	}

	return page.PageRank
}

// Text returns the page's raw extracted paragraph text, or "" if the
// page was never indexed or the index was rebuilt from a snapshot
// that does not carry raw text.
func (idx *Index) Text(url urlnorm.URL) string {
	page, ok := idx.pages[url.String()]
	if !ok {
		return ""
	}

	return page.Text
}

// Outgoing returns the page's outbound links, or nil if the page was
// never indexed.
func (idx *Index) Outgoing(url urlnorm.URL) []urlnorm.URL {
	page, ok := idx.pages[url.String()]
	if !ok {
		return nil
	}

	out := make([]urlnorm.URL, len(page.Outlinks))
	copy(out, page.Outlinks)

	return out
}

// Incoming returns the pages linking to url, or nil if the page was
// never indexed.
func (idx *Index) Incoming(url urlnorm.URL) []urlnorm.URL {
	page, ok := idx.pages[url.String()]
	if !ok {
		return nil
	}

	return page.Inlinks()
}
