package webindex

import "github.com/nicwatson/javasandcrawer/urlnorm"

// IndexedPage is a single crawled, indexed document. Its identity is
// its URL; it lives for the lifetime of the Index that owns it and,
// other than PageRank written exactly once by the PageRank engine, is
// never mutated after Index build completes.
type IndexedPage struct {
	termVector

	URL   urlnorm.URL
	Title string

	// Text is the page's raw extracted paragraph text, kept alongside
	// its token counts so callers can build result summaries from it.
	// It is not part of Snapshot: a restored index has no raw text,
	// only the statistics rebuilt from persisted word counts.
	Text string

	Outlinks []urlnorm.URL

	inlinkOrder []urlnorm.URL
	inlinkSet   map[urlnorm.URL]bool

	PageRank float64
}

func newIndexedPage(url urlnorm.URL, outlinks []urlnorm.URL) *IndexedPage {
	return &IndexedPage{
		termVector: newTermVector(),
		URL:        url,
		Outlinks:   outlinks,
		inlinkSet:  make(map[urlnorm.URL]bool),
	}
}

// addToken registers one occurrence of word in this page's token
// stream, creating or reusing the word's GlobalTermStat via
// resolveGlobal, consistent with the Index's "if P lacks T, create or
// fetch its GlobalTermStat" build step.
func (p *IndexedPage) addToken(word string, resolveGlobal func(string) *GlobalTermStat) {
	p.size++

	if stat, ok := p.wordMap[word]; ok {
		stat.Count++

		return
	}

	global := resolveGlobal(word)
	stat := newDocTermStat(word, global)
	p.wordMap[word] = stat
	p.uniqueWords++

	global.addPage(p.URL.String())
}

// addInlink records that from links to this page. Duplicate calls for
// the same source are no-ops.
func (p *IndexedPage) addInlink(from urlnorm.URL) {
	if p.inlinkSet[from] {
		return
	}

	p.inlinkSet[from] = true
	p.inlinkOrder = append(p.inlinkOrder, from)
}

// Inlinks returns the pages linking to this one, in the order their
// reciprocal links were discovered during Index build.
func (p *IndexedPage) Inlinks() []urlnorm.URL {
	out := make([]urlnorm.URL, len(p.inlinkOrder))
	copy(out, p.inlinkOrder)

	return out
}
