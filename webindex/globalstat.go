package webindex

import "math"

// GlobalTermStat tracks how many indexed pages a word occurs in and
// caches its inverse document frequency. It is owned exclusively by
// the Index; pages hold only a reference to it through their
// DocTermStat entries, never the other way around, so there is no
// pointer cycle to manage.
type GlobalTermStat struct {
	Word string

	DocOccurrence int

	pageOrder []string // page URL strings, insertion order
	pageSet   map[string]bool

	idf      float64
	idfKnown bool
}

func newGlobalTermStat(word string) *GlobalTermStat {
	return &GlobalTermStat{
		Word:    word,
		pageSet: make(map[string]bool),
	}
}

// addPage records that a page now carries this term, in insertion
// order, the first time it is seen; later calls for the same page are
// no-ops.
func (g *GlobalTermStat) addPage(urlKey string) {
	if g.pageSet[urlKey] {
		return
	}

	g.pageSet[urlKey] = true
	g.pageOrder = append(g.pageOrder, urlKey)
	g.DocOccurrence++
}

// Pages returns the URL keys of pages carrying this term, in the
// order they were first inserted.
func (g *GlobalTermStat) Pages() []string {
	out := make([]string, len(g.pageOrder))
	copy(out, g.pageOrder)

	return out
}

// IDF returns log2(n / (1 + DocOccurrence)), computed at most once and
// cached from then on. n is the total document count at the time of
// the first call; the Index only calls this after the page count is
// final.
func (g *GlobalTermStat) IDF(n int) float64 {
	if !g.idfKnown {
		g.idf = math.Log2(float64(n) / float64(1+g.DocOccurrence))
		g.idfKnown = true
	}

	return g.idf
}
