// Package webindex owns the in-memory inverted index: indexed pages,
// global term statistics, the TF-IDF model, the cosine-similarity
// query scorer, and the totally-ordered result sorter. The Index is
// the single piece of mutable state in the engine; it is built once
// per crawl and is read-only to queries afterwards except for its
// lazily-computed statistic caches.
package webindex

// termVector is the term structure shared by IndexedPage and
// QueryDocument: a running token count and a word -> DocTermStat map.
// Embedding it instead of duplicating fields mirrors how the source
// document model shared term bookkeeping between real pages and
// ephemeral query documents without giving them a common identity.
type termVector struct {
	size        int
	uniqueWords int
	wordMap     map[string]*DocTermStat
}

func newTermVector() termVector {
	return termVector{wordMap: make(map[string]*DocTermStat)}
}

// Size returns the total number of tokens represented, including
// duplicates.
func (t *termVector) Size() int { return t.size }

// UniqueWords returns the number of distinct words represented.
func (t *termVector) UniqueWords() int { return t.uniqueWords }

// Stat returns the DocTermStat for word, or nil if the word does not
// occur in this document.
func (t *termVector) Stat(word string) *DocTermStat {
	return t.wordMap[word]
}
