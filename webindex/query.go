package webindex

import "github.com/nicwatson/javasandcrawer/tokenize"

// QueryDocument is the ephemeral term vector built from a search
// query string. It shares its statistics machinery with IndexedPage
// so the cosine scorer can call TFIDF identically on either side, but
// it is never persisted and only ever attaches to GlobalTermStat
// entries that already exist in the Index at query time; unknown
// query terms are tokenised and counted for TF purposes but carry no
// GlobalTermStat and therefore contribute nothing to scoring.
type QueryDocument struct {
	termVector

	Terms []string // distinct terms, in first-occurrence order
}

// newQueryDocument tokenises text and builds its term vector. lookup
// resolves a word to its GlobalTermStat if the Index has ever seen
// it; unknown words get no DocTermStat, matching the "denominator
// restricted to query terms that also appear in a document" scoring
// contract, since a term without a GlobalTermStat can never match any
// document.
func newQueryDocument(text string, lookup func(string) (*GlobalTermStat, bool)) *QueryDocument {
	q := &QueryDocument{termVector: newTermVector()}

	for _, word := range tokenize.Tokenize(text) {
		q.size++

		if stat, ok := q.wordMap[word]; ok {
			stat.Count++

			continue
		}

		global, known := lookup(word)
		if !known {
			continue
		}

		stat := newDocTermStat(word, global)
		q.wordMap[word] = stat
		q.uniqueWords++
		q.Terms = append(q.Terms, word)
	}

	return q
}
