package webindex

import (
	"fmt"
	"sort"

	"github.com/nicwatson/javasandcrawer/urlnorm"
)

// SearchResult is one scored page in a search result set.
type SearchResult struct {
	URL   urlnorm.URL
	Title string
	Score float64
}

// SearchResultPlus is a SearchResult carrying its PageRank alongside
// its cosine score, for callers that want both signals.
type SearchResultPlus struct {
	SearchResult
	PageRank float64
}

// scoredRounded formats a score to three decimal places, the
// precision the result ordering compares on.
func scoredRounded(score float64) string {
	return fmt.Sprintf("%.3f", score)
}

// sortResults orders results by rounded score descending, then by
// title ascending. Comparing the fixed-decimal, non-negative rounded
// score as a string is equivalent to comparing it numerically, and
// is what makes two scores that round to the same three decimals
// count as tied for ordering purposes.
func sortResults(results []SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		si, sj := scoredRounded(results[i].Score), scoredRounded(results[j].Score)
		if si != sj {
			return si > sj
		}

		return results[i].Title < results[j].Title
	})
}

// SortForTest exposes sortResults' ordering rules to tests in other
// packages; production callers only ever reach it through Search.
func SortForTest(results []SearchResult) []SearchResult {
	sortResults(results)

	return results
}

// search runs the query against every page in the index, scoring each
// by cosine similarity optionally boosted by PageRank, and returns
// every page in final result order, clamped to exactly
// min(topK, len(results)) entries. Negative topK clamps to 0. Pages
// with a zero score are included, not dropped: an empty query scores
// every page 0 and still yields a full, title-ordered result set.
func (idx *Index) search(query *QueryDocument, boost bool, topK int) []SearchResult {
	n := idx.PageCount()

	results := make([]SearchResult, 0, len(idx.pageOrder))

	for _, key := range idx.pageOrder {
		page := idx.pages[key]

		score := cosineSimilarity(query, page, n)

		if boost {
			score *= page.PageRank
		}

		results = append(results, SearchResult{
			URL:   page.URL,
			Title: page.Title,
			Score: score,
		})
	}

	sortResults(results)

	if topK < 0 {
		topK = 0
	}

	if topK < len(results) {
		results = results[:topK]
	}

	return results
}

// searchPlus is search with each result's PageRank attached.
func (idx *Index) searchPlus(query *QueryDocument, boost bool, topK int) []SearchResultPlus {
	base := idx.search(query, boost, topK)

	out := make([]SearchResultPlus, len(base))
	for i, r := range base {
		out[i] = SearchResultPlus{
			SearchResult: r,
			PageRank:     idx.PageRank(r.URL),
		}
	}

	return out
}

// Search tokenises text into a query against the index and returns
// every page ordered by rounded cosine score descending, then title
// ascending, clamped to exactly min(topK, total pages) results.
// When boost is true, each page's score is multiplied by its
// PageRank before sorting. It returns ErrIndexNotBuilt if Build has
// not yet completed.
func (idx *Index) Search(text string, boost bool, topK int) ([]SearchResult, error) {
	if !idx.built {
		return nil, ErrIndexNotBuilt
	}

	query := newQueryDocument(text, func(word string) (*GlobalTermStat, bool) {
		g, ok := idx.words[word]
		return g, ok
	})

	return idx.search(query, boost, topK), nil
}

// SearchPlus is Search with each result's PageRank attached.
func (idx *Index) SearchPlus(text string, boost bool, topK int) ([]SearchResultPlus, error) {
	if !idx.built {
		return nil, ErrIndexNotBuilt
	}

	query := newQueryDocument(text, func(word string) (*GlobalTermStat, bool) {
		g, ok := idx.words[word]
		return g, ok
	})

	return idx.searchPlus(query, boost, topK), nil
}
