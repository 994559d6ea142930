package webindex_test

import (
	check "gopkg.in/check.v1"

	"github.com/nicwatson/javasandcrawer/webindex"
)

var _ = check.Suite(new(SortTestSuite))

type SortTestSuite struct{}

func (s *SortTestSuite) TestRoundedTieBreaksByTitleAscending(c *check.C) {
	apple := mustURL(c, "http://example.com/apple")
	banana := mustURL(c, "http://example.com/banana")

	sorted := webindex.SortForTest([]webindex.SearchResult{
		{URL: banana, Title: "Banana", Score: 0.12345},
		{URL: apple, Title: "Apple", Score: 0.12350},
	})

	c.Assert(sorted, check.HasLen, 2)
	c.Assert(sorted[0].Title, check.Equals, "Apple")
	c.Assert(sorted[1].Title, check.Equals, "Banana")
}

func (s *SortTestSuite) TestHigherScoreOrdersFirstWhenNotTied(c *check.C) {
	a := mustURL(c, "http://example.com/a")
	b := mustURL(c, "http://example.com/b")

	sorted := webindex.SortForTest([]webindex.SearchResult{
		{URL: b, Title: "B", Score: 0.1},
		{URL: a, Title: "A", Score: 0.9},
	})

	c.Assert(sorted[0].Title, check.Equals, "A")
}
