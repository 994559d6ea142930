package webindex_test

import (
	"context"

	check "gopkg.in/check.v1"

	"github.com/nicwatson/javasandcrawer/urlnorm"
	"github.com/nicwatson/javasandcrawer/webindex"
)

var _ = check.Suite(new(SnapshotTestSuite))

type SnapshotTestSuite struct{}

func (s *SnapshotTestSuite) TestRoundTripPreservesObservableOutputs(c *check.C) {
	a := mustURL(c, "http://example.com/a")
	b := mustURL(c, "http://example.com/b")

	idx := webindex.NewIndex(nil)
	err := idx.Build(context.Background(), []webindex.UnprocessedPage{
		{URL: a, Title: "A", Text: "alpha beta alpha", Outlinks: []urlnorm.URL{b}},
		{URL: b, Title: "B", Text: "beta"},
	}, 0, 0)
	c.Assert(err, check.IsNil)

	snap, err := idx.Snapshot()
	c.Assert(err, check.IsNil)

	data, err := webindex.EncodeSnapshot(snap)
	c.Assert(err, check.IsNil)

	decoded, err := webindex.DecodeSnapshot(data)
	c.Assert(err, check.IsNil)

	restored := webindex.Restore(decoded, nil)

	c.Assert(restored.Tf(a, "alpha"), check.Equals, idx.Tf(a, "alpha"))
	c.Assert(restored.Idf("alpha"), check.Equals, idx.Idf("alpha"))
	c.Assert(restored.PageRank(a), check.Equals, idx.PageRank(a))
	c.Assert(restored.Incoming(b), check.DeepEquals, idx.Incoming(b))
}
