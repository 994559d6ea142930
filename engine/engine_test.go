package engine_test

import (
	"context"

	check "gopkg.in/check.v1"

	"github.com/nicwatson/javasandcrawer/engine"
	"github.com/nicwatson/javasandcrawer/urlnorm"
	"github.com/nicwatson/javasandcrawer/webindex"

	"testing"
)

func Test(t *testing.T) { check.TestingT(t) }

var _ = check.Suite(new(EngineTestSuite))

type EngineTestSuite struct{}

func (s *EngineTestSuite) TestSearchBeforeCrawlErrors(c *check.C) {
	e, err := engine.New(engine.Config{Seeds: []string{"http://example.com"}})
	c.Assert(err, check.IsNil)

	_, err = e.Search("anything", false, 0)
	c.Assert(err, check.NotNil)
}

func (s *EngineTestSuite) TestPageRankBeforeCrawlReturnsSentinel(c *check.C) {
	e, err := engine.New(engine.Config{Seeds: []string{"http://example.com"}})
	c.Assert(err, check.IsNil)

	u, err := urlnorm.Parse("http://example.com")
	c.Assert(err, check.IsNil)

	c.Assert(e.PageRank(u), check.Equals, -1.0)
}

func (s *EngineTestSuite) TestNewRequiresAtLeastOneSeed(c *check.C) {
	_, err := engine.New(engine.Config{})
	c.Assert(err, check.NotNil)
}

func (s *EngineTestSuite) TestInitializeClearsRatherThanLoadsPersistedStore(c *check.C) {
	store := &fakeStore{}

	e, err := engine.New(engine.Config{
		Seeds: []string{"http://example.com"},
		Store: store,
	})
	c.Assert(err, check.IsNil)

	c.Assert(e.Initialize(context.Background()), check.IsNil)
	c.Assert(store.cleared, check.Equals, true)
	c.Assert(store.loaded, check.Equals, false)

	_, err = e.Search("anything", false, 0)
	c.Assert(err, check.NotNil)
}

func (s *EngineTestSuite) TestInitializeWithoutStoreIsNoOp(c *check.C) {
	e, err := engine.New(engine.Config{Seeds: []string{"http://example.com"}})
	c.Assert(err, check.IsNil)

	c.Assert(e.Initialize(context.Background()), check.IsNil)
}

type fakeStore struct {
	cleared bool
	loaded  bool
}

func (f *fakeStore) Save(webindex.Snapshot) error { return nil }

func (f *fakeStore) Load() (webindex.Snapshot, error) {
	f.loaded = true

	return webindex.Snapshot{}, nil
}

func (f *fakeStore) Clear() error {
	f.cleared = true

	return nil
}

func (s *EngineTestSuite) TestProgressStagesFireInOrderDuringCrawl(c *check.C) {
	var seen []engine.Stage

	e, err := engine.New(engine.Config{
		Seeds:    []string{"http://127.0.0.1:0/unreachable"},
		Progress: func(st engine.Stage) { seen = append(seen, st) },
	})
	c.Assert(err, check.IsNil)

	_ = e.Crawl(context.Background())

	c.Assert(len(seen) >= 1, check.Equals, true)
	c.Assert(seen[0], check.Equals, engine.Retrieving)
	c.Assert(seen, check.DeepEquals, []engine.Stage{
		engine.Retrieving, engine.Parsing, engine.Linking, engine.Ranking, engine.Done,
	})
}
