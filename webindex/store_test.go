package webindex_test

import (
	"context"
	"path/filepath"

	check "gopkg.in/check.v1"

	"github.com/nicwatson/javasandcrawer/webindex"
)

var _ = check.Suite(new(FileStoreTestSuite))

type FileStoreTestSuite struct{}

func (s *FileStoreTestSuite) TestSaveThenLoadRoundTrips(c *check.C) {
	a := mustURL(c, "http://example.com/a")

	idx := webindex.NewIndex(nil)
	err := idx.Build(context.Background(), []webindex.UnprocessedPage{
		{URL: a, Title: "A", Text: "alpha"},
	}, 0, 0)
	c.Assert(err, check.IsNil)

	snap, err := idx.Snapshot()
	c.Assert(err, check.IsNil)

	store := webindex.NewFileStore(filepath.Join(c.MkDir(), "crawl.dat"))

	c.Assert(store.Save(snap), check.IsNil)

	loaded, err := store.Load()
	c.Assert(err, check.IsNil)
	c.Assert(loaded, check.DeepEquals, snap)
}

func (s *FileStoreTestSuite) TestClearRemovesPersistedSnapshot(c *check.C) {
	a := mustURL(c, "http://example.com/a")

	idx := webindex.NewIndex(nil)
	err := idx.Build(context.Background(), []webindex.UnprocessedPage{
		{URL: a, Title: "A", Text: "alpha"},
	}, 0, 0)
	c.Assert(err, check.IsNil)

	snap, err := idx.Snapshot()
	c.Assert(err, check.IsNil)

	store := webindex.NewFileStore(filepath.Join(c.MkDir(), "crawl.dat"))
	c.Assert(store.Save(snap), check.IsNil)

	c.Assert(store.Clear(), check.IsNil)

	_, err = store.Load()
	c.Assert(err, check.NotNil)
}

func (s *FileStoreTestSuite) TestClearOnMissingFileIsNotAnError(c *check.C) {
	store := webindex.NewFileStore(filepath.Join(c.MkDir(), "never-written.dat"))

	c.Assert(store.Clear(), check.IsNil)
}
