package crawler_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/juju/clock/testclock"
	check "gopkg.in/check.v1"

	"github.com/nicwatson/javasandcrawer/crawler"
	"github.com/nicwatson/javasandcrawer/urlnorm"
)

var _ = check.Suite(new(CrawlerTestSuite))

type CrawlerTestSuite struct{}

type fakeGetter map[string]string

func (f fakeGetter) Get(url string) (*http.Response, error) {
	body, ok := f[url]
	if !ok {
		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader(""))}, nil
	}

	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(body))}, nil
}

type alwaysPublic struct{}

func (alwaysPublic) IsNetworkPrivate(string) (bool, error) { return false, nil }

func mustParse(c *check.C, raw string) urlnorm.URL {
	u, err := urlnorm.Parse(raw)
	c.Assert(err, check.IsNil)

	return u
}

func (s *CrawlerTestSuite) TestSequentialCrawlFollowsLinksBreadthFirst(c *check.C) {
	pages := fakeGetter{
		"http://example.com/a": `<html><title>A</title><body><p>alpha</p>
			<a href="./b.html">b</a></body></html>`,
		"http://example.com/b.html": `<html><title>B</title><body><p>beta</p></body></html>`,
	}

	cr, err := crawler.New(crawler.Config{
		Seeds:                  []urlnorm.URL{mustParse(c, "http://example.com/a")},
		URLGetter:              pages,
		PrivateNetworkDetector: alwaysPublic{},
	})
	c.Assert(err, check.IsNil)

	result, err := cr.Crawl(context.Background())
	c.Assert(err, check.IsNil)
	c.Assert(result, check.HasLen, 2)
	c.Assert(result[0].Title, check.Equals, "A")
	c.Assert(result[1].Title, check.Equals, "B")
}

func (s *CrawlerTestSuite) TestFetchFailureExhaustsRetriesThenAdmitsBlankPage(c *check.C) {
	cr, err := crawler.New(crawler.Config{
		Seeds:                  []urlnorm.URL{mustParse(c, "http://example.com/missing")},
		URLGetter:              fakeGetter{},
		PrivateNetworkDetector: alwaysPublic{},
		MaxRetries:             1,
	})
	c.Assert(err, check.IsNil)

	result, err := cr.Crawl(context.Background())
	c.Assert(err, check.IsNil)
	c.Assert(result, check.HasLen, 1)
	c.Assert(result[0].Title, check.Equals, "")
}

func (s *CrawlerTestSuite) TestRetryBackoffWaitsOnConfiguredClockBeforeReenqueueing(c *check.C) {
	clk := testclock.NewClock(time.Now())

	cr, err := crawler.New(crawler.Config{
		Seeds:                  []urlnorm.URL{mustParse(c, "http://example.com/missing")},
		URLGetter:              fakeGetter{},
		PrivateNetworkDetector: alwaysPublic{},
		MaxRetries:             2,
		RetryBackoff:           time.Second,
		Clock:                  clk,
	})
	c.Assert(err, check.IsNil)

	done := make(chan struct{})

	go func() {
		defer close(done)

		pages, crawlErr := cr.Crawl(context.Background())
		c.Check(crawlErr, check.IsNil)
		c.Check(pages, check.HasLen, 1)
	}()

	// MaxRetries: 2 allows two retries, so the fetch failure backoff
	// must be waited on twice before the page is admitted blank.
	c.Assert(clk.WaitAdvance(time.Second, 10*time.Second, 1), check.IsNil)
	c.Assert(clk.WaitAdvance(time.Second, 10*time.Second, 1), check.IsNil)

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		c.Fatal("crawl did not finish after backoff elapsed")
	}
}

func (s *CrawlerTestSuite) TestMaxPagesCapsCrawlSize(c *check.C) {
	pages := fakeGetter{
		"http://example.com/a": `<a href="./b">next</a>`,
		"http://example.com/b": `<a href="./c">next</a>`,
		"http://example.com/c": `<p>tail</p>`,
	}

	cr, err := crawler.New(crawler.Config{
		Seeds:                  []urlnorm.URL{mustParse(c, "http://example.com/a")},
		URLGetter:              pages,
		PrivateNetworkDetector: alwaysPublic{},
		MaxPages:               2,
	})
	c.Assert(err, check.IsNil)

	result, err := cr.Crawl(context.Background())
	c.Assert(err, check.IsNil)
	c.Assert(result, check.HasLen, 2)
}
