package crawler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/nicwatson/javasandcrawer/crawler/privnet"
	"github.com/nicwatson/javasandcrawer/urlnorm"
)

const (
	defaultMaxRetries        = 3
	defaultMaxPages          = 10000
	defaultNumOfFetchWorkers = 1
	defaultRetryBackoff      = 0
)

// Config configures a Crawler.
type Config struct {
	// Seeds are the URLs the crawl frontier starts from. At least one
	// is required.
	Seeds []urlnorm.URL

	// An API for detecting private network addresses. If not specified,
	// a default implementation that handles the private network ranges
	// defined in RFC1918 will be used instead.
	PrivateNetworkDetector PrivateNetworkDetector

	// An API for performing HTTP requests. If not specified,
	// http.DefaultClient will be used instead.
	URLGetter URLGetter

	// MaxRetries is the number of times a fetch failure for a given
	// URL is retried before the crawler gives up and admits a blank
	// page for it. Defaults to 3.
	MaxRetries int

	// MaxPages caps the number of pages the crawl will admit before
	// stopping, regardless of how much frontier remains. Defaults to
	// 10000.
	MaxPages int

	// NumOfFetchWorkers is the number of pages fetched concurrently.
	// A value of 1 makes the crawl fully sequential. Defaults to 1.
	NumOfFetchWorkers int

	// RetryBackoff is how long the crawler waits before re-enqueueing
	// a URL whose fetch failed. Defaults to 0 (retry immediately).
	RetryBackoff time.Duration

	// Clock is the time source used to wait out RetryBackoff. Defaults
	// to clock.WallClock. Tests can substitute a fake clock to make
	// retry timing deterministic.
	Clock clock.Clock

	// The logger to use. If not defined an output-discarding logger
	// will be used instead.
	Logger *logrus.Entry
}

func (c *Config) validate() error {
	var err error

	if len(c.Seeds) == 0 {
		err = multierror.Append(err, fmt.Errorf("at least one seed url must be provided"))
	}

	if c.PrivateNetworkDetector == nil {
		var detErr error
		c.PrivateNetworkDetector, detErr = privnet.NewDetector()
		if detErr != nil {
			err = multierror.Append(err, detErr)
		}
	}

	if c.URLGetter == nil {
		c.URLGetter = http.DefaultClient
	}

	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}

	if c.MaxPages <= 0 {
		c.MaxPages = defaultMaxPages
	}

	if c.NumOfFetchWorkers <= 0 {
		c.NumOfFetchWorkers = defaultNumOfFetchWorkers
	}

	if c.RetryBackoff < 0 {
		c.RetryBackoff = defaultRetryBackoff
	}

	if c.Clock == nil {
		c.Clock = clock.WallClock
	}

	if c.Logger == nil {
		c.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
