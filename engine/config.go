package engine

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/nicwatson/javasandcrawer/webindex"
)

// Config configures an Engine.
type Config struct {
	// Seeds are the raw seed URLs the crawl frontier starts from.
	// Entries that fail to parse are dropped silently, matching the
	// crawler's own handling of malformed URLs.
	Seeds []string

	MaxRetries        int
	MaxPages          int
	NumOfFetchWorkers int

	Alpha   float64
	Epsilon float64

	// Store, if set, is used to persist the built index after each
	// Crawl and to clear any snapshot left behind by a previous run
	// during Initialize. A nil Store means Crawl's result is never
	// durable across process restarts.
	Store webindex.Store

	// Progress, if set, is invoked as Crawl advances through its
	// stages.
	Progress ProgressFn

	Logger *logrus.Entry
}

func (c *Config) validate() error {
	var err error

	if len(c.Seeds) == 0 {
		err = multierror.Append(err, fmt.Errorf("at least one seed url must be provided"))
	}

	if c.Logger == nil {
		c.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
