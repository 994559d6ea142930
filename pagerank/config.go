package pagerank

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// Config defines configurations for a page-rank Calculator.
type Config struct {
	// Alpha is the teleport probability used when building the
	// stochastic transition matrix. Defaults to 0.1.
	Alpha float64

	// Epsilon is the convergence threshold: iteration stops once the
	// Euclidean distance between successive rank vectors drops to or
	// below this value. Defaults to 1e-4.
	Epsilon float64

	// The logger to use. If not defined an output-discarding logger
	// will be used instead.
	Logger *logrus.Entry
}

func (c *Config) validate() error {
	var err error

	if c.Alpha <= 0 || c.Alpha >= 1 {
		if c.Alpha == 0 {
			c.Alpha = 0.1
		} else {
			err = multierror.Append(err, fmt.Errorf("alpha must be in (0, 1)"))
		}
	}

	if c.Epsilon <= 0 {
		c.Epsilon = 1e-4
	}

	if c.Logger == nil {
		c.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
