// Package service provides a minimal way to run several long-lived
// components of the search engine side by side, such as the
// interactive query loop alongside a periodic re-crawl loop, and shut them all
// down together if any one of them fails.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Service is a long-running component that blocks until its context
// is cancelled or it encounters an unrecoverable error.
type Service interface {
	// Name returns the service's name, used to label its errors.
	Name() string

	// Run executes the service and blocks until the context is
	// cancelled or an error occurs.
	Run(context.Context) error
}

// Group is a set of services that run concurrently as a unit.
type Group []Service

// Execute runs every service in the group and blocks until all of
// them have exited, either because ctx was cancelled or because one
// of them returned an error, which cancels the rest.
func (g Group) Execute(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	executionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(len(g))
	errChan := make(chan error, len(g))

	for _, s := range g {
		go func(s Service) {
			defer wg.Done()

			if err := s.Run(executionCtx); err != nil {
				errChan <- fmt.Errorf("%s: %w", s.Name(), err)

				cancel()
			}
		}(s)
	}

	go func() {
		wg.Wait()
		cancel()
	}()

	<-executionCtx.Done()

	wg.Wait()

	var err error
	close(errChan)

	for srvErr := range errChan {
		err = multierror.Append(err, srvErr)
	}

	return err
}
