// Package pipeline strings together a Source, zero or more
// concurrent processing stages, and a Sink into a single asynchronous
// run. crawler builds its fetch stage on top of it; a caller wanting
// a different worker topology only needs to satisfy StageRunner.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Pipeline is an ordered list of stages sitting between a source and
// a sink.
type Pipeline struct {
	stages []StageRunner
}

// New returns a Pipeline running stages in order.
func New(stages ...StageRunner) *Pipeline {
	return &Pipeline{stages}
}

// Execute drains src through the pipeline's stages into sink and
// returns once every payload has been processed or discarded, the
// context is cancelled, or a stage reports an error. Errors from
// multiple stages are aggregated rather than the first one winning.
// It is safe to call concurrently with different sources and sinks.
func (p *Pipeline) Execute(ctx context.Context, src Source, sink Sink) error {
	var wg sync.WaitGroup
	executionCtx, cancel := context.WithCancel(ctx)

	// stageChans[i] feeds stage i; stageChans[i+1] carries its output.
	// One extra channel connects source directly to sink when there
	// are no stages at all.
	stageChans := make([]chan Payload, len(p.stages)+1)
	for i := range stageChans {
		stageChans[i] = make(chan Payload)
	}

	errChan := make(chan error, len(p.stages)+2)

	for i := 0; i < len(p.stages); i++ {
		wg.Add(1)

		go func(index int) {
			defer wg.Done()

			p.stages[index].Run(executionCtx, &stageParams{
				stage:   index,
				inChan:  stageChans[index],
				outChan: stageChans[index+1],
				errChan: errChan,
			})

			// A stage's Run only returns once its own input is
			// exhausted or the pipeline is shutting down, so closing
			// its output propagates that to the next stage in turn.
			close(stageChans[index+1])
		}(i)
	}

	wg.Add(2)

	go func() {
		defer wg.Done()

		sourceWorker(executionCtx, src, stageChans[0], errChan)
		close(stageChans[0])
	}()

	go func() {
		defer wg.Done()

		sinkWorker(executionCtx, sink, stageChans[len(stageChans)-1], errChan)
	}()

	go func() {
		wg.Wait()
		close(errChan)
		cancel()
	}()

	var err error
	for stageErr := range errChan {
		err = multierror.Append(err, stageErr)
		cancel()
	}

	return err
}

func sourceWorker(ctx context.Context, src Source, outChan chan<- Payload, errChan chan<- error) {
	for src.Next(ctx) {
		select {
		case <-ctx.Done():
			return
		case outChan <- src.Payload():
		}
	}

	if err := src.Error(); err != nil {
		mayEmitError(fmt.Errorf("pipeline source: %w", err), errChan)
	}
}

func sinkWorker(ctx context.Context, sink Sink, inChan <-chan Payload, errChan chan<- error) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-inChan:
			if !ok {
				return
			}

			if err := sink.Consume(ctx, payload); err != nil {
				mayEmitError(fmt.Errorf("pipeline sink: %w", err), errChan)

				return
			}

			payload.MarkAsProcessed()
		}
	}
}
