package pipeline

import (
	"context"
	"fmt"
	"sync"
)

// fifo runs a single Processor over its input channel in order, one
// payload at a time.
type fifo struct {
	proc Processor
}

// NewFIFO returns a StageRunner that processes payloads one at a time,
// preserving the order they arrive in.
func NewFIFO(proc Processor) StageRunner {
	return fifo{proc}
}

// Run processes payloads from params.Input() until the channel closes,
// the context is cancelled, or proc.Process returns an error. A
// non-nil result is forwarded to params.Output(); a nil result marks
// the payload processed and drops it.
func (r fifo) Run(ctx context.Context, params StageParams) {
	for {
		select {
		case <-ctx.Done():
			return
		case payloadIn, ok := <-params.Input():
			if !ok {
				return
			}

			payloadOut, err := r.proc.Process(ctx, payloadIn)
			if err != nil {
				mayEmitError(fmt.Errorf("pipeline stage %d: %w", params.StageIndex(), err), params.Error())

				return
			}

			if payloadOut == nil {
				payloadIn.MarkAsProcessed()

				continue
			}

			select {
			case <-ctx.Done():
				return
			case params.Output() <- payloadOut:
			}
		}
	}
}

// fixedWorkerPool runs a fixed number of fifo runners concurrently
// against the same input and output channels, so payloads are picked
// up by whichever worker is free.
type fixedWorkerPool struct {
	fifos []StageRunner
}

// NewFixedWorkerPool returns a StageRunner backed by numOfWorkers FIFO
// runners sharing proc, load-balanced across the stage's channels.
func NewFixedWorkerPool(proc Processor, numOfWorkers int) StageRunner {
	if numOfWorkers <= 0 {
		panic("pipeline: NewFixedWorkerPool requires numOfWorkers > 0")
	}

	fifos := make([]StageRunner, numOfWorkers)
	for i := 0; i < numOfWorkers; i++ {
		fifos[i] = NewFIFO(proc)
	}

	return fixedWorkerPool{fifos}
}

func (r fixedWorkerPool) Run(ctx context.Context, params StageParams) {
	var wg sync.WaitGroup

	for i := 0; i < len(r.fifos); i++ {
		wg.Add(1)

		go func(index int) {
			defer wg.Done()

			r.fifos[index].Run(ctx, params)
		}(i)
	}

	wg.Wait()
}

func mayEmitError(err error, errChan chan<- error) {
	select {
	case errChan <- err:
	default:
	}
}
