package pipeline_test

import (
	"context"
	"time"

	check "gopkg.in/check.v1"

	"github.com/nicwatson/javasandcrawer/pipeline"
)

var _ = check.Suite(new(stageRunnerTestSuite))

type stageRunnerTestSuite struct{}

func (s *stageRunnerTestSuite) TestFIFO(c *check.C) {
	stages := make([]pipeline.StageRunner, 10)
	for i := 0; i < len(stages); i++ {
		stages[i] = pipeline.NewFIFO(generatePassThruProcessor())
	}

	src := &sourceStab{data: generateStringPayloads(3)}
	sink := new(sinkStab)
	p := pipeline.New(stages...)

	err := p.Execute(context.TODO(), src, sink)
	c.Assert(err, check.IsNil)
	c.Assert(src.data, check.DeepEquals, sink.data)
	assertAllPayloadProcessed(c, src.data...)
}

func (s *stageRunnerTestSuite) TestFixedWorkerPool(c *check.C) {
	numOfWorkers := 10
	syncChan := make(chan struct{})
	rendezvousChan := make(chan struct{})
	doneChan := make(chan struct{})
	// This processor function discards the payload.
	proc := pipeline.ProcessorFunc(
		func(ctx context.Context, p pipeline.Payload) (pipeline.Payload, error) {
			syncChan <- struct{}{}
			<-rendezvousChan

			return nil, nil
		})

	src := &sourceStab{data: generateStringPayloads(numOfWorkers)}
	p := pipeline.New(pipeline.NewFixedWorkerPool(proc, numOfWorkers))

	go func() {
		err := p.Execute(context.TODO(), src, nil)
		c.Assert(err, check.IsNil)

		close(doneChan)
	}()

	// Wait for all workers to reach sync point. This means that each input
	// from the source is currently handled by a worker in parallel.
	for i := 0; i < numOfWorkers; i++ {
		select {
		case <-syncChan:
		case <-time.After(10 * time.Second):
			c.Fatalf("timed out waiting for worker %d to reach sync point", i)
		}
	}

	// Allow workers / go-routines to proceed.
	close(rendezvousChan)

	// Wait for the pipeline to complete.
	select {
	case <-doneChan:
		close(syncChan)
	case <-time.After(10 * time.Second):
		c.Fatal("timed out waiting for pipeline to complete")
	}
}

func generatePassThruProcessor() pipeline.Processor {
	return pipeline.ProcessorFunc(
		func(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
			return p, nil
		})
}
