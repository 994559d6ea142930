package pipeline

import "context"

// Source feeds a Pipeline. Next advances to the next payload and
// reports whether one is available; Payload returns it; Error
// reports why Next last returned false, if that was due to a failure
// rather than exhaustion.
type Source interface {
	Next(context.Context) bool
	Payload() Payload
	Error() error
}

// Payload is a unit of work flowing through a Pipeline. Clone must
// produce an independent copy safe to hand to a second processor
// concurrently with the original. MarkAsProcessed is called exactly
// once, when the payload reaches the sink or is dropped by a stage.
type Payload interface {
	Clone() Payload
	MarkAsProcessed()
}

// Processor transforms a payload for a single pipeline stage. Process
// may return a nil Payload to drop it rather than pass it downstream,
// for example when the input turns out not to be worth keeping.
type Processor interface {
	Process(context.Context, Payload) (Payload, error)
}

// ProcessorFunc adapts a plain function to Processor.
type ProcessorFunc func(context.Context, Payload) (Payload, error)

func (f ProcessorFunc) Process(ctx context.Context, p Payload) (Payload, error) {
	return f(ctx, p)
}

// StageRunner drives one stage of a Pipeline. Run must block until
// its input channel closes, ctx is cancelled, or it hits an error it
// can't continue past.
type StageRunner interface {
	Run(context.Context, StageParams)
}

// StageParams are the channels and position a StageRunner needs to
// participate in a Pipeline.
type StageParams interface {
	StageIndex() int
	Input() <-chan Payload
	Output() chan<- Payload
	Error() chan<- error
}

// Sink consumes the payloads that fall out the end of a Pipeline.
type Sink interface {
	Consume(context.Context, Payload) error
}
