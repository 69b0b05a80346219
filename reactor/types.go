// Package reactor provides a generic, in-process event-driven pipeline: a
// typed event bus feeds Strategy implementations, which derive Actions and
// hand them to an Engine-managed action bus consumed by Executors.
//
// The package is deliberately free of any blockchain or I/O specifics; see
// reactor/collector and reactor/executor for concrete collaborators wired to
// the Neo N3 network, and domain/automation for a reference Strategy.
package reactor

import "context"

// Collector produces a stream of events of type E. GetEventStream is called
// exactly once by the engine when the collector's task starts; it must not
// be called again on the same Collector instance.
type Collector[E any] interface {
	Name() string
	GetEventStream(ctx context.Context) (<-chan E, error)
}

// ActionSubmitter accepts actions derived by a Strategy. Submit is
// synchronous from the strategy's point of view: it enqueues onto the
// engine's action bus and returns once the enqueue has been accepted (or
// rejected, if the bus has already been torn down).
type ActionSubmitter[A any] interface {
	Submit(action A) error
}

// Strategy consumes events and derives actions. SyncState is invoked once,
// before the strategy's task starts consuming events, to let it load any
// state it needs (e.g. existing jobs, watermarks). ProcessEvent is called
// once per event seen on the strategy's event bus subscription; a strategy
// is never invoked concurrently with itself.
type Strategy[E any, A any] interface {
	Name() string
	SyncState(ctx context.Context, submitter ActionSubmitter[A]) error
	ProcessEvent(ctx context.Context, event E, submitter ActionSubmitter[A])
}

// Executor consumes actions from the action bus and carries out their
// effect. A failing Execute call is logged by the engine and does not stop
// the executor's task; the executor keeps consuming subsequent actions.
type Executor[A any] interface {
	Name() string
	Execute(ctx context.Context, action A) error
}

// Unnamed is an embeddable zero-value helper giving a collector, strategy,
// or executor a default Name() of "Unnamed" without requiring it to define
// one itself.
type Unnamed struct{}

// Name returns "Unnamed".
func (Unnamed) Name() string { return "Unnamed" }
