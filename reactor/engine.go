package reactor

import (
	"context"
	"sync"

	"github.com/R3E-Network/chainreactor/infrastructure/logging"
	"github.com/R3E-Network/chainreactor/reactor/metrics"
)

const defaultChannelCapacity = 512

// Engine wires a set of Collectors, Strategies, and Executors over a pair of
// typed broadcast buses: collector events fan out to every strategy, and
// strategy-derived actions fan out to every executor. Engine is a
// pre-start builder; register collaborators with Add* then call Run.
type Engine[E any, A any] struct {
	eventCap  int
	actionCap int

	collectors []Collector[E]
	strategies []Strategy[E, A]
	executors  []Executor[A]

	metrics metrics.Sink
	logger  *logging.Logger
}

// New creates an Engine with the default bus capacities (512) and a no-op
// metrics sink.
func New[E any, A any]() *Engine[E, A] {
	return &Engine[E, A]{
		eventCap:  defaultChannelCapacity,
		actionCap: defaultChannelCapacity,
		metrics:   metrics.NoOp(),
		logger:    logging.NewFromEnv("reactor"),
	}
}

// WithEventChannelCapacity sets the event bus's ring buffer capacity.
func (e *Engine[E, A]) WithEventChannelCapacity(capacity int) *Engine[E, A] {
	e.eventCap = capacity
	return e
}

// WithActionChannelCapacity sets the action bus's ring buffer capacity.
func (e *Engine[E, A]) WithActionChannelCapacity(capacity int) *Engine[E, A] {
	e.actionCap = capacity
	return e
}

// WithMetricsSink overrides the engine's metrics sink. Purely ambient: it
// does not change the task graph or any ordering guarantee.
func (e *Engine[E, A]) WithMetricsSink(sink metrics.Sink) *Engine[E, A] {
	if sink != nil {
		e.metrics = sink
	}
	return e
}

// WithLogger overrides the engine's logger.
func (e *Engine[E, A]) WithLogger(logger *logging.Logger) *Engine[E, A] {
	if logger != nil {
		e.logger = logger
	}
	return e
}

// AddCollector registers a collector to be started when Run is called.
func (e *Engine[E, A]) AddCollector(c Collector[E]) *Engine[E, A] {
	e.collectors = append(e.collectors, c)
	return e
}

// AddStrategy registers a strategy to be synced and started when Run is
// called.
func (e *Engine[E, A]) AddStrategy(s Strategy[E, A]) *Engine[E, A] {
	e.strategies = append(e.strategies, s)
	return e
}

// AddExecutor registers an executor to be subscribed when Run is called.
func (e *Engine[E, A]) AddExecutor(ex Executor[A]) *Engine[E, A] {
	e.executors = append(e.executors, ex)
	return e
}

// StrategyCount returns the number of registered strategies.
func (e *Engine[E, A]) StrategyCount() int { return len(e.strategies) }

// ExecutorCount returns the number of registered executors.
func (e *Engine[E, A]) ExecutorCount() int { return len(e.executors) }

// Handle represents a running Engine. Cancel the context passed to Run, or
// call Stop, to begin shutdown; call Join to wait for every task to exit.
type Handle struct {
	cancel context.CancelFunc
	wg     *sync.WaitGroup
}

// Stop requests shutdown of every collector, strategy, and executor task.
func (h *Handle) Stop() { h.cancel() }

// Join blocks until every task has exited.
func (h *Handle) Join() { h.wg.Wait() }

// Run validates the engine's configuration, then brings up tasks in the
// order: subscribe every executor to the action bus, run every strategy's
// SyncState (subscribing each to the event bus first), then start every
// collector. This is the "safer" ordering: no action an already-synced
// strategy submits can be missed by an executor, and no event a collector
// emits can be missed by a strategy.
//
// Only ConfigError and InitError are startup-fatal: a collector that fails
// to open its event stream does not abort Run or affect its peers, since
// GetEventStream is called inside that collector's own task (see
// runCollector). Steady-state failures are likewise contained to the task
// that produced them. A ConfigError is returned before any task starts; an
// InitError is returned after the executor tasks (and the tasks of any
// strategies synced before the failing one) have started, and Run cancels
// and joins those tasks before returning it.
func (e *Engine[E, A]) Run(ctx context.Context) (*Handle, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}

	eventBus := newBus[E](e.eventCap)
	actionBus := newBus[A](e.actionCap)

	runCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup

	abort := func(err error) (*Handle, error) {
		cancel()
		wg.Wait()
		return nil, err
	}

	// 1. Subscribe every executor before anything can submit an action.
	for _, ex := range e.executors {
		recv := actionBus.subscribe()
		wg.Add(1)
		go e.runExecutor(runCtx, &wg, ex, recv)
	}

	// 2. Subscribe and sync every strategy before any collector can emit an
	// event. Each strategy's submitter counts every Submit call in the
	// metrics sink under the strategy's name before forwarding the action.
	submitter := newChannelSubmitter[A](actionBus)
	for _, s := range e.strategies {
		recv := eventBus.subscribe()
		name := s.Name()
		strategySubmitter := SubmitterMap[A, A](submitter, func(a A) (A, bool) {
			e.metrics.ActionSubmitted(name)
			return a, true
		})
		if err := s.SyncState(runCtx, strategySubmitter); err != nil {
			return abort(&InitError{Strategy: s.Name(), Err: err})
		}
		wg.Add(1)
		go e.runStrategy(runCtx, &wg, s, recv, strategySubmitter)
	}

	// 3. Start every collector. Opening the event stream happens inside
	// each collector's own task, so one collector failing to open its
	// stream can't prevent its peers from starting or abort Run.
	for _, c := range e.collectors {
		wg.Add(1)
		go e.runCollector(runCtx, &wg, c, eventBus)
	}

	// Close both buses once the context is canceled, waking any task
	// blocked in recv.
	go func() {
		<-runCtx.Done()
		eventBus.close()
		actionBus.close()
	}()

	return &Handle{cancel: cancel, wg: &wg}, nil
}

// RunAndJoin is a convenience wrapper that runs the engine and blocks until
// every task exits (normally, only after ctx is canceled).
func (e *Engine[E, A]) RunAndJoin(ctx context.Context) error {
	h, err := e.Run(ctx)
	if err != nil {
		return err
	}
	h.Join()
	return nil
}

func (e *Engine[E, A]) validate() error {
	if len(e.collectors) == 0 {
		return &ConfigError{Message: "at least one collector must be registered"}
	}
	if len(e.strategies) == 0 {
		return &ConfigError{Message: "at least one strategy must be registered"}
	}
	if len(e.executors) == 0 {
		return &ConfigError{Message: "at least one executor must be registered"}
	}
	if e.eventCap < 1 {
		return &ConfigError{Message: "event_channel_capacity must be >= 1"}
	}
	if e.actionCap < 1 {
		return &ConfigError{Message: "action_channel_capacity must be >= 1"}
	}
	return nil
}

func (e *Engine[E, A]) runCollector(ctx context.Context, wg *sync.WaitGroup, c Collector[E], eventBus *bus[E]) {
	defer wg.Done()
	stream, err := c.GetEventStream(ctx)
	if err != nil {
		e.logger.Error(ctx, "collector failed to open event stream", &StreamOpenError{Collector: c.Name(), Err: err}, nil)
		return
	}
	for {
		select {
		case event, ok := <-stream:
			if !ok {
				return
			}
			if err := eventBus.send(event); err != nil {
				return
			}
			e.metrics.EventObserved(c.Name())
		case <-ctx.Done():
			return
		}
	}
}

func (e *Engine[E, A]) runStrategy(ctx context.Context, wg *sync.WaitGroup, s Strategy[E, A], recv *receiver[E], submitter ActionSubmitter[A]) {
	defer wg.Done()
	for {
		event, err := recv.recv(ctx)
		if err != nil {
			switch err.(type) {
			case *LagSignal:
				e.metrics.SubscriberLagged(s.Name())
				e.logger.Warn(ctx, "strategy subscriber lagged", map[string]interface{}{
					"strategy": s.Name(),
					"error":    err.Error(),
				})
				continue
			default:
				return
			}
		}
		s.ProcessEvent(ctx, event, submitter)
	}
}

func (e *Engine[E, A]) runExecutor(ctx context.Context, wg *sync.WaitGroup, ex Executor[A], recv *receiver[A]) {
	defer wg.Done()
	for {
		action, err := recv.recv(ctx)
		if err != nil {
			switch err.(type) {
			case *LagSignal:
				e.metrics.SubscriberLagged(ex.Name())
				e.logger.Warn(ctx, "executor subscriber lagged", map[string]interface{}{
					"executor": ex.Name(),
					"error":    err.Error(),
				})
				continue
			default:
				return
			}
		}
		if err := ex.Execute(ctx, action); err != nil {
			e.metrics.ExecutorError(ex.Name())
			e.logger.Error(ctx, "executor failed to execute action", &ExecuteError{Executor: ex.Name(), Err: err}, nil)
			continue
		}
		e.metrics.ActionExecuted(ex.Name())
	}
}
