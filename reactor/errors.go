package reactor

import "fmt"

// ConfigError is returned from Engine.Run when the engine was asked to run
// with an invalid configuration, e.g. no collectors/strategies/executors
// registered, or a bus capacity below 1.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("reactor: invalid engine configuration: %s", e.Message)
}

// InitError wraps a failure returned by a Strategy's SyncState call. It
// aborts Engine.Run before any collector is started.
type InitError struct {
	Strategy string
	Err      error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("reactor: strategy %q failed to sync state: %v", e.Strategy, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// StreamOpenError wraps a failure returned by a Collector's GetEventStream
// call. It is a steady-state error, fatal only to that collector's own
// task: the engine logs it and the collector's peers keep running.
type StreamOpenError struct {
	Collector string
	Err       error
}

func (e *StreamOpenError) Error() string {
	return fmt.Sprintf("reactor: collector %q failed to open event stream: %v", e.Collector, e.Err)
}

func (e *StreamOpenError) Unwrap() error { return e.Err }

// ExecuteError wraps a failure returned by an Executor's Execute call. It is
// a steady-state error: the engine logs it and the executor's task
// continues consuming subsequent actions.
type ExecuteError struct {
	Executor string
	Err      error
}

func (e *ExecuteError) Error() string {
	return fmt.Sprintf("reactor: executor %q failed to execute action: %v", e.Executor, e.Err)
}

func (e *ExecuteError) Unwrap() error { return e.Err }

// LagSignal is returned by a bus subscription's Recv when the subscriber
// fell more than the bus capacity behind and some items were dropped from
// under it. The subscriber's cursor is advanced past the gap; Recv's next
// call resumes from the oldest item still buffered.
type LagSignal struct {
	Skipped uint64
}

func (e *LagSignal) Error() string {
	return fmt.Sprintf("reactor: subscriber lagged, skipped %d items", e.Skipped)
}

// ClosedSignal is returned by a bus subscription's Recv once the bus has
// been closed and no buffered items remain for that subscriber.
type ClosedSignal struct{}

func (e *ClosedSignal) Error() string { return "reactor: bus closed" }

// SendError is returned by ActionSubmitter.Submit (and by a collector's
// internal enqueue onto the event bus) when the target bus has already been
// closed, typically because the engine is shutting down.
type SendError struct {
	Reason string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("reactor: send failed: %s", e.Reason)
}
