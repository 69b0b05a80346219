package reactor

import "context"

// CollectorMap adapts a Collector[E1] into a Collector[E2] by applying f to
// every event it produces. It is the generic building block behind
// InjectCollector below.
type collectorMap[E1 any, E2 any] struct {
	inner Collector[E1]
	f     func(E1) E2
}

func CollectorMap[E1 any, E2 any](inner Collector[E1], f func(E1) E2) Collector[E2] {
	return &collectorMap[E1, E2]{inner: inner, f: f}
}

func (c *collectorMap[E1, E2]) Name() string { return c.inner.Name() }

func (c *collectorMap[E1, E2]) GetEventStream(ctx context.Context) (<-chan E2, error) {
	in, err := c.inner.GetEventStream(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan E2)
	go func() {
		defer close(out)
		for {
			select {
			case e, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- c.f(e):
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// CollectorFilterMap adapts a Collector[E1] into a Collector[E2], dropping
// events for which f reports !ok.
type collectorFilterMap[E1 any, E2 any] struct {
	inner Collector[E1]
	f     func(E1) (E2, bool)
}

func CollectorFilterMap[E1 any, E2 any](inner Collector[E1], f func(E1) (E2, bool)) Collector[E2] {
	return &collectorFilterMap[E1, E2]{inner: inner, f: f}
}

func (c *collectorFilterMap[E1, E2]) Name() string { return c.inner.Name() }

func (c *collectorFilterMap[E1, E2]) GetEventStream(ctx context.Context) (<-chan E2, error) {
	in, err := c.inner.GetEventStream(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan E2)
	go func() {
		defer close(out)
		for {
			select {
			case e, ok := <-in:
				if !ok {
					return
				}
				e2, ok := c.f(e)
				if !ok {
					continue
				}
				select {
				case out <- e2:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// InjectCollector is the higher-order-constructor equivalent of the
// reference implementation's map_collector! macro: it lifts a
// concretely-typed Collector[E1] into the engine's tagged-union event type
// E2 by applying a variant constructor (e.g. wrapping a NewBlock payload
// into a ChainEvent).
func InjectCollector[E1 any, E2 any](inner Collector[E1], inject func(E1) E2) Collector[E2] {
	return CollectorMap(inner, inject)
}

// executorMap projects the tagged-union action type A1 down to the
// concrete type A2 an inner executor understands, skipping (succeeding
// silently) on actions that don't belong to its variant.
type executorMap[A1 any, A2 any] struct {
	inner   Executor[A2]
	project func(A1) (A2, bool)
}

func (p *executorMap[A1, A2]) Name() string { return p.inner.Name() }

func (p *executorMap[A1, A2]) Execute(ctx context.Context, action A1) error {
	a2, ok := p.project(action)
	if !ok {
		return nil
	}
	return p.inner.Execute(ctx, a2)
}

// ExecutorMap is the higher-order-constructor equivalent of the reference
// implementation's map_executor! macro: it lifts a concretely-typed
// Executor[A2] into the engine's tagged-union action type A1 via a
// projection project: A1 -> (A2, ok), built the way map_executor!(e, Variant)
// derives its projection from match a1 { Variant(v) => Some(v), _ => None }.
// Any action for which project reports !ok is not forwarded to inner; this
// is the canonical pattern for registering one executor per variant of a
// tagged-union action type.
func ExecutorMap[A1 any, A2 any](inner Executor[A2], project func(A1) (A2, bool)) Executor[A1] {
	return &executorMap[A1, A2]{inner: inner, project: project}
}
