package reactor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intCollector struct {
	Unnamed
	values []int
}

func (c *intCollector) Name() string { return "int-collector" }

func (c *intCollector) GetEventStream(ctx context.Context) (<-chan int, error) {
	out := make(chan int, len(c.values))
	for _, v := range c.values {
		out <- v
	}
	close(out)
	return out, nil
}

func drain[T any](t *testing.T, ch <-chan T, n int) []T {
	t.Helper()
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		select {
		case v, ok := <-ch:
			if !ok {
				t.Fatalf("channel closed after %d of %d items", i, n)
			}
			out = append(out, v)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for item %d", i)
		}
	}
	return out
}

func TestCollectorMapTransformsEveryEvent(t *testing.T) {
	inner := &intCollector{values: []int{1, 2, 3}}
	mapped := CollectorMap[int, string](inner, func(v int) string {
		if v == 1 {
			return "one"
		}
		return "other"
	})

	stream, err := mapped.GetEventStream(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "other", "other"}, drain(t, stream, 3))
	assert.Equal(t, "int-collector", mapped.Name())
}

func TestCollectorFilterMapDropsUnmatched(t *testing.T) {
	inner := &intCollector{values: []int{1, 2, 3, 4}}
	evens := CollectorFilterMap[int, int](inner, func(v int) (int, bool) {
		if v%2 == 0 {
			return v, true
		}
		return 0, false
	})

	stream, err := evens.GetEventStream(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, drain(t, stream, 2))
}

func TestInjectCollectorIsCollectorMap(t *testing.T) {
	inner := &intCollector{values: []int{7}}
	injected := InjectCollector[int, string](inner, func(v int) string { return "tick" })

	stream, err := injected.GetEventStream(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tick"}, drain(t, stream, 1))
}

type recordingConcreteExecutor struct {
	name string
	seen []string
}

func (e *recordingConcreteExecutor) Name() string { return e.name }

func (e *recordingConcreteExecutor) Execute(ctx context.Context, action string) error {
	e.seen = append(e.seen, action)
	return nil
}

func TestExecutorMapSkipsUnmatchedVariant(t *testing.T) {
	inner := &recordingConcreteExecutor{name: "inner"}
	projected := ExecutorMap[string, string](inner, func(v string) (string, bool) {
		if v == "skip-me" {
			return "", false
		}
		return v, true
	})

	require.NoError(t, projected.Execute(context.Background(), "skip-me"))
	require.NoError(t, projected.Execute(context.Background(), "keep-me"))
	assert.Equal(t, []string{"keep-me"}, inner.seen)
	assert.Equal(t, "inner", projected.Name())
}
