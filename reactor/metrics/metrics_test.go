package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, vec.WithLabelValues(labels...).Write(m))
	return m.GetCounter().GetValue()
}

func TestPrometheusSinkIncrementsLabeledCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	sink := NewWithRegistry("chainreactor-demo", registry)

	sink.EventObserved("block-collector")
	sink.EventObserved("block-collector")
	sink.ActionSubmitted("automation-strategy")
	sink.ActionExecuted("rawtx-executor")
	sink.ExecutorError("rawtx-executor")
	sink.SubscriberLagged("automation-strategy")

	assert.Equal(t, float64(2), counterValue(t, sink.eventsTotal, "chainreactor-demo", "block-collector"))
	assert.Equal(t, float64(1), counterValue(t, sink.actionsSubmitted, "chainreactor-demo", "automation-strategy"))
	assert.Equal(t, float64(1), counterValue(t, sink.actionsExecuted, "chainreactor-demo", "rawtx-executor"))
	assert.Equal(t, float64(1), counterValue(t, sink.executorErrors, "chainreactor-demo", "rawtx-executor"))
	assert.Equal(t, float64(1), counterValue(t, sink.lagTotal, "chainreactor-demo", "automation-strategy"))
}

func TestNewWithRegistryNilRegistererSkipsRegistration(t *testing.T) {
	require.NotPanics(t, func() {
		sink := NewWithRegistry("svc-a", nil)
		sink.EventObserved("x")
	})
}

func TestNoOpSinkDiscardsObservations(t *testing.T) {
	sink := NoOp()
	assert.NotPanics(t, func() {
		sink.EventObserved("x")
		sink.ActionSubmitted("y")
		sink.ActionExecuted("z")
		sink.ExecutorError("z")
		sink.SubscriberLagged("x")
	})
}

func TestTwoSinksWithDistinctRegistriesDoNotConflict(t *testing.T) {
	r1 := prometheus.NewRegistry()
	r2 := prometheus.NewRegistry()

	require.NotPanics(t, func() {
		NewWithRegistry("svc-a", r1)
		NewWithRegistry("svc-b", r2)
	})
}
