// Package metrics instruments the reactor engine with Prometheus counters:
// one CounterVec per concern, with an optional custom Registerer, covering
// the engine's own event/action/lag/error counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Sink receives counters from a running Engine. A nil Sink is never passed
// to collaborators; Engine defaults to NoOp() when WithMetricsSink is not
// called.
type Sink interface {
	EventObserved(collector string)
	ActionSubmitted(strategy string)
	ActionExecuted(executor string)
	ExecutorError(executor string)
	SubscriberLagged(consumer string)
}

// noop implements Sink with no-op methods. It is the engine's default so
// the core pipeline runs with zero instrumentation overhead until a real
// Sink is wired in.
type noop struct{}

// NoOp returns a Sink that discards every observation.
func NoOp() Sink { return noop{} }

func (noop) EventObserved(string)   {}
func (noop) ActionSubmitted(string) {}
func (noop) ActionExecuted(string)  {}
func (noop) ExecutorError(string)   {}
func (noop) SubscriberLagged(string) {}

// Prometheus is a Sink backed by Prometheus counters, one CounterVec per
// concern labeled by the collector/strategy/executor/consumer name.
type Prometheus struct {
	serviceName      string
	eventsTotal      *prometheus.CounterVec
	actionsSubmitted *prometheus.CounterVec
	actionsExecuted  *prometheus.CounterVec
	executorErrors   *prometheus.CounterVec
	lagTotal         *prometheus.CounterVec
}

// New creates a Prometheus sink registered against the default registerer.
func New(serviceName string) *Prometheus {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a Prometheus sink registered against registerer.
// Passing a nil registerer skips registration, useful for tests that
// construct several sinks in the same process.
func NewWithRegistry(serviceName string, registerer prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		serviceName: serviceName,
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reactor_events_total",
				Help: "Total number of events observed per collector",
			},
			[]string{"service", "collector"},
		),
		actionsSubmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reactor_actions_submitted_total",
				Help: "Total number of actions submitted per strategy",
			},
			[]string{"service", "strategy"},
		),
		actionsExecuted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reactor_actions_executed_total",
				Help: "Total number of actions executed per executor",
			},
			[]string{"service", "executor"},
		),
		executorErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reactor_executor_errors_total",
				Help: "Total number of executor Execute failures",
			},
			[]string{"service", "executor"},
		),
		lagTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reactor_subscriber_lag_total",
				Help: "Total number of times a bus subscriber fell behind and skipped items",
			},
			[]string{"service", "consumer"},
		),
	}

	if registerer != nil {
		registerer.MustRegister(
			p.eventsTotal,
			p.actionsSubmitted,
			p.actionsExecuted,
			p.executorErrors,
			p.lagTotal,
		)
	}

	return p
}

func (p *Prometheus) EventObserved(collector string) {
	p.eventsTotal.WithLabelValues(p.serviceName, collector).Inc()
}

func (p *Prometheus) ActionSubmitted(strategy string) {
	p.actionsSubmitted.WithLabelValues(p.serviceName, strategy).Inc()
}

func (p *Prometheus) ActionExecuted(executor string) {
	p.actionsExecuted.WithLabelValues(p.serviceName, executor).Inc()
}

func (p *Prometheus) ExecutorError(executor string) {
	p.executorErrors.WithLabelValues(p.serviceName, executor).Inc()
}

func (p *Prometheus) SubscriberLagged(consumer string) {
	p.lagTotal.WithLabelValues(p.serviceName, consumer).Inc()
}
