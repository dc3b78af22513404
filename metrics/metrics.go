package metrics

import (
	stderrors "errors"
	"github.com/lefinal/mu/errors"
	"github.com/lefinal/mu/logging"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mu"

// Outcome label values for timed units of work.
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// EventMetrics records emitted events and timed units of work. It implements
// logging.Observer.
type EventMetrics struct {
	// EventsTotal counts events passed to the sink by level. Whether the sink
	// actually wrote them depends on its minimum level.
	EventsTotal *prometheus.CounterVec
	// WorkDuration observes durations of timed units of work in milliseconds by
	// level and outcome.
	WorkDuration *prometheus.HistogramVec
}

// NewEventMetrics creates EventMetrics and registers them at the given
// prometheus.Registerer. If the collectors are already registered, the
// existing ones are used.
func NewEventMetrics(registerer prometheus.Registerer) (*EventMetrics, error) {
	m := &EventMetrics{
		EventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "total",
			Help:      "Total number of events passed to the sink by level.",
		}, []string{"level"}),
		WorkDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "work",
			Name:      "duration_milliseconds",
			Help:      "Duration of timed units of work in milliseconds.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"level", "outcome"}),
	}
	var err error
	m.EventsTotal, err = register(registerer, m.EventsTotal)
	if err != nil {
		return nil, errors.Wrap(err, "register events total", nil)
	}
	m.WorkDuration, err = register(registerer, m.WorkDuration)
	if err != nil {
		return nil, errors.Wrap(err, "register work duration", nil)
	}
	return m, nil
}

// register registers the given collector or returns the already registered
// one.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) (C, error) {
	err := registerer.Register(collector)
	if err == nil {
		return collector, nil
	}
	var alreadyRegistered prometheus.AlreadyRegisteredError
	if stderrors.As(err, &alreadyRegistered) {
		if existing, ok := alreadyRegistered.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return collector, errors.FromErr("register collector", errors.ErrInternal, err, nil)
}

// ObserveEvent counts an event.
func (m *EventMetrics) ObserveEvent(level logging.Level) {
	m.EventsTotal.WithLabelValues(level.String()).Inc()
}

// ObserveWork records the duration of a unit of work.
func (m *EventMetrics) ObserveWork(level logging.Level, outcome logging.Outcome) {
	label := outcomeSuccess
	if outcome.Failed() {
		label = outcomeFailure
	}
	m.WorkDuration.WithLabelValues(level.String(), label).Observe(outcome.Duration)
}
