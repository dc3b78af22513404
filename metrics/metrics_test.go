package metrics

import (
	"bytes"
	"github.com/lefinal/mu/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"io"
	"testing"
)

func newLogger(t *testing.T, registry *prometheus.Registry) (*logging.EventLogger, *EventMetrics) {
	m, err := NewEventMetrics(registry)
	require.NoError(t, err, "new event metrics should not fail")
	logger := logging.NewEventLogger(logging.EventLoggerConfig{
		Sink:     logging.NewWriterSink(zapcore.AddSync(&bytes.Buffer{}), logging.InfoLevel),
		Observer: m,
	})
	return logger, m
}

func TestEventMetrics_ObserveEvent(t *testing.T) {
	logger, m := newLogger(t, prometheus.NewRegistry())
	require.NoError(t, logger.Info("a", nil), "log should not fail")
	require.NoError(t, logger.Info("b", nil), "log should not fail")
	require.NoError(t, logger.Warn("c", nil), "log should not fail")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("info")), "should count info")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("warn")), "should count warn")
}

func TestEventMetrics_ObserveWork(t *testing.T) {
	logger, m := newLogger(t, prometheus.NewRegistry())
	require.NoError(t, logger.InfoTimed("ok", nil, func(_ *logging.Fields) error {
		return nil
	}), "timed log should not fail")
	assert.Equal(t, io.EOF, logger.InfoTimed("fail", nil, func(_ *logging.Fields) error {
		return io.EOF
	}), "should return error of work")
	assert.Equal(t, 2, testutil.CollectAndCount(m.WorkDuration), "should observe both outcomes")
}

func TestNewEventMetrics_AlreadyRegistered(t *testing.T) {
	registry := prometheus.NewRegistry()
	first, err := NewEventMetrics(registry)
	require.NoError(t, err, "first registration should not fail")
	second, err := NewEventMetrics(registry)
	require.NoError(t, err, "second registration should not fail")
	assert.Same(t, first.EventsTotal, second.EventsTotal, "should reuse existing counter")
	assert.Same(t, first.WorkDuration, second.WorkDuration, "should reuse existing histogram")
}
