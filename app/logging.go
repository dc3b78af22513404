package app

import (
	"github.com/lefinal/mu/errors"
	"github.com/lefinal/mu/logging"
	"github.com/lefinal/mu/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"strings"
)

// SelectFormatter returns the logging.ColoredFormatter for LogFormatColored and
// the logging.JSONFormatter for everything else.
func SelectFormatter(format string, identity logging.Identity) logging.Formatter {
	if strings.TrimSpace(format) == LogFormatColored {
		return logging.NewColoredFormatter()
	}
	return logging.NewJSONFormatter(identity)
}

// SetupLogging validates the given Config and creates the logging.EventLogger
// for it. The returned logging.WriterSink must be closed when done. If a
// prometheus.Registerer is given, event metrics are registered and recorded.
func SetupLogging(config Config, registerer prometheus.Registerer) (*logging.EventLogger, *logging.WriterSink, error) {
	err := ValidateConfig(config)
	if err != nil {
		return nil, nil, errors.Wrap(err, "validate config", nil)
	}
	sink, err := logging.OpenSink(config.SinkConfig())
	if err != nil {
		return nil, nil, errors.Wrap(err, "open sink", errors.Details{"output": config.LogOutput})
	}
	loggerConfig := logging.EventLoggerConfig{
		Sink:      sink,
		Formatter: SelectFormatter(config.LogFormat, config.Identity()),
	}
	if registerer != nil {
		eventMetrics, err := metrics.NewEventMetrics(registerer)
		if err != nil {
			_ = sink.Close()
			return nil, nil, errors.Wrap(err, "register event metrics", nil)
		}
		loggerConfig.Observer = eventMetrics
	}
	return logging.NewEventLogger(loggerConfig), sink, nil
}
