package logging

import (
	"github.com/lefinal/mu/errors"
	"go.uber.org/zap/zapcore"
	"os"
	"time"
)

// Observer is notified about emitted events and timed units of work. It must
// be safe for concurrent use.
type Observer interface {
	ObserveEvent(level Level)
	ObserveWork(level Level, outcome Outcome)
}

// EventLoggerConfig is the configuration for NewEventLogger.
type EventLoggerConfig struct {
	// Sink receives rendered lines. If not set, a WriterSink for stdout with
	// DefaultLevel is used.
	Sink Sink
	// Formatter renders events. If not set, a JSONFormatter with
	// DefaultIdentity is used.
	Formatter Formatter
	// Clock returns the current time. If not set, time.Now is used.
	Clock func() time.Time
	// Observer is optional.
	Observer Observer
}

// EventLogger logs named events with arbitrary payloads. Payloads are flattened,
// rendered by a Formatter and passed to a Sink which decides whether to write
// them based on its minimum level. An EventLogger is safe for concurrent use as
// long as its Sink is.
type EventLogger struct {
	sink      Sink
	formatter Formatter
	clock     func() time.Time
	observer  Observer
}

// NewEventLogger creates an EventLogger from the given config.
func NewEventLogger(config EventLoggerConfig) *EventLogger {
	l := &EventLogger{
		sink:      config.Sink,
		formatter: config.Formatter,
		clock:     config.Clock,
		observer:  config.Observer,
	}
	if l.sink == nil {
		l.sink = NewWriterSink(zapcore.Lock(os.Stdout), DefaultLevel)
	}
	if l.formatter == nil {
		l.formatter = NewJSONFormatter(DefaultIdentity())
	}
	if l.clock == nil {
		l.clock = time.Now
	}
	return l
}

// Debug logs the event with DebugLevel.
func (l *EventLogger) Debug(event string, data any) error {
	return l.Log(DebugLevel, event, data)
}

// Info logs the event with InfoLevel.
func (l *EventLogger) Info(event string, data any) error {
	return l.Log(InfoLevel, event, data)
}

// Warn logs the event with WarnLevel.
func (l *EventLogger) Warn(event string, data any) error {
	return l.Log(WarnLevel, event, data)
}

// Error logs the event with ErrorLevel.
func (l *EventLogger) Error(event string, data any) error {
	return l.Log(ErrorLevel, event, data)
}

// Fatal logs the event with FatalLevel. Unlike zap, it does not exit.
func (l *EventLogger) Fatal(event string, data any) error {
	return l.Log(FatalLevel, event, data)
}

// DebugTimed runs the work and logs the event with DebugLevel. See LogTimed.
func (l *EventLogger) DebugTimed(event string, data any, work Work) error {
	return l.LogTimed(DebugLevel, event, data, work)
}

// InfoTimed runs the work and logs the event with InfoLevel. See LogTimed.
func (l *EventLogger) InfoTimed(event string, data any, work Work) error {
	return l.LogTimed(InfoLevel, event, data, work)
}

// WarnTimed runs the work and logs the event with WarnLevel. See LogTimed.
func (l *EventLogger) WarnTimed(event string, data any, work Work) error {
	return l.LogTimed(WarnLevel, event, data, work)
}

// ErrorTimed runs the work and logs the event with ErrorLevel. See LogTimed.
func (l *EventLogger) ErrorTimed(event string, data any, work Work) error {
	return l.LogTimed(ErrorLevel, event, data, work)
}

// FatalTimed runs the work and logs the event with FatalLevel. See LogTimed.
func (l *EventLogger) FatalTimed(event string, data any, work Work) error {
	return l.LogTimed(FatalLevel, event, data, work)
}

// Log logs the event with the given level. If data is a mapping, its entries
// are flattened into the event. Any other non-nil data is logged as the message
// field. Errors from formatting or writing are returned.
func (l *EventLogger) Log(level Level, event string, data any) error {
	if !level.Valid() {
		return errors.NewUnknownLevelError(int(level))
	}
	return l.forward(level, newExtra(event, data))
}

// LogTimed runs the given work and logs the event afterwards with the duration
// of the work in milliseconds. If the work fails, the event additionally holds
// kind and message of the failure and the error of the work is returned
// unchanged. If the work panics, the event is logged before the panic is
// continued. Otherwise, errors from formatting or writing are returned. A nil
// work is the same as calling Log.
func (l *EventLogger) LogTimed(level Level, event string, data any, work Work) error {
	if work == nil {
		return l.Log(level, event, data)
	}
	if !level.Valid() {
		return errors.NewUnknownLevelError(int(level))
	}
	extra := newExtra(event, data)
	outcome := measure(l.clock, func() error {
		return work(&extra)
	})
	if outcome.Failed() {
		extra.Set(ExceptionKey, outcome.exception())
	}
	extra.Set(DurationKey, outcome.Duration)
	err := l.forward(level, extra)
	if l.observer != nil {
		l.observer.ObserveWork(level, outcome)
	}
	if outcome.panicked {
		panic(outcome.Panic)
	}
	if outcome.Err != nil {
		return outcome.Err
	}
	return err
}

// newExtra creates the not yet flattened fields of an event.
func newExtra(event string, data any) Fields {
	extra := Fields{F(EventKey, event)}
	if data == nil {
		return extra
	}
	if entries, ok := mappingEntries(data); ok {
		for _, entry := range entries {
			extra.Set(entry.Key, entry.Value)
		}
		return extra
	}
	extra.Set(MessageKey, data)
	return extra
}

// forward flattens, formats and writes the event.
func (l *EventLogger) forward(level Level, extra Fields) error {
	line, err := l.formatter.Format(level, l.clock(), Flatten(extra))
	if err != nil {
		return wrapWithCode(err, errors.ErrEncode, "format event", level)
	}
	err = l.sink.Write(level, line)
	if err != nil {
		return wrapWithCode(err, errors.ErrIO, "write event", level)
	}
	if l.observer != nil {
		l.observer.ObserveEvent(level)
	}
	return nil
}

// wrapWithCode wraps the given error. Errors that are not errors.Error yet get
// the given code.
func wrapWithCode(err error, code errors.Code, message string, level Level) error {
	if _, ok := errors.Cast(err); !ok {
		return errors.FromErr(message, code, err, errors.Details{"level": level.String()})
	}
	return errors.Wrap(err, message, nil)
}

// ForEvent returns an EventView that logs all events with the given name.
func (l *EventLogger) ForEvent(event string) *EventView {
	return &EventView{
		logger: l,
		event:  event,
	}
}

// Level returns the minimum level of the Sink.
func (l *EventLogger) Level() Level {
	return l.sink.Level()
}

// SetLevel sets the minimum level of the Sink.
func (l *EventLogger) SetLevel(level Level) {
	l.sink.SetLevel(level)
}

// Sink returns the Sink for operations specific to its implementation, like
// syncing a WriterSink.
func (l *EventLogger) Sink() Sink {
	return l.sink
}
