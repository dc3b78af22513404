package logging

import (
	"github.com/gobuffalo/nulls"
	"github.com/lefinal/mu/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"io"
	"os"
)

// Sink filters rendered lines by level and writes them. Implementations must
// serialize concurrent writes themselves.
type Sink interface {
	// Write writes the given line if the level is at least the minimum level.
	Write(level Level, line string) error
	// Level returns the current minimum level.
	Level() Level
	// SetLevel sets the minimum level.
	SetLevel(level Level)
}

// WriterSink is a Sink writing to a zapcore.WriteSyncer.
type WriterSink struct {
	out   zapcore.WriteSyncer
	level zap.AtomicLevel
	// closer is set if the output needs to be closed when done.
	closer io.Closer
}

// NewWriterSink creates a WriterSink for the given output. The output is
// expected to be safe for concurrent use. Wrap it with zapcore.Lock if not.
func NewWriterSink(out zapcore.WriteSyncer, minLevel Level) *WriterSink {
	return &WriterSink{
		out:   out,
		level: zap.NewAtomicLevelAt(minLevel.zapLevel()),
	}
}

// Write writes the line to the output if level is enabled.
func (s *WriterSink) Write(level Level, line string) error {
	if !s.level.Enabled(level.zapLevel()) {
		return nil
	}
	_, err := s.out.Write([]byte(line))
	if err != nil {
		return errors.Error{
			Code:    errors.ErrIO,
			Kind:    errors.KindSinkWrite,
			Err:     err,
			Message: "write line",
			Details: errors.Details{"level": level.String()},
		}
	}
	return nil
}

// Level returns the minimum level.
func (s *WriterSink) Level() Level {
	return levelFromZap(s.level.Level())
}

// SetLevel sets the minimum level. It is safe to call while writing.
func (s *WriterSink) SetLevel(level Level) {
	s.level.SetLevel(level.zapLevel())
}

// Sync flushes buffered output.
func (s *WriterSink) Sync() error {
	return s.out.Sync()
}

// Close closes the output if it is a file.
func (s *WriterSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// SinkConfig is the configuration for OpenSink.
type SinkConfig struct {
	// File is the path of the log file. If not set, output goes to stdout or
	// stderr.
	File nulls.String
	// Stderr writes to stderr instead of stdout if File is not set.
	Stderr bool
	// MinLevel is the initial minimum level.
	MinLevel Level
	// MaxSize is the maximum size of the log file in megabytes before it gets
	// rotated.
	MaxSize int
	// KeepDays is the maximum number of days to keep old log files. Zero means
	// old files are never removed because of their age.
	KeepDays int
}

// OpenSink creates a WriterSink based on the given SinkConfig.
func OpenSink(config SinkConfig) (*WriterSink, error) {
	if config.MaxSize < 0 || config.KeepDays < 0 {
		return nil, errors.NewInvalidConfigError(errors.KindNegativeLimit, "file limits must not be negative",
			errors.Details{"max_size": config.MaxSize, "keep_days": config.KeepDays})
	}
	if !config.MinLevel.Valid() {
		return nil, errors.NewUnknownLevelError(int(config.MinLevel))
	}
	if !config.File.Valid {
		out := os.Stdout
		if config.Stderr {
			out = os.Stderr
		}
		return NewWriterSink(zapcore.Lock(out), config.MinLevel), nil
	}
	if config.File.String == "" {
		return nil, errors.Error{
			Code:    errors.ErrInvalidConfig,
			Kind:    errors.KindOpenOutput,
			Message: "empty log file path",
		}
	}
	file := &lumberjack.Logger{
		Filename: config.File.String,
		MaxSize:  config.MaxSize,
		MaxAge:   config.KeepDays,
	}
	sink := NewWriterSink(zapcore.AddSync(file), config.MinLevel)
	sink.closer = file
	return sink, nil
}
