package logging

import (
	"github.com/lefinal/mu/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"time"
)

// Keys added by JSONFormatter.
const (
	TimestampKey   = "@timestamp"
	AppKey         = "app"
	EnvironmentKey = "environment"
	HostKey        = "host"
)

// timestampLayout is ISO-8601 with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// JSONFormatter renders events as one JSON object per line.
type JSONFormatter struct {
	identity Identity
	encoder  zapcore.Encoder
}

// NewJSONFormatter creates a JSONFormatter that stamps each line with the given
// Identity and the local hostname.
func NewJSONFormatter(identity Identity) *JSONFormatter {
	return &JSONFormatter{
		identity: identity,
		encoder: zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			TimeKey:        TimestampKey,
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeTime:     encodeTimestamp,
			EncodeDuration: zapcore.StringDurationEncoder,
		}),
	}
}

func encodeTimestamp(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format(timestampLayout))
}

// Format renders @timestamp, app, environment, host and event followed by all
// remaining fields in their order. Payload fields named like one of the header
// fields replace the header value.
func (f *JSONFormatter) Format(_ Level, timestamp time.Time, fields Fields) (string, error) {
	event, _ := fields.Get(EventKey)
	all := make(Fields, 0, len(fields)+4)
	all = append(all,
		F(AppKey, f.identity.App),
		F(EnvironmentKey, f.identity.Environment),
		F(HostKey, Hostname()),
		F(EventKey, event))
	for _, field := range fields {
		if field.Key == EventKey {
			continue
		}
		all.Set(field.Key, field.Value)
	}
	zapFields := make([]zapcore.Field, 0, len(all))
	for _, field := range all {
		zapFields = append(zapFields, zap.Any(field.Key, field.Value))
	}
	buf, err := f.encoder.EncodeEntry(zapcore.Entry{Time: timestamp}, zapFields)
	if err != nil {
		return "", errors.Error{
			Code:    errors.ErrEncode,
			Kind:    errors.KindEncodeJSON,
			Err:     err,
			Message: "encode event as json",
			Details: errors.Details{"event": event},
		}
	}
	line := buf.String()
	buf.Free()
	return line, nil
}
