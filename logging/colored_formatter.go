package logging

import (
	"fmt"
	"github.com/fatih/color"
	"math"
	"strconv"
	"strings"
	"time"
)

// clockLayout is HH:MM:SS.mmm.
const clockLayout = "15:04:05.000"

// ColoredFormatter renders events as human-readable text with ANSI colors. The
// output is not meant for machine parsing.
type ColoredFormatter struct {
	timestampColor *color.Color
	eventColor     *color.Color
	keyColor       *color.Color
	durationColor  *color.Color
}

// NewColoredFormatter creates a ColoredFormatter. Colors are always emitted,
// regardless of whether the output is a terminal. Choosing whether to use
// colors is up to whoever selects the formatter.
func NewColoredFormatter() *ColoredFormatter {
	return &ColoredFormatter{
		timestampColor: forcedColor(color.FgMagenta),
		eventColor:     forcedColor(color.FgGreen),
		keyColor:       forcedColor(color.FgBlue),
		durationColor:  forcedColor(color.FgRed),
	}
}

func forcedColor(attribute color.Attribute) *color.Color {
	c := color.New(attribute)
	c.EnableColor()
	return c
}

// Format renders the timestamp, the event name and key=value pairs for all
// other fields. Duration is appended in parentheses and SQL on the next line.
func (f *ColoredFormatter) Format(_ Level, timestamp time.Time, fields Fields) (string, error) {
	event, _ := fields.Get(EventKey)
	duration, hasDuration := fields.Get(DurationKey)
	sql, hasSQL := fields.Get(SQLKey)

	var sb strings.Builder
	sb.WriteString(f.timestampColor.Sprint("[" + timestamp.Format(clockLayout) + "]"))
	sb.WriteByte(' ')
	sb.WriteString(f.eventColor.Sprint(renderValue(event)))
	for _, field := range fields.Without(EventKey, DurationKey, SQLKey) {
		sb.WriteByte(' ')
		sb.WriteString(f.keyColor.Sprint(field.Key))
		sb.WriteByte('=')
		sb.WriteString(renderValue(field.Value))
	}
	if hasDuration && duration != nil {
		sb.WriteByte(' ')
		sb.WriteString(f.durationColor.Sprint("(" + formatMillis(duration) + "ms)"))
	}
	if hasSQL && sql != nil {
		sb.WriteByte('\n')
		sb.WriteString(renderValue(sql))
	}
	sb.WriteByte('\n')
	return sb.String(), nil
}

func renderValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// formatMillis rounds the given duration in milliseconds to two decimals and
// keeps at least one decimal.
func formatMillis(v any) string {
	var ms float64
	switch d := v.(type) {
	case float64:
		ms = d
	case float32:
		ms = float64(d)
	case int:
		ms = float64(d)
	case int64:
		ms = float64(d)
	case time.Duration:
		ms = float64(d) / float64(time.Millisecond)
	default:
		parsed, err := strconv.ParseFloat(renderValue(v), 64)
		if err != nil {
			return renderValue(v)
		}
		ms = parsed
	}
	ms = math.Round(ms*100) / 100
	s := strconv.FormatFloat(ms, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
