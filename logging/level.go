package logging

import (
	"go.uber.org/zap/zapcore"
	"strings"
)

// Level is the severity of an event. Levels are ordered, DebugLevel being the
// lowest.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// DefaultLevel is the minimum level used when none or an unknown one is
// configured.
const DefaultLevel = InfoLevel

// Levels holds all known levels in ascending order.
var Levels = []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel}

var levelNames = map[Level]string{
	DebugLevel: "debug",
	InfoLevel:  "info",
	WarnLevel:  "warn",
	ErrorLevel: "error",
	FatalLevel: "fatal",
}

var zapLevels = map[Level]zapcore.Level{
	DebugLevel: zapcore.DebugLevel,
	InfoLevel:  zapcore.InfoLevel,
	WarnLevel:  zapcore.WarnLevel,
	ErrorLevel: zapcore.ErrorLevel,
	FatalLevel: zapcore.FatalLevel,
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// Valid checks whether the level is one of Levels.
func (l Level) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

// ParseLevel parses the given level name. Case and surrounding whitespace are
// ignored. If the name is unknown, DefaultLevel and false are returned.
func ParseLevel(name string) (Level, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for level, levelName := range levelNames {
		if levelName == name {
			return level, true
		}
	}
	return DefaultLevel, false
}

// zapLevel maps the level to the zapcore.Level used for filtering in sinks.
func (l Level) zapLevel() zapcore.Level {
	if zl, ok := zapLevels[l]; ok {
		return zl
	}
	return zapcore.InfoLevel
}

// levelFromZap is the inverse of Level.zapLevel. Zap levels without
// counterpart are mapped to the next higher Level.
func levelFromZap(zl zapcore.Level) Level {
	switch {
	case zl <= zapcore.DebugLevel:
		return DebugLevel
	case zl == zapcore.InfoLevel:
		return InfoLevel
	case zl == zapcore.WarnLevel:
		return WarnLevel
	case zl == zapcore.ErrorLevel:
		return ErrorLevel
	default:
		return FatalLevel
	}
}
