package logging

import (
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Level
		wantOK bool
	}{
		{name: "debug", input: "debug", want: DebugLevel, wantOK: true},
		{name: "info", input: "info", want: InfoLevel, wantOK: true},
		{name: "warn", input: "warn", want: WarnLevel, wantOK: true},
		{name: "error", input: "error", want: ErrorLevel, wantOK: true},
		{name: "fatal", input: "fatal", want: FatalLevel, wantOK: true},
		{name: "upper case", input: "WARN", want: WarnLevel, wantOK: true},
		{name: "whitespace", input: " error\n", want: ErrorLevel, wantOK: true},
		{name: "empty", input: "", want: InfoLevel, wantOK: false},
		{name: "unknown", input: "verbose", want: InfoLevel, wantOK: false},
		{name: "numeric", input: "0", want: InfoLevel, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLevel(tt.input)
			assert.Equal(t, tt.want, got, "should return correct level")
			assert.Equal(t, tt.wantOK, ok, "should return correct ok")
		})
	}
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "debug", DebugLevel.String())
	assert.Equal(t, "fatal", FatalLevel.String())
	assert.Equal(t, "unknown", Level(99).String())
}

func TestLevel_Order(t *testing.T) {
	for i := 1; i < len(Levels); i++ {
		assert.Less(t, int(Levels[i-1]), int(Levels[i]), "levels should be ascending")
		assert.Less(t, Levels[i-1].zapLevel(), Levels[i].zapLevel(), "zap levels should be ascending")
	}
}

func TestLevel_Zap(t *testing.T) {
	for _, level := range Levels {
		assert.Equal(t, level, levelFromZap(level.zapLevel()), "should map back %s", level)
	}
	assert.Equal(t, FatalLevel, levelFromZap(zapcore.PanicLevel), "should map panic to fatal")
	assert.False(t, Level(-1).Valid(), "should not be valid")
}
