package app

import (
	"encoding/json"
	"github.com/lefinal/mu/errors"
	"github.com/lefinal/mu/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSelectFormatter(t *testing.T) {
	identity := logging.DefaultIdentity()
	assert.IsType(t, &logging.ColoredFormatter{}, SelectFormatter("colored", identity), "should select colored")
	assert.IsType(t, &logging.JSONFormatter{}, SelectFormatter("", identity), "should default to json")
	assert.IsType(t, &logging.JSONFormatter{}, SelectFormatter("json", identity), "should select json")
	assert.IsType(t, &logging.JSONFormatter{}, SelectFormatter("pretty", identity), "should select json for unknown")
}

func TestSetupLogging_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	registry := prometheus.NewRegistry()
	logger, sink, err := SetupLogging(Config{
		AppName:      "billing",
		Environment:  "production",
		LogLevel:     "warn",
		LogOutput:    path,
		LogMaxSizeMB: 1,
	}, registry)
	require.NoError(t, err, "setup should not fail")
	require.NoError(t, logger.Info("skipped", nil), "log info should not fail")
	require.NoError(t, logger.Warn("charged", logging.Fields{logging.F("amount", 12)}), "log warn should not fail")
	require.NoError(t, sink.Close(), "close should not fail")

	content, err := os.ReadFile(path)
	require.NoError(t, err, "read log file should not fail")
	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	require.Len(t, lines, 1, "should only write warn")
	var event map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &event), "should be json")
	assert.Equal(t, "billing", event["app"], "should set app")
	assert.Equal(t, "production", event["environment"], "should set environment")
	assert.Equal(t, "charged", event["event"], "should set event")
	assert.Equal(t, 12.0, event["amount"], "should set payload")
	count, err := testutil.GatherAndCount(registry, "mu_events_total")
	require.NoError(t, err, "gather should not fail")
	assert.Equal(t, 2, count, "should count events by level regardless of sink level")
}

func TestSetupLogging_Invalid(t *testing.T) {
	_, _, err := SetupLogging(Config{AppName: "", Environment: "e"}, nil)
	require.Error(t, err, "should fail")
	assert.True(t, errors.BlameUser(err), "should blame config")
}

func TestSetupLogging_Defaults(t *testing.T) {
	logger, sink, err := SetupLogging(Config{
		AppName:     "application",
		Environment: "development",
		LogLevel:    "nonsense",
	}, nil)
	require.NoError(t, err, "setup should not fail")
	assert.Equal(t, logging.InfoLevel, logger.Level(), "should fall back to info")
	assert.Equal(t, logging.Sink(sink), logger.Sink(), "should use returned sink")
}
