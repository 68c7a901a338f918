package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfigDefaults(t *testing.T) {
	t.Setenv("CHAT_LISTENADDR", ":8080")
	t.Setenv("CHAT_PREFIX", "/chatapi/")

	config, err := readConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", config.ListenAddr)
	assert.Equal(t, "/chatapi", config.Prefix)
	assert.Equal(t, 2200*time.Millisecond, config.RequestTimeout)
	assert.Equal(t, 12*time.Second, config.StreamTimeout)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, 24, config.TelemetryLimit)
	assert.Equal(t, "chat.transport.reply", config.NATSSubject)
}

func TestReadConfigRequiresListenAddr(t *testing.T) {
	t.Setenv("CHAT_LISTENADDR", "")

	_, err := readConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHAT_LISTENADDR")
}

func TestReadConfigTimeouts(t *testing.T) {
	t.Setenv("CHAT_LISTENADDR", ":8080")
	t.Setenv("CHAT_REQUESTTIMEOUT", "0s")

	_, err := readConfig()
	require.Error(t, err)

	t.Setenv("CHAT_REQUESTTIMEOUT", "bogus")
	_, err = readConfig()
	require.Error(t, err)

	t.Setenv("CHAT_REQUESTTIMEOUT", "500ms")
	config, err := readConfig()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, config.RequestTimeout)
}

func TestReadConfigSQL(t *testing.T) {
	t.Setenv("CHAT_LISTENADDR", ":8080")
	t.Setenv("CHAT_TELEMETRYSQLDRIVER", "mysql")

	_, err := readConfig()
	require.Error(t, err, "DSN is required with a driver")
	assert.Contains(t, err.Error(), "CHAT_TELEMETRYSQLDSN")

	t.Setenv("CHAT_TELEMETRYSQLDSN", "user:pass@tcp(localhost:3306)/chat")
	_, err = readConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parseTime=true")

	t.Setenv("CHAT_TELEMETRYSQLDSN", "user:pass@tcp(localhost:3306)/chat?parseTime=true")
	_, err = readConfig()
	assert.NoError(t, err)
}

func TestSetupLogging(t *testing.T) {
	logger := setupLogging("warn")
	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelWarn))
}

func TestRecorders(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	memory, multi, store, closeAll, err := recorders(&Config{TelemetryLimit: 5}, logger)
	require.NoError(t, err)
	defer closeAll()
	assert.NotNil(t, memory)
	assert.Len(t, multi, 1)
	assert.Nil(t, store)

	_, _, _, closeAll, err = recorders(&Config{TelemetrySQLDriver: "bogus", TelemetrySQLDSN: "x"}, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
	assert.NotPanics(t, closeAll)
}

func TestRunErrors(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	err := run(&Config{ListenAddr: ":8080", TelemetrySQLDriver: "bogus", TelemetrySQLDSN: "x"}, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not set up telemetry")

	err = run(&Config{ListenAddr: "bad:addr:x", RequestTimeout: time.Second, StreamTimeout: time.Second}, logger)
	assert.Error(t, err)
}
