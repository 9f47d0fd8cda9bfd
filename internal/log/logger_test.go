package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/primes/internal/config"
)

func TestNewLoggerWithWriter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "INFO")

	logger.Slog().Info("Number of workers", slog.Int("workers", 4))

	out := buf.String()
	assert.Contains(t, out, "INF Number of workers workers=4")
	assert.NotContains(t, out, "\033[")
}

func TestNewLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "DEBUG")

	logger.Slog().Debug("search progress", slog.Int("known_primes", 25))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "DEBUG", line["level"])
	assert.Equal(t, "search progress", line["msg"])
	assert.Equal(t, float64(25), line["known_primes"])
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "WARN")

	logger.Slog().Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Slog().Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO").With("run_id", "abc")

	logger.Slog().Info("search finished")

	assert.Contains(t, buf.String(), `"run_id":"abc"`)
}

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	ctx := WithCorrelationID(context.Background(), "corr-1")
	ctx = WithRequestID(ctx, "req-1")
	logger.WithContext(ctx).Slog().Info("request")

	out := buf.String()
	assert.Contains(t, out, `"correlation_id":"corr-1"`)
	assert.Contains(t, out, `"request_id":"req-1"`)
}

func TestLogger_WithContext_NoValues(t *testing.T) {
	logger := NewLoggerWithWriter(&bytes.Buffer{}, config.LogFormatJSON, "INFO")

	assert.Same(t, logger, logger.WithContext(context.Background()))
}

func TestContextIDs_NotSet(t *testing.T) {
	assert.Empty(t, CorrelationID(context.Background()))
	assert.Empty(t, RequestID(context.Background()))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestConfigure_SetsDefault(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	logger := Configure(config.NewAppConfigWithOptions(config.WithLogFormat(config.LogFormatJSON)))

	assert.Same(t, logger.Slog(), slog.Default())
	_, isJSON := logger.Handler().(*slog.JSONHandler)
	assert.True(t, isJSON)
}
