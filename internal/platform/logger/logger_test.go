package logger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/contacts-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestRedactingHandler(t *testing.T) {
	t.Parallel()

	logger, buf := GetTestLogger(t)
	logger.Info("signin",
		slog.String("username", "grace"),
		slog.String("password", "hunter22"),
		slog.Group("request", slog.String("Authorization", "Bearer abc.def.ghi")),
	)

	out := buf.String()
	assert.NotContains(t, out, "hunter22")
	assert.NotContains(t, out, "abc.def.ghi")
	assert.Contains(t, out, "grace")
	AssertLogField(t, buf, "password", "[REDACTED]")
}

func TestRedactingHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	logger, buf := GetTestLogger(t)
	logger.With(slog.String("token", "secret-value")).Warn("bound")

	assert.NotContains(t, buf.String(), "secret-value")
	AssertLogField(t, buf, "token", "[REDACTED]")
}

func TestMultiHandler_RespectsLevels(t *testing.T) {
	t.Parallel()

	debugBuf := &TestLogBuffer{}
	errorBuf := &TestLogBuffer{}
	logger := slog.New(NewMultiHandler(
		slog.NewJSONHandler(debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(errorBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	))

	logger.Info("routine")
	logger.Error("failure")

	debugEntries, err := debugBuf.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, debugEntries, 2)

	errorEntries, err := errorBuf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, errorEntries, 1)
	assert.Equal(t, "failure", errorEntries[0]["msg"])
}

func TestSetup_WritesToRotatingFile(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	path := filepath.Join(t.TempDir(), "contacts.log")
	cfg := config.Config{}
	cfg.Server.LogLevel = "error"
	cfg.Log.File.Enabled = true
	cfg.Log.File.Path = path
	cfg.Log.File.Level = "debug"
	cfg.Log.File.MaxSizeMB = 1
	cfg.Log.File.MaxBackups = 1

	logger, closeFn, err := Setup(cfg)
	require.NoError(t, err)

	logger.Debug("file only", slog.String("secret", "s3cr3t"))
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file only")
	assert.Contains(t, string(data), `"service":"contacts-api"`)
	assert.NotContains(t, string(data), "s3cr3t")
	assert.Same(t, logger, slog.Default())
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	logger, _ := GetTestLogger(t)
	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, logger, FromContextOrDefault(ctx, slog.Default()))

	fallback := slog.New(slog.NewJSONHandler(&TestLogBuffer{}, nil))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, FromContext(context.Background()))
}

func TestTraceID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, TraceID(context.Background()))
	ctx := WithTraceID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", TraceID(ctx))
}
