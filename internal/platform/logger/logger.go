package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/contacts-api/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// sensitiveKeys are attribute keys whose values never reach a log sink.
var sensitiveKeys = []string{"token", "access_token", "password", "secret", "jwt_secret", "authorization"}

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured JSON logger writing to
// stdout and, when cfg.Log.File.Enabled is set, to a rotating log file.
//
// The returned close function releases the log file and must be called on
// shutdown. The logger is also installed as the slog default.
func Setup(cfg config.Config) (*slog.Logger, func() error, error) {
	handlers := []slog.Handler{
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(cfg.Server.LogLevel)}),
	}

	closeFn := func() error { return nil }

	if cfg.Log.File.Enabled {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.Log.File.Path,
			MaxSize:    cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			Compress:   true,
		}
		closeFn = fileWriter.Close
		handlers = append(handlers,
			slog.NewJSONHandler(fileWriter, &slog.HandlerOptions{Level: ParseLevel(cfg.Log.File.Level)}))
	}

	var handler slog.Handler
	if len(handlers) == 1 {
		handler = handlers[0]
	} else {
		handler = NewMultiHandler(handlers...)
	}

	logger := slog.New(NewRedactingHandler(handler, sensitiveKeys)).
		With(slog.String("service", "contacts-api"))

	// Set this logger as the default for the application
	// This allows using the slog package functions directly (slog.Info, slog.Error, etc.)
	slog.SetDefault(logger)

	return logger, closeFn, nil
}

// ParseLevel converts a configured level name (case-insensitive) into a
// slog.Level, falling back to info for unknown names.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
