// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels. Records go to stdout and, when enabled, to a
// size-rotated JSON log file. Attributes that carry credentials are masked
// before any handler sees them.
package logger
