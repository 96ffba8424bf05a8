package logger

import (
	"log/slog"
	"os"
	"time"
)

var log *slog.Logger

// Init sets up the global logger.
// env: "development" or "production".
func Init(env string) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}

	if env == "development" {
		// Development: readable text output, debug level
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Production: JSON for log aggregation
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

// GetLogger returns the global logger, initializing a development one
// if Init was never called.
func GetLogger() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal logs and exits with code 1.
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// With creates a logger with extra fields attached.
func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

// WithError creates a logger with an error field attached.
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}

// HTTPLog logs a completed HTTP request.
func HTTPLog(method, path string, status int, duration time.Duration, size int) {
	GetLogger().Info("http request",
		"method", method,
		"path", path,
		"status", status,
		"duration_ms", duration.Milliseconds(),
		"size_bytes", size,
	)
}
