// Package log provides a structured logging interface for QFS.
//
// The interface is slog-compatible so that callers can plug in their own backend.
// The default implementation is backed by zerolog (see zerolog.go); SetupLogger
// additionally configures the standard log/slog default with cockroachdb stack
// trace extraction.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("selection").With(
//	    log.EstimatorIDKey, id,
//	)
//	logger.Debug("alpha candidate evaluated",
//	    log.AlphaKey, 0.5,
//	    log.SelectedKey, 3,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are passed as alternating key/value pairs. Error treats a leading
// error value specially and attaches it under ErrAttrKey.
type Logger interface {
	// Debug logs detailed diagnostic information, such as every alpha candidate.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs situations that do not stop execution, such as a search that
	// could not reach the requested number of features.
	Warn(msg string, fields ...any)

	// Error logs error conditions. If the first field is an error it is
	// attached with its stack trace when the backend supports it.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates and configures loggers.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for loggers created by this provider.
	SetLevel(level Level)
}
