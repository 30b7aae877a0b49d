// Package log provides a structured logging interface for resampling operations.
//
// This package defines a minimal, slog-compatible logging interface that allows
// for flexible implementation switching while providing domain-specific
// structured logging. The interface integrates with Go's standard log/slog
// package and keeps the library testable: evaluation code takes a Logger and
// tests inject a TestLogger to inspect the records it emits.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("evaluation").With(
//	    log.RunIDKey, runID,
//	)
//	logger.Info("run started",
//	    log.PlanKindKey, log.PlanBootstrap,
//	    log.DrawsKey, 1000,
//	    log.RowsKey, 250,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// The interface provides the core logging methods with structured field
// support. It is implementation-agnostic, enabling switching between logging
// backends while maintaining a consistent API. With returns a contextual
// logger with pre-populated fields.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	// Debug records carry per-draw detail and are usually disabled outside
	// of development.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	//
	// Example:
	//
	//	logger.Info("run completed",
	//	    log.DurationMsKey, 5432,
	//	    log.DrawsKey, 1000,
	//	)
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// Pass the error under the ErrAttrKey key (see ErrAttr) so the handler
	// can extract stack trace information.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	// All subsequent records from the returned logger include them.
	//
	// Example:
	//
	//	runLogger := logger.With(log.RunIDKey, runID)
	//	runLogger.Info("drawing resamples")  // includes run.id
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	// Use it to skip expensive field construction for disabled levels.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
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

// LoggerProvider defines an interface for creating and configuring loggers.
// This interface allows for dependency injection and testing with different
// logger implementations.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a specific component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
