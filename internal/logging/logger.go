// Package logging provides structured logging for amptown commands.
// It wraps Go's log/slog package to provide JSON-formatted logs with
// persistent attributes, written to the town's debug log for post-hoc
// analysis of spawn and stop runs.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Log levels supported by the logger.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// DebugLogName is the orchestrator's own log file inside the town directory.
// Agent transcripts live under logs/ and are separate from this file.
const DebugLogName = "debug.log"

// Logger provides structured logging with persistent attributes.
// It is safe for concurrent use.
type Logger struct {
	logger *slog.Logger
	file   *os.File
}

// NewLogger creates a Logger that writes JSON-formatted logs to
// {townDir}/debug.log. If townDir is empty, logs go to stderr.
//
// The level parameter controls which messages are logged:
//   - DEBUG: all messages
//   - INFO: info, warn, and error messages
//   - WARN: warn and error messages
//   - ERROR: only error messages
func NewLogger(townDir string, level string) (*Logger, error) {
	var writer io.Writer
	var file *os.File

	if townDir != "" {
		if err := os.MkdirAll(townDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create town directory: %w", err)
		}
		logPath := filepath.Join(townDir, DebugLogName)
		var err error
		file, err = os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writer = file
	} else {
		writer = os.Stderr
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: parseLevel(level)})

	return &Logger{
		logger: slog.New(handler),
		file:   file,
	}, nil
}

// NewNopLogger returns a Logger that discards everything. Useful in tests
// and for dry runs where no town directory should be touched.
func NewNopLogger() *Logger {
	handler := slog.NewJSONHandler(io.Discard, nil)
	return &Logger{logger: slog.New(handler)}
}

// parseLevel converts a string log level to slog.Level.
// Defaults to INFO if the level string is not recognized.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithAgent returns a child Logger with the agent name added to all entries.
func (l *Logger) WithAgent(name string) *Logger {
	return &Logger{logger: l.logger.With(slog.String("agent", name)), file: l.file}
}

// WithComponent returns a child Logger with the component name added to all
// entries, e.g. "supervisor" or "tmux".
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{logger: l.logger.With(slog.String("component", name)), file: l.file}
}

// With returns a child Logger with arbitrary key-value attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...), file: l.file}
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }

// Info logs a message at INFO level.
func (l *Logger) Info(msg string, args ...any) { l.logger.Info(msg, args...) }

// Warn logs a message at WARN level.
func (l *Logger) Warn(msg string, args ...any) { l.logger.Warn(msg, args...) }

// Error logs a message at ERROR level.
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// Close closes the underlying log file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
