// Package charmlog adapts github.com/charmbracelet/log to the domain Logger interface.
package charmlog

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/ochairo/playport/internal/domain/interfaces"
)

// Logger writes leveled key/value records through charmbracelet/log
type Logger struct {
	logger *log.Logger
}

// New creates a logger writing to w at the named level (debug, info, warn, error)
func New(w io.Writer, level string) (*Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "playport",
		ReportTimestamp: lvl == log.DebugLevel,
	})
	return &Logger{logger: logger}, nil
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.logger.Debug(msg, keyvals(fields)...)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.logger.Info(msg, keyvals(fields)...)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.logger.Warn(msg, keyvals(fields)...)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.logger.Error(msg, keyvals(fields)...)
}

// With returns a logger that attaches fields to every message
func (l *Logger) With(fields ...interfaces.Field) interfaces.Logger {
	return &Logger{logger: l.logger.With(keyvals(fields)...)}
}

func keyvals(fields []interfaces.Field) []interface{} {
	kv := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		kv = append(kv, f.Key, f.Value)
	}
	return kv
}
