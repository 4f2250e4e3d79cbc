// Package logger provides structured, context-aware logging on top of logrus.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/questlog/quest-service/config"
	"github.com/questlog/quest-service/ctxutil"
)

// Logger wraps a logrus logger with context-aware helpers.
type Logger struct {
	l *logrus.Logger
}

var std = &Logger{l: logrus.StandardLogger()}

// New initializes a logger from configuration and returns it with a
// cleanup function. A nil configuration yields sane defaults.
func New(cfg *config.Logger) (*Logger, func(), error) {
	l := logrus.New()

	level := logrus.InfoLevel
	if cfg != nil && cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	l.SetLevel(level)

	if cfg != nil && cfg.Format == "text" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	cleanup := func() {}
	switch {
	case cfg != nil && cfg.Output == "file" && cfg.OutputFile != "":
		f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.SetOutput(f)
		cleanup = func() { _ = f.Close() }
	case cfg != nil && cfg.Output == "stderr":
		l.SetOutput(os.Stderr)
	default:
		l.SetOutput(os.Stdout)
	}

	logger := &Logger{l: l}
	std = logger
	return logger, cleanup, nil
}

// StdLogger returns the current standard logger.
func StdLogger() *Logger {
	return std
}

// Discard returns a logger that drops everything. Intended for tests.
func Discard() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{l: l}
}

// Debug logs a message at debug level with key/value pairs.
func (lg *Logger) Debug(ctx context.Context, msg string, kv ...any) {
	lg.entry(ctx, kv...).Debug(msg)
}

// Info logs a message at info level with key/value pairs.
func (lg *Logger) Info(ctx context.Context, msg string, kv ...any) {
	lg.entry(ctx, kv...).Info(msg)
}

// Warn logs a message at warn level with key/value pairs.
func (lg *Logger) Warn(ctx context.Context, msg string, kv ...any) {
	lg.entry(ctx, kv...).Warn(msg)
}

// Error logs a message at error level with key/value pairs.
func (lg *Logger) Error(ctx context.Context, msg string, kv ...any) {
	lg.entry(ctx, kv...).Error(msg)
}

func (lg *Logger) entry(ctx context.Context, kv ...any) *logrus.Entry {
	fields := logrus.Fields{}
	if ctx != nil {
		if traceID := ctxutil.GetTraceID(ctx); traceID != "" {
			fields["trace_id"] = traceID
		}
	}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		fields[key] = kv[i+1]
	}
	return lg.l.WithFields(fields)
}
