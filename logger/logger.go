// Package logger provides the structured application logger.
package logger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskdesk/taskdesk/config"
)

// Logger represents logger instance
type Logger struct {
	*logrus.Logger
	logFile *os.File
	logPath string
	mu      sync.Mutex
}

var (
	// stdLogger is the global logger
	stdLogger *Logger
	// once ensures that the logger is initialized only once
	once sync.Once
)

// StdLogger returns the single logger instance
func StdLogger() *Logger {
	once.Do(func() {
		stdLogger = &Logger{
			Logger: logrus.New(),
		}
		stdLogger.SetFormatter(&logrus.JSONFormatter{})
	})
	return stdLogger
}

// New initializes the standard logger with the given configuration and
// returns a cleanup function.
func New(c *config.Logger) (func(), error) {
	l := StdLogger()
	if c == nil {
		return func() {}, nil
	}

	if c.Level > 0 {
		l.SetLevel(logrus.Level(c.Level))
	}

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{})
	}

	switch c.Output {
	case "stderr":
		l.SetOutput(os.Stderr)
	case "file":
		l.logPath = c.OutputFile
		if l.logPath != "" {
			if err := l.setupLogFile(); err != nil {
				return nil, err
			}
			go l.periodicLogRotation()
		}
	default:
		l.SetOutput(os.Stdout)
	}

	return func() {
		if l.logFile != nil {
			_ = l.logFile.Close()
		}
	}, nil
}

// setupLogFile sets up the log file
func (l *Logger) setupLogFile() error {
	if err := os.MkdirAll(filepath.Dir(l.logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.mu.Lock()
	if l.logFile != nil {
		_ = l.logFile.Close()
	}
	l.logFile = f
	l.SetOutput(f)
	l.mu.Unlock()

	return nil
}

// periodicLogRotation rotates the log file daily
func (l *Logger) periodicLogRotation() {
	for {
		now := time.Now()
		next := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
		time.Sleep(next.Sub(now))

		rotated := l.logPath + "." + time.Now().Add(-time.Hour).Format("2006-01-02")
		if err := os.Rename(l.logPath, rotated); err != nil {
			l.Logger.Warnf("log rotation failed: %v", err)
			continue
		}
		if err := l.setupLogFile(); err != nil {
			l.Logger.Warnf("log rotation reopen failed: %v", err)
		}
	}
}

// entry builds a logrus entry carrying the request ID from the context and
// the given key-value pairs.
func (l *Logger) entry(ctx context.Context, kv []any) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			fields[k] = kv[i+1]
		}
	}
	if id := RequestIDFromContext(ctx); id != "" {
		fields[RequestIDKey] = id
	}
	return l.Logger.WithFields(fields)
}

// Debug logs a debug message with key-value pairs.
func (l *Logger) Debug(ctx context.Context, msg string, kv ...any) {
	l.entry(ctx, kv).Debug(msg)
}

// Info logs an informational message with key-value pairs.
func (l *Logger) Info(ctx context.Context, msg string, kv ...any) {
	l.entry(ctx, kv).Info(msg)
}

// Warn logs a warning message with key-value pairs.
func (l *Logger) Warn(ctx context.Context, msg string, kv ...any) {
	l.entry(ctx, kv).Warn(msg)
}

// Error logs an error message with key-value pairs.
func (l *Logger) Error(ctx context.Context, msg string, kv ...any) {
	l.entry(ctx, kv).Error(msg)
}
