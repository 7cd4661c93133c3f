package logging

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
)

type requestIDKey struct{}

// WithRequestID stores a request ID in the context for downstream loggers.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// GetRequestID extracts the request ID from a standard context
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Level orders log severities for the process-wide filter.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

var minLevel atomic.Int32

func init() {
	minLevel.Store(int32(LevelInfo))
}

// SetLevel sets the process-wide minimum level from its LOG_LEVEL name.
// Unknown names keep the current level.
func SetLevel(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		minLevel.Store(int32(LevelDebug))
	case "info":
		minLevel.Store(int32(LevelInfo))
	case "warn", "warning":
		minLevel.Store(int32(LevelWarn))
	case "error":
		minLevel.Store(int32(LevelError))
	}
}

// Logger provides structured logging scoped to a request
type Logger struct {
	requestID string
}

// NewLogger creates a logger with request context
func NewLogger(ctx context.Context) *Logger {
	requestID := GetRequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{requestID: requestID}
}

func (l *Logger) logf(level Level, operation, format string, args ...any) {
	if int32(level) < minLevel.Load() {
		return
	}
	log.Printf("[%s] request_id=%s operation=%s %s", level, l.requestID, operation, fmt.Sprintf(format, args...))
}

// LogDebugf logs a formatted debug message with context
func (l *Logger) LogDebugf(operation string, format string, args ...any) {
	l.logf(LevelDebug, operation, format, args...)
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	l.logf(LevelError, operation, "error=%v", err)
}

// LogErrorf logs a formatted error with context
func (l *Logger) LogErrorf(operation string, format string, args ...any) {
	l.logf(LevelError, operation, format, args...)
}

// LogInfo logs an info message with context
func (l *Logger) LogInfo(operation string, message string) {
	l.logf(LevelInfo, operation, "message=%s", message)
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...any) {
	l.logf(LevelInfo, operation, format, args...)
}

// LogWarn logs a warning with context
func (l *Logger) LogWarn(operation string, message string) {
	l.logf(LevelWarn, operation, "message=%s", message)
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...any) {
	l.logf(LevelWarn, operation, format, args...)
}
