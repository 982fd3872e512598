package logging

import (
	"context"
	"strings"
)

// Fields carries structured key/value pairs attached to a log entry.
type Fields map[string]interface{}

// Level is the severity of a log entry. Entries below a logger's
// configured level are dropped.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// String returns the upper-case name of the level.
func (l Level) String() string {
	if l < DebugLevel || l > ErrorLevel {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a level name to a Level. Unrecognized names fall back
// to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger is the project-wide structured logging interface. FileLogger
// writes entries to a rotating log file; NullLogger drops them.
type Logger interface {
	Debug(ctx context.Context, msg string, fields Fields)
	Info(ctx context.Context, msg string, fields Fields)
	Warn(ctx context.Context, msg string, fields Fields)
	Error(ctx context.Context, msg string, err error, fields Fields)

	// WithFields returns a derived logger whose entries carry these
	// fields in addition to any passed at the call site.
	WithFields(fields Fields) Logger

	// Close releases the underlying sink. Logging after Close is a no-op.
	Close() error
}

// mergeFields combines base and extra without mutating either; on key
// collision extra wins.
func mergeFields(base, extra Fields) Fields {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	merged := make(Fields, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
