package logging

import "context"

// NullLogger discards everything sent to it. It stands in wherever no
// log file is configured so callers never have to nil-check a logger.
type NullLogger struct{}

// NewNullLogger returns a logger that drops all entries.
func NewNullLogger() NullLogger {
	return NullLogger{}
}

func (NullLogger) Debug(ctx context.Context, msg string, fields Fields) {}

func (NullLogger) Info(ctx context.Context, msg string, fields Fields) {}

func (NullLogger) Warn(ctx context.Context, msg string, fields Fields) {}

func (NullLogger) Error(ctx context.Context, msg string, err error, fields Fields) {}

// WithFields returns the logger unchanged; there is nothing to attach to.
func (n NullLogger) WithFields(fields Fields) Logger {
	return n
}

func (NullLogger) Close() error {
	return nil
}
