package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Format selects the log line encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// FileLoggerConfig configures a FileLogger.
type FileLoggerConfig struct {
	Path       string // log file location, parent directories are created
	Format     Format // text or json lines
	Level      Level  // minimum level written
	MaxSize    int64  // rotate once the file reaches this many bytes, 0 disables
	MaxBackups int    // rotated files kept as path.1 .. path.N
}

// FileLogger writes structured entries to a size-rotated log file.
// Loggers derived via WithFields share the sink, so locking and
// rotation stay coherent no matter which handle writes.
type FileLogger struct {
	sink   *logSink
	fields Fields
}

// logSink owns the open file and its rotation state.
type logSink struct {
	config FileLoggerConfig
	mu     sync.Mutex
	out    *os.File
	size   int64
}

// NewFileLogger opens (or creates) the configured log file and returns
// a logger appending to it.
func NewFileLogger(config FileLoggerConfig) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to prepare log directory: %w", err)
	}

	out, size, err := openAppend(config.Path)
	if err != nil {
		return nil, err
	}

	return &FileLogger{sink: &logSink{config: config, out: out, size: size}}, nil
}

// openAppend opens path for appending and reports its current size.
func openAppend(path string) (*os.File, int64, error) {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := out.Stat()
	if err != nil {
		out.Close()
		return nil, 0, fmt.Errorf("failed to stat log file: %w", err)
	}

	return out, info.Size(), nil
}

func (l *FileLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.emit(DebugLevel, msg, nil, fields)
}

func (l *FileLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.emit(InfoLevel, msg, nil, fields)
}

func (l *FileLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.emit(WarnLevel, msg, nil, fields)
}

func (l *FileLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.emit(ErrorLevel, msg, err, fields)
}

// WithFields returns a logger that stamps every entry with fields on
// top of the receiver's own.
func (l *FileLogger) WithFields(fields Fields) Logger {
	return &FileLogger{sink: l.sink, fields: mergeFields(l.fields, fields)}
}

// Close closes the log file. Entries logged afterwards are dropped.
func (l *FileLogger) Close() error {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.out == nil {
		return nil
	}
	err := s.out.Close()
	s.out = nil
	return err
}

// emit encodes one entry and hands it to the sink.
func (l *FileLogger) emit(level Level, msg string, err error, fields Fields) {
	if level < l.sink.config.Level {
		return
	}

	merged := mergeFields(l.fields, fields)

	var line []byte
	if l.sink.config.Format == FormatJSON {
		line = encodeJSON(time.Now().UTC(), level, msg, err, merged)
	} else {
		line = encodeText(time.Now().UTC(), level, msg, err, merged)
	}
	if line == nil {
		return
	}

	l.sink.write(line)
}

// write appends one encoded line, rotating first when the file is full.
func (s *logSink) write(line []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.out == nil {
		return
	}

	if s.config.MaxSize > 0 && s.size >= s.config.MaxSize {
		s.rotate()
		if s.out == nil {
			return
		}
	}

	n, _ := s.out.Write(line)
	s.size += int64(n)
}

// rotate shifts path.1 .. path.N-1 up by one, moves the live file to
// path.1 and reopens a fresh one. Caller holds s.mu.
func (s *logSink) rotate() {
	s.out.Close()
	s.out = nil

	for i := s.config.MaxBackups; i > 1; i-- {
		os.Rename(backupName(s.config.Path, i-1), backupName(s.config.Path, i))
	}
	if s.config.MaxBackups > 0 {
		os.Rename(s.config.Path, backupName(s.config.Path, 1))
	} else {
		os.Remove(s.config.Path)
	}

	out, _, err := openAppend(s.config.Path)
	if err != nil {
		return
	}
	s.out = out
	s.size = 0
}

func backupName(path string, n int) string {
	return fmt.Sprintf("%s.%d", path, n)
}

// encodeJSON renders one entry as a JSON line. Fields colliding with
// the built-in keys lose to the built-ins.
func encodeJSON(at time.Time, level Level, msg string, err error, fields Fields) []byte {
	entry := make(map[string]interface{}, len(fields)+4)
	for k, v := range fields {
		entry[k] = v
	}
	entry["timestamp"] = at.Format(time.RFC3339)
	entry["level"] = level.String()
	entry["message"] = msg
	if err != nil {
		entry["error"] = err.Error()
	}

	line, mErr := json.Marshal(entry)
	if mErr != nil {
		return nil
	}
	return append(line, '\n')
}

// encodeText renders one entry as a single text line with fields in
// key order.
func encodeText(at time.Time, level Level, msg string, err error, fields Fields) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", at.Format(time.RFC3339), level, msg)
	if err != nil {
		fmt.Fprintf(&b, " error=%q", err.Error())
	}
	for _, k := range sortedKeys(fields) {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

func sortedKeys(fields Fields) []string {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
