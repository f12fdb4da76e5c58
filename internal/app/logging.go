package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dshills/linedit/internal/editor"
	perrors "github.com/dshills/linedit/internal/project/errors"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError

	// logLevelOff is above every level; a logger at it writes nothing.
	logLevelOff
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel maps a logging.level setting to a LogLevel. Unknown names
// mean info; the config layer has already rejected them.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger writes one line per record:
//
//	2026-01-02T15:04:05.000 INFO saved cmd=s path=/tmp/a.txt lines=3
//
// Fields follow the message in the order they were attached. Loggers
// derived with With share the writer of the logger they came from.
type Logger struct {
	out    *logSink
	level  LogLevel
	fields []logField
}

type logSink struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

type logField struct {
	key   string
	value any
}

// NewLogger creates a logger writing records at level or above to w.
// A nil w discards everything.
func NewLogger(w io.Writer, level LogLevel) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{out: &logSink{w: w, now: time.Now}, level: level}
}

// NullLogger discards all output.
var NullLogger = NewLogger(io.Discard, logLevelOff)

// With returns a logger that adds the key/value pairs in kv to every
// record. A trailing key without a value is dropped.
func (l *Logger) With(kv ...any) *Logger {
	fields := make([]logField, len(l.fields), len(l.fields)+len(kv)/2)
	copy(fields, l.fields)
	for i := 0; i+1 < len(kv); i += 2 {
		fields = append(fields, logField{key: fmt.Sprint(kv[i]), value: kv[i+1]})
	}
	return &Logger{out: l.out, level: l.level, fields: fields}
}

// Enabled reports whether records at level are written.
func (l *Logger) Enabled(level LogLevel) bool {
	return level >= l.level
}

func (l *Logger) Debug(format string, args ...any) { l.log(LogLevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LogLevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LogLevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LogLevelError, format, args...) }

func (l *Logger) log(level LogLevel, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	l.out.mu.Lock()
	defer l.out.mu.Unlock()

	var b strings.Builder
	b.WriteString(l.out.now().Format("2006-01-02T15:04:05.000"))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, f := range l.fields {
		b.WriteByte(' ')
		b.WriteString(f.key)
		b.WriteByte('=')
		b.WriteString(formatValue(f.value))
	}
	b.WriteByte('\n')
	_, _ = io.WriteString(l.out.w, b.String())
}

// formatValue quotes values a reader could not split on spaces.
func formatValue(v any) string {
	s := fmt.Sprint(v)
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

// Command records the outcome of an editor command line.
func (l *Logger) Command(res editor.CommandResult) {
	log := l.With("cmd", res.Text)
	switch res.Outcome {
	case editor.OutcomeSaved:
		log.With("path", res.Path, "lines", res.Lines).Info("saved")
		if res.SyncErr != nil {
			log.With("path", res.Path).Warn("directory not synced: %v", res.SyncErr)
		}
	case editor.OutcomeSaveFailed:
		if perrors.IsPolicy(res.Err) {
			log.Info("save refused: %v", res.Err)
			return
		}
		log.With("path", res.Path).Warn("save failed: %v", res.Err)
	case editor.OutcomeQuit:
		log.With("path", res.Path).Info("quit")
	case editor.OutcomeQuitRefused:
		log.With("path", res.Path).Info("quit refused: unsaved changes")
	case editor.OutcomeUnknown:
		log.Info("unknown command")
	}
}

// Opened records an existing file loaded for editing.
func (l *Logger) Opened(path string, lines int) {
	l.With("path", path, "lines", lines).Info("opened")
}

// Created records a document for a file that does not exist yet.
func (l *Logger) Created(path string) {
	l.With("path", path).Info("new file")
}

// Recovered records a document restored from a recovery artifact.
func (l *Logger) Recovered(artifact, path string, lines, inserted, deleted int) {
	l.With("artifact", artifact, "path", path, "lines", lines, "inserted", inserted, "deleted", deleted).Info("recovered")
}

// SnapshotFailed records a recovery snapshot that could not be written.
// The edits are still in memory.
func (l *Logger) SnapshotFailed(artifact string, err error) {
	l.With("artifact", artifact).Warn("recovery snapshot failed: %v", err)
}

// FileChanged records content written to the document's file by another
// program.
func (l *Logger) FileChanged(path string, inserted, deleted int) {
	l.With("path", path, "inserted", inserted, "deleted", deleted).Info("file changed externally")
}

// FileRemoved records the document's file disappearing.
func (l *Logger) FileRemoved(path string) {
	l.With("path", path).Info("file removed externally")
}

// OpenLogOutput opens path for appending log lines, creating its directory.
// An empty path yields a writer that discards everything.
func OpenLogOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
