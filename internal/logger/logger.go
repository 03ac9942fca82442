package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFilePath is the log file, relative to the working directory (project root when run via
// go run ./cmd/game).
const LogFilePath = "logs/scene.log"

// maxLines caps the in-memory copy shown by the console.
const maxLines = 500

// Logger writes structured entries through zap and keeps a short plain-text copy of each entry's
// message in memory for the in-game console.
type Logger struct {
	zl *zap.Logger

	mu    sync.Mutex
	lines []string
	file  *os.File
}

// New returns a Logger at info level appending JSON lines to LogFilePath.
func New() *Logger {
	return NewAt(LogFilePath, zapcore.InfoLevel)
}

// NewAt returns a Logger that appends to path, creating its directory. If the file cannot be
// opened, entries go to stderr instead.
func NewAt(path string, level zapcore.Level) *Logger {
	var sink zapcore.WriteSyncer
	var file *os.File
	if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
		file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			sink = zapcore.AddSync(file)
		}
	}
	if sink == nil {
		sink = zapcore.Lock(os.Stderr)
	}
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), sink, zap.NewAtomicLevelAt(level))
	l := NewWithCore(core)
	l.file = file
	return l
}

// NewWithCore wraps an existing zap core. Every entry is tagged with a per-process session id.
func NewWithCore(core zapcore.Core) *Logger {
	l := &Logger{lines: make([]string, 0, 64)}
	l.zl = zap.New(core, zap.Hooks(l.record)).With(zap.String("session", uuid.NewString()))
	return l
}

// ParseLevel maps "debug", "info", "warn", "error" to a zap level. Unknown text is info.
func ParseLevel(text string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(text)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// record keeps "[timestamp] LEVEL message" for the console. It runs for every entry the core
// accepts.
func (l *Logger) record(e zapcore.Entry) error {
	line := "[" + e.Time.Format("2006-01-02 15:04:05") + "] " + e.Level.CapitalString() + " " + e.Message
	l.mu.Lock()
	l.lines = append(l.lines, line)
	if over := len(l.lines) - maxLines; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	l.mu.Unlock()
	return nil
}

// Log records a plain line at info level.
func (l *Logger) Log(line string) {
	l.zl.Info(line)
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zl.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.zl.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.zl.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.zl.Error(msg, fields...) }

// Writer returns an io.Writer that logs each non-empty line written to it, so flag usage and
// command output show up in the console.
func (l *Logger) Writer() io.Writer {
	return lineWriter{l}
}

type lineWriter struct{ l *Logger }

func (w lineWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		if line = strings.TrimRight(line, " \t\r"); line != "" {
			w.l.Log(line)
		}
	}
	return len(p), nil
}

// Zap exposes the underlying logger for packages that take a *zap.Logger.
func (l *Logger) Zap() *zap.Logger {
	return l.zl
}

// Lines returns a copy of the recent lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	_ = l.zl.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
