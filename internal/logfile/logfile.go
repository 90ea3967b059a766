// Package logfile implements the agent's runtime log: a per-version,
// size-rotated log file shared by backend components and the frontend
// log_to_file command.
//
// On disk, for build version V:
//
//	runtime_<V>.log      current sink
//	runtime_<V>.log.1    newest historical generation
//	...
//	runtime_<V>.log.5    oldest; discarded on the next rotation
//
// Line format: [YYYY-MM-DD HH:MM:SS][LEVEL] message\n, local wall clock,
// UTF-8, LF on every OS.
package logfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sitedesk/sitedesk-agent/internal/constants"
)

// Level is a runtime log severity.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// String returns the level tag written into the log line.
func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLevel maps a level string to a Level. Matching is
// case-insensitive; anything unrecognized folds to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "WARN":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger appends to the current runtime log file, rotating it when it
// grows past the size limit. A Logger owns its rotation state; callers
// share one instance per process (the app context constructs it exactly
// once).
type Logger struct {
	mu      sync.Mutex
	dir     string
	version string
	now     func() time.Time // test hook
}

// New creates a logger writing runtime_<version>.log under dir.
// The directory is created lazily on the first append.
func New(dir, version string) *Logger {
	return &Logger{
		dir:     dir,
		version: version,
		now:     time.Now,
	}
}

// Path returns the current log file path.
func (l *Logger) Path() string {
	return filepath.Join(l.dir, fmt.Sprintf("runtime_%s.log", l.version))
}

// generationPath returns the path of historical generation n (1-based).
func (l *Logger) generationPath(n int) string {
	return fmt.Sprintf("%s.%d", l.Path(), n)
}

// Log appends one formatted line to the current log file, rotating first
// when the file already exceeds the size limit. Lines written by a single
// caller appear in program order; each line is written in one syscall so
// interleaved callers never produce partial lines.
func (l *Logger) Log(level Level, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	path := l.Path()
	if info, err := os.Stat(path); err == nil && info.Size() > constants.LogMaxBytes {
		l.rotate()
	}

	timestamp := l.now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%s][%s] %s\n", timestamp, level, message)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(line); err != nil {
		return fmt.Errorf("failed to write log entry: %w", err)
	}
	return nil
}

// Logf is Log with printf formatting.
func (l *Logger) Logf(level Level, format string, args ...interface{}) error {
	return l.Log(level, fmt.Sprintf(format, args...))
}

// rotate shifts historical generations up by one and moves the current
// sink to .1. Renames are best-effort: a missing source is skipped and
// any existing .5 is overwritten, so numbering stays contiguous. Callers
// must hold l.mu.
func (l *Logger) rotate() {
	for i := constants.LogMaxGenerations - 1; i >= 1; i-- {
		// Ignore failures; a missing .i just means fewer generations.
		_ = os.Rename(l.generationPath(i), l.generationPath(i+1))
	}
	_ = os.Rename(l.Path(), l.generationPath(1))
}
