package logfile

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/sitedesk/sitedesk-agent/internal/constants"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"INFO", LevelInfo},
		{"info", LevelInfo},
		{"WARN", LevelWarn},
		{"warn", LevelWarn},
		{"Error", LevelError},
		{"ERROR", LevelError},
		{"", LevelInfo},
		{"TRACE", LevelInfo},
		{"garbage", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if LevelInfo.String() != "INFO" || LevelWarn.String() != "WARN" || LevelError.String() != "ERROR" {
		t.Errorf("level strings = %s/%s/%s", LevelInfo, LevelWarn, LevelError)
	}
}

func TestLog_LineFormat(t *testing.T) {
	l := New(t.TempDir(), "1.0.0")
	l.now = func() time.Time {
		return time.Date(2026, 8, 23, 9, 15, 42, 0, time.Local)
	}

	if err := l.Log(LevelWarn, "disk almost full"); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	want := "[2026-08-23 09:15:42][WARN] disk almost full\n"
	if string(data) != want {
		t.Errorf("log line = %q, want %q", data, want)
	}
}

func TestLog_TimestampShape(t *testing.T) {
	l := New(t.TempDir(), "1.0.0")
	if err := l.Log(LevelInfo, "hello"); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	re := regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\]\[INFO\] hello\n$`)
	if !re.Match(data) {
		t.Errorf("log line %q does not match expected format", data)
	}
}

func TestLog_AppendOrder(t *testing.T) {
	l := New(t.TempDir(), "1.0.0")
	for _, msg := range []string{"first", "second", "third"} {
		if err := l.Log(LevelInfo, msg); err != nil {
			t.Fatalf("Log(%q) error = %v", msg, err)
		}
	}

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, msg := range []string{"first", "second", "third"} {
		if !strings.HasSuffix(lines[i], " "+msg) {
			t.Errorf("line %d = %q, want suffix %q", i, lines[i], msg)
		}
	}
}

// fillCurrent seeds the current log file with exactly size bytes.
func fillCurrent(t *testing.T, l *Logger, size int) {
	t.Helper()
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		t.Fatalf("failed to create log dir: %v", err)
	}
	if err := os.WriteFile(l.Path(), bytes.Repeat([]byte("x"), size), 0644); err != nil {
		t.Fatalf("failed to seed log file: %v", err)
	}
}

func TestLog_NoRotationAtExactLimit(t *testing.T) {
	l := New(t.TempDir(), "1.0.0")
	fillCurrent(t, l, constants.LogMaxBytes)

	if err := l.Log(LevelInfo, "boundary"); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	if _, err := os.Stat(l.generationPath(1)); !os.IsNotExist(err) {
		t.Error("rotation happened at exactly the size limit")
	}
	info, err := os.Stat(l.Path())
	if err != nil {
		t.Fatalf("failed to stat log file: %v", err)
	}
	if info.Size() <= constants.LogMaxBytes {
		t.Errorf("append did not land in the current file (size %d)", info.Size())
	}
}

func TestLog_RotationOverLimit(t *testing.T) {
	l := New(t.TempDir(), "1.0.0")
	fillCurrent(t, l, constants.LogMaxBytes+1)

	if err := l.Log(LevelInfo, "fresh start"); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	current, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("failed to read current log: %v", err)
	}
	if !strings.HasSuffix(string(current), " fresh start\n") || strings.Count(string(current), "\n") != 1 {
		t.Errorf("current log = %q, want only the new line", truncateForError(current))
	}

	rotated, err := os.Stat(l.generationPath(1))
	if err != nil {
		t.Fatalf("rotated generation missing: %v", err)
	}
	if rotated.Size() != constants.LogMaxBytes+1 {
		t.Errorf("rotated size = %d, want %d", rotated.Size(), constants.LogMaxBytes+1)
	}
}

func TestLog_RotationCascade(t *testing.T) {
	l := New(t.TempDir(), "1.0.0")
	fillCurrent(t, l, constants.LogMaxBytes+1)

	// Seed all five historical generations with distinct markers.
	for i := 1; i <= constants.LogMaxGenerations; i++ {
		marker := []byte{'g', byte('0' + i)}
		if err := os.WriteFile(l.generationPath(i), marker, 0644); err != nil {
			t.Fatalf("failed to seed generation %d: %v", i, err)
		}
	}

	if err := l.Log(LevelInfo, "cascade"); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	// Old .5 is discarded; every other generation shifted up by one.
	for i := 2; i <= constants.LogMaxGenerations; i++ {
		data, err := os.ReadFile(l.generationPath(i))
		if err != nil {
			t.Fatalf("generation %d missing: %v", i, err)
		}
		want := "g" + string(byte('0'+i-1))
		if string(data) != want {
			t.Errorf("generation %d = %q, want %q", i, data, want)
		}
	}

	// .1 is the previous base file.
	gen1, err := os.Stat(l.generationPath(1))
	if err != nil {
		t.Fatalf("generation 1 missing: %v", err)
	}
	if gen1.Size() != constants.LogMaxBytes+1 {
		t.Errorf("generation 1 size = %d, want previous base size %d", gen1.Size(), constants.LogMaxBytes+1)
	}

	// Never more than base + 5 generations.
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		t.Fatalf("failed to list log dir: %v", err)
	}
	if len(entries) != constants.LogMaxGenerations+1 {
		t.Errorf("log dir holds %d files, want %d", len(entries), constants.LogMaxGenerations+1)
	}
	if _, err := os.Stat(l.generationPath(constants.LogMaxGenerations + 1)); !os.IsNotExist(err) {
		t.Error("a generation beyond the retention limit exists")
	}
}

func TestLog_CreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/logs"
	l := New(dir, "1.0.0")

	if err := l.Log(LevelInfo, "hello"); err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if _, err := os.Stat(l.Path()); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}

func truncateForError(data []byte) string {
	if len(data) > 80 {
		return string(data[:80]) + "..."
	}
	return string(data)
}
