//go:build linux

package hostinfo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFirstFileValue(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "machine-id")
	if err := os.WriteFile(present, []byte("  abc123\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	blank := filepath.Join(dir, "blank")
	if err := os.WriteFile(blank, []byte("  \n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	missing := filepath.Join(dir, "nope")

	tests := []struct {
		name   string
		paths  []string
		want   string
		wantOK bool
	}{
		{"first readable wins", []string{missing, present}, "abc123", true},
		{"whitespace trimmed", []string{present}, "abc123", true},
		{"blank file skipped", []string{blank, present}, "abc123", true},
		{"nothing readable", []string{missing}, "", false},
		{"blank only", []string{blank}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := firstFileValue(tt.paths)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("firstFileValue() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
