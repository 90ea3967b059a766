//go:build darwin

package tray

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// ExecScreenshotter captures the primary display with the platform's
// screenshot tool.
type ExecScreenshotter struct{}

// Capture runs `screencapture -x` into a temp file.
func (ExecScreenshotter) Capture() (string, error) {
	path := filepath.Join(os.TempDir(),
		fmt.Sprintf("sitedesk-screenshot-%d.png", time.Now().UnixNano()))
	if err := exec.Command("screencapture", "-x", path).Run(); err != nil {
		return "", fmt.Errorf("screencapture failed: %w", err)
	}
	return path, nil
}
