package tray

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ExecOpener launches the support window binary installed next to the
// agent executable, passing the screenshot path when one was captured.
type ExecOpener struct{}

// OpenSupport starts sitedesk-support(.exe) from the agent's directory.
func (ExecOpener) OpenSupport(screenshotPath string) error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to find executable path: %w", err)
	}

	name := "sitedesk-support"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	supportPath := filepath.Join(filepath.Dir(exePath), name)

	if _, err := os.Stat(supportPath); os.IsNotExist(err) {
		// Fall back to PATH lookup for dev installs.
		supportPath = name
	}

	args := []string{}
	if screenshotPath != "" {
		args = append(args, "--screenshot", screenshotPath)
	}

	cmd := exec.Command(supportPath, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch support window: %w", err)
	}
	return nil
}
