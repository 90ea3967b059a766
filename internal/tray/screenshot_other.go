//go:build !darwin

package tray

import "errors"

// ExecScreenshotter is a stub on platforms where capture is handled by
// the webview host rather than a CLI tool.
type ExecScreenshotter struct{}

func (ExecScreenshotter) Capture() (string, error) {
	return "", errors.New("screenshot capture not available on this platform")
}
