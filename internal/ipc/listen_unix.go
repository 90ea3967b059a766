//go:build !windows

package ipc

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/sitedesk/sitedesk-agent/internal/config"
)

// SocketPath returns the unix socket location inside the agent's config
// directory.
func SocketPath() (string, error) {
	settingsPath, err := config.DefaultSettingsPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(settingsPath), SocketName), nil
}

func listen() (net.Listener, error) {
	path, err := SocketPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	// A stale socket from a crashed process blocks the bind.
	os.Remove(path)

	return net.Listen("unix", path)
}

func cleanup() {
	if path, err := SocketPath(); err == nil {
		os.Remove(path)
	}
}
