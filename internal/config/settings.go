// Package config manages the agent settings document.
//
// Settings file location:
//   - Windows: %USERPROFILE%\.config\sitedesk\settings.json
//   - Unix: ~/.config/sitedesk/settings.json
//
// JSON format:
//
//	{
//	  "site_id": "S1",
//	  "api_base": "https://api.example.com/",
//	  "device_id": "...",   // set after first successful registration
//	  "guid": "...",        // echoed by the server at registration
//	  "hostname": "..."     // snapshot taken at registration time
//	}
//
// The file is created by the installer with site_id and api_base; the
// agent only ever adds the registration fields. Unknown fields written by
// other tools are preserved verbatim across updates.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// ErrConfigMissing indicates the settings file is absent or unreadable.
// Operations that need site_id or api_base fail with this error.
var ErrConfigMissing = errors.New("settings file missing or malformed")

// Settings is a snapshot of the persisted settings document.
// Optional fields are empty strings when absent.
type Settings struct {
	SiteID   string `json:"site_id"`
	DeviceID string `json:"device_id,omitempty"`
	GUID     string `json:"guid,omitempty"`
	Hostname string `json:"hostname,omitempty"`
	APIBase  string `json:"api_base"`
}

// Store owns the settings document. All mutations go through a single
// writer mutex; readers get consistent snapshots.
type Store struct {
	mu   sync.RWMutex
	path string
}

// DefaultSettingsPath returns the per-user settings file location.
func DefaultSettingsPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.json"), nil
}

// DefaultLogsDir returns the per-user runtime log directory.
func DefaultLogsDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

func configDir() (string, error) {
	if runtime.GOOS == "windows" {
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", errors.New("USERPROFILE environment variable not set")
		}
		return filepath.Join(userProfile, ".config", "sitedesk"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "sitedesk"), nil
}

// NewStore creates a store backed by the settings file at path.
// The file is not required to exist yet; Get reports ErrConfigMissing
// until the installer has provisioned it.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns a snapshot of the settings document.
func (s *Store) Get() (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, settings, err := s.load()
	return settings, err
}

// load reads and decodes the document. Callers must hold s.mu.
// The raw map carries fields unknown to this build so they survive saves.
func (s *Store) load() (map[string]json.RawMessage, Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, Settings{}, fmt.Errorf("%w: %s", ErrConfigMissing, s.path)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, Settings{}, fmt.Errorf("%w: %v", ErrConfigMissing, err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, Settings{}, fmt.Errorf("%w: %v", ErrConfigMissing, err)
	}

	return raw, settings, nil
}

// Complete returns a snapshot with locally discoverable fields filled in
// at the moment of the call. Nothing is persisted; hostname is only
// written to disk as part of a successful registration.
func (s *Store) Complete() (Settings, error) {
	settings, err := s.Get()
	if err != nil {
		return Settings{}, err
	}
	if settings.Hostname == "" {
		if host, err := os.Hostname(); err == nil {
			settings.Hostname = host
		}
	}
	return settings, nil
}

// IsRegistered reports whether the device holds a server-issued device_id.
// A missing or malformed settings file counts as unregistered.
func (s *Store) IsRegistered() bool {
	settings, err := s.Get()
	if err != nil {
		return false
	}
	return settings.DeviceID != ""
}

// UpdateFromRegistration merges the server-assigned identifiers into the
// document and persists it atomically. The hostname snapshot taken at
// registration time is persisted alongside. device_id is monotonic: the
// agent never clears it once set.
func (s *Store) UpdateFromRegistration(deviceID, guid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, _, err := s.load()
	if err != nil {
		return err
	}

	hostname := ""
	if host, err := os.Hostname(); err == nil {
		hostname = host
	}

	if err := setRaw(raw, "device_id", deviceID); err != nil {
		return err
	}
	if err := setRaw(raw, "guid", guid); err != nil {
		return err
	}
	if hostname != "" {
		if err := setRaw(raw, "hostname", hostname); err != nil {
			return err
		}
	}

	return s.save(raw)
}

func setRaw(raw map[string]json.RawMessage, key, value string) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	raw[key] = encoded
	return nil
}

// save writes the document via a temp file plus rename so a crash cannot
// leave a half-written settings file. Callers must hold s.mu.
func (s *Store) save(raw map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	if err := os.Rename(tmpFile, s.path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename settings file: %w", err)
	}

	return nil
}

// APIEndpoint joins the configured api_base with path. path must begin
// with "/"; api_base must be present in the settings document.
func (s *Store) APIEndpoint(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("endpoint path must begin with '/': %q", path)
	}

	settings, err := s.Get()
	if err != nil {
		return "", err
	}
	if settings.APIBase == "" {
		return "", fmt.Errorf("%w: api_base not set", ErrConfigMissing)
	}

	return strings.TrimSuffix(settings.APIBase, "/") + path, nil
}
