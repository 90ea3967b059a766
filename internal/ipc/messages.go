// Package ipc exposes the agent's command surface to the support-window
// frontend over a local listener: a unix socket on unix systems and a
// loopback TCP port on Windows. Messages are newline-delimited JSON.
package ipc

import (
	"encoding/json"

	"github.com/sitedesk/sitedesk-agent/internal/config"
)

// WindowsLoopbackAddr is the listener address on Windows. A loopback
// port is used instead of a named pipe: the agent runs per-user, so the
// pipe security descriptor machinery buys nothing here.
const WindowsLoopbackAddr = "127.0.0.1:48632"

// SocketName is the unix socket file name, created in the agent's
// config directory.
const SocketName = "agent.sock"

// MessageType identifies an IPC command or response.
type MessageType string

const (
	// Request types (frontend -> agent)
	MsgGetSettingsInfo         MessageType = "GetSettingsInfo"
	MsgCheckRegistrationStatus MessageType = "CheckRegistrationStatus"
	MsgLogToFile               MessageType = "LogToFile"
	MsgReadFileText            MessageType = "ReadFileText"
	MsgReadFileBase64          MessageType = "ReadFileBase64"
	MsgReadRegistryValue       MessageType = "ReadRegistryValue"

	// Response types (agent -> frontend)
	MsgOK    MessageType = "OK"
	MsgError MessageType = "Error"
)

// Request is an IPC request. Fields beyond Type are command-specific.
type Request struct {
	Type MessageType `json:"type"`

	// LogToFile
	Level   string `json:"level,omitempty"`
	Message string `json:"message,omitempty"`

	// ReadFileText / ReadFileBase64 / ReadRegistryValue
	Path string `json:"path,omitempty"`
	Key  string `json:"key,omitempty"`
}

// Response is an IPC response.
type Response struct {
	Type    MessageType `json:"type"`
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// NewOKResponse creates a success response with optional payload.
func NewOKResponse(data interface{}) *Response {
	return &Response{Type: MsgOK, Success: true, Data: data}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(err string) *Response {
	return &Response{Type: MsgError, Success: false, Error: err}
}

// GetSettings extracts a settings payload from a response.
// Returns nil if the response carries no settings.
func (r *Response) GetSettings() *config.Settings {
	if r.Data == nil {
		return nil
	}
	switch v := r.Data.(type) {
	case *config.Settings:
		return v
	case config.Settings:
		return &v
	case map[string]interface{}:
		data, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		var settings config.Settings
		if err := json.Unmarshal(data, &settings); err != nil {
			return nil
		}
		return &settings
	}
	return nil
}

// GetBool extracts a boolean payload from a response.
func (r *Response) GetBool() (bool, bool) {
	v, ok := r.Data.(bool)
	return v, ok
}

// GetString extracts a string payload from a response.
func (r *Response) GetString() (string, bool) {
	v, ok := r.Data.(string)
	return v, ok
}
