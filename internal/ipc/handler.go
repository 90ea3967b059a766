package ipc

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/sitedesk/sitedesk-agent/internal/config"
	"github.com/sitedesk/sitedesk-agent/internal/logfile"
)

// Handler implements the command surface. Commands are thin adapters:
// each one defers to the settings store or runtime logger verbatim.
type Handler struct {
	store  *config.Store
	runlog *logfile.Logger
}

// NewHandler creates a command handler.
func NewHandler(store *config.Store, runlog *logfile.Logger) *Handler {
	return &Handler{store: store, runlog: runlog}
}

// GetSettingsInfo returns the current settings snapshot.
func (h *Handler) GetSettingsInfo() (config.Settings, error) {
	return h.store.Get()
}

// CheckRegistrationStatus reports whether the device is registered.
func (h *Handler) CheckRegistrationStatus() bool {
	return h.store.IsRegistered()
}

// LogToFile appends a frontend-originated line to the runtime log.
// Unrecognized level strings fold to INFO. A logger failure is fatal to
// the command and surfaces to the frontend as an error response.
func (h *Handler) LogToFile(level, message string) error {
	return h.runlog.Log(logfile.ParseLevel(level), message)
}

// ReadFileText returns the contents of a local file as UTF-8 text.
// Used by the support window to preview attachments.
func (h *Handler) ReadFileText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadFileBase64 returns the contents of a local file base64-encoded,
// the form the support window embeds screenshots in.
func (h *Handler) ReadFileBase64(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// ReadRegistryValue reads a string value from HKLM. Windows only.
func (h *Handler) ReadRegistryValue(path, key string) (string, error) {
	return readRegistryValue(path, key)
}

// Dispatch routes a request to its handler and builds the response.
func (h *Handler) Dispatch(req *Request) *Response {
	switch req.Type {
	case MsgGetSettingsInfo:
		settings, err := h.GetSettingsInfo()
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		return NewOKResponse(settings)

	case MsgCheckRegistrationStatus:
		return NewOKResponse(h.CheckRegistrationStatus())

	case MsgLogToFile:
		if err := h.LogToFile(req.Level, req.Message); err != nil {
			return NewErrorResponse(err.Error())
		}
		return NewOKResponse(nil)

	case MsgReadFileText:
		text, err := h.ReadFileText(req.Path)
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		return NewOKResponse(text)

	case MsgReadFileBase64:
		encoded, err := h.ReadFileBase64(req.Path)
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		return NewOKResponse(encoded)

	case MsgReadRegistryValue:
		value, err := h.ReadRegistryValue(req.Path, req.Key)
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		return NewOKResponse(value)

	default:
		return NewErrorResponse(fmt.Sprintf("unknown command: %s", req.Type))
	}
}
