package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/sitedesk/sitedesk-agent/internal/config"
)

// Client connects to a running agent's IPC listener. Used by the
// frontend shim and by CLI diagnostics.
type Client struct {
	timeout time.Duration
}

// NewClient creates an IPC client with a default per-call timeout.
func NewClient() *Client {
	return &Client{timeout: 5 * time.Second}
}

// SetTimeout overrides the per-call timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.timeout = d
}

// Call sends one request and reads one response.
func (c *Client) Call(ctx context.Context, req *Request) (*Response, error) {
	conn, err := dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("agent not reachable: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	} else {
		conn.SetDeadline(time.Now().Add(c.timeout))
	}

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return &resp, nil
}

// GetSettingsInfo fetches the current settings snapshot.
func (c *Client) GetSettingsInfo(ctx context.Context) (*config.Settings, error) {
	resp, err := c.Call(ctx, &Request{Type: MsgGetSettingsInfo})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errors.New(resp.Error)
	}
	settings := resp.GetSettings()
	if settings == nil {
		return nil, errors.New("response carried no settings")
	}
	return settings, nil
}

// CheckRegistrationStatus reports whether the agent holds a device_id.
func (c *Client) CheckRegistrationStatus(ctx context.Context) (bool, error) {
	resp, err := c.Call(ctx, &Request{Type: MsgCheckRegistrationStatus})
	if err != nil {
		return false, err
	}
	if !resp.Success {
		return false, errors.New(resp.Error)
	}
	registered, ok := resp.GetBool()
	if !ok {
		return false, errors.New("response carried no status")
	}
	return registered, nil
}

// LogToFile appends a line to the agent's runtime log.
func (c *Client) LogToFile(ctx context.Context, level, message string) error {
	resp, err := c.Call(ctx, &Request{Type: MsgLogToFile, Level: level, Message: message})
	if err != nil {
		return err
	}
	if !resp.Success {
		return errors.New(resp.Error)
	}
	return nil
}

func dial(ctx context.Context) (net.Conn, error) {
	var d net.Dialer
	network, addr, err := dialTarget()
	if err != nil {
		return nil, err
	}
	return d.DialContext(ctx, network, addr)
}
