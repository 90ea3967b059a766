package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"

	"github.com/sitedesk/sitedesk-agent/internal/constants"
	"github.com/sitedesk/sitedesk-agent/internal/models"
)

// Register performs the one-shot registration exchange: it trades the
// host identifiers in req for a server-issued device_id and guid.
//
// Success is HTTP 2xx with a body parseable as
// {"data":{"device_id":..., "guid":...}} where both strings are
// non-empty. Anything else is a typed error: NetworkError for transport
// failures, ServerError for non-2xx statuses, ErrMalformedResponse for a
// 2xx body that does not match the schema. No retries happen here.
func (c *Client) Register(ctx context.Context, req models.RegistrationRequest) (*models.RegistrationResponse, error) {
	endpoint, err := c.store.APIEndpoint(constants.RegisterPath)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal registration request: %w", err)
	}

	c.log.Debug().Str("endpoint", endpoint).Msg("sending registration request")

	httpReq, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create registration request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{Op: "Registration", Status: resp.StatusCode, Body: bodyExcerpt(body)}
	}

	var result models.RegistrationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v (body: %s)", ErrMalformedResponse, err, bodyExcerpt(body))
	}
	if result.Data.DeviceID == "" || result.Data.GUID == "" {
		return nil, fmt.Errorf("%w: missing device_id or guid (body: %s)", ErrMalformedResponse, bodyExcerpt(body))
	}

	return &result, nil
}
