package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	nethttp "net/http"

	"github.com/sitedesk/sitedesk-agent/internal/constants"
	"github.com/sitedesk/sitedesk-agent/internal/models"
)

// CreateTicket submits a support ticket as a multipart form, matching
// the format the support webview uses. The device and site identifiers
// travel as headers, not form fields. Returns the created ticket ID.
func (c *Client) CreateTicket(ctx context.Context, deviceID, siteID string, req models.TicketRequest) (string, error) {
	endpoint, err := c.store.APIEndpoint(constants.TicketCreatePath)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	fields := map[string]string{
		"summary":     req.Summary,
		"description": req.Description,
		"name":        req.Name,
		"email":       req.Email,
		"phone":       req.Phone,
		"impact":      req.Impact,
		"urgency":     req.Urgency,
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return "", fmt.Errorf("failed to build ticket form: %w", err)
		}
	}
	if req.RMMID != nil {
		if err := form.WriteField("rmm_id", *req.RMMID); err != nil {
			return "", fmt.Errorf("failed to build ticket form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize ticket form: %w", err)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodPost, endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create ticket request: %w", err)
	}
	httpReq.Header.Set("Content-Type", form.FormDataContentType())
	httpReq.Header.Set("X-Device-ID", deviceID)
	httpReq.Header.Set("X-Site-ID", siteID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ServerError{Op: "Ticket creation", Status: resp.StatusCode, Body: bodyExcerpt(body)}
	}

	var result models.TicketResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v (body: %s)", ErrMalformedResponse, err, bodyExcerpt(body))
	}
	if result.Data == "" {
		return "", fmt.Errorf("%w: missing ticket id (body: %s)", ErrMalformedResponse, bodyExcerpt(body))
	}

	return result.Data, nil
}
