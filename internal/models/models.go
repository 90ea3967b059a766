// Package models defines the wire types exchanged with the backend.
package models

// RegistrationRequest is the body POSTed to /v1.0/register. Optional
// identifier fields are pointers so absent probes are omitted from the
// JSON (the server also accepts explicit nulls).
type RegistrationRequest struct {
	GUID     *string `json:"guid,omitempty"`
	SiteID   string  `json:"site_id"`
	Hostname string  `json:"hostname"`
	Version  string  `json:"version"`
	Platform string  `json:"platform"`
	Serial   *string `json:"serial,omitempty"`
	MAC      *string `json:"mac,omitempty"`
}

// RegistrationData carries the server-assigned identifiers.
type RegistrationData struct {
	DeviceID string `json:"device_id"`
	GUID     string `json:"guid"`
}

// RegistrationResponse is the success body of /v1.0/register.
type RegistrationResponse struct {
	Data RegistrationData `json:"data"`
}

// TicketRequest is the multipart form sent to /v1.0/ticket/create.
type TicketRequest struct {
	Summary     string
	Description string
	Name        string
	Email       string
	Phone       string
	Impact      string
	Urgency     string
	RMMID       *string
}

// TicketResponse is the success body of /v1.0/ticket/create; Data is the
// created ticket ID.
type TicketResponse struct {
	Data string `json:"data"`
}

// OptString converts a probe result into an optional request field.
func OptString(value string, ok bool) *string {
	if !ok || value == "" {
		return nil
	}
	return &value
}
