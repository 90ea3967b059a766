// Package api provides the HTTP client for the agent backend.
package api

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse indicates a 2xx response whose body did not match
// the expected schema.
var ErrMalformedResponse = errors.New("malformed response body")

// NetworkError wraps a transport-level failure (DNS, dial, TLS, timeout).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx HTTP response. Body holds a prefix of the raw
// response body for diagnostics.
type ServerError struct {
	Op     string // operation name used in the error string, e.g. "Registration"
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s failed (%d): %s", e.Op, e.Status, e.Body)
}

// IsServerError reports whether err is (or wraps) a ServerError.
func IsServerError(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// bodyExcerpt truncates a response body for inclusion in errors and logs.
func bodyExcerpt(body []byte) string {
	const maxExcerpt = 256
	s := string(body)
	if len(s) > maxExcerpt {
		return s[:maxExcerpt] + "..."
	}
	return s
}
