// Package constants centralizes tunable limits shared across packages.
package constants

import "time"

// Runtime log rotation limits.
const (
	// LogMaxBytes is the size above which the current runtime log is
	// rotated before the next append. The check is strictly greater-than:
	// a file of exactly this size is not rotated.
	LogMaxBytes = 10 * 1024 * 1024

	// LogMaxGenerations is the number of historical log generations kept
	// (runtime_<V>.log.1 .. .5). Rotation discards anything older.
	LogMaxGenerations = 5
)

// HTTP client tuning.
const (
	HTTPDialTimeout         = 10 * time.Second
	HTTPTLSHandshakeTimeout = 10 * time.Second
	HTTPIdleConnTimeout     = 90 * time.Second
	HTTPRequestTimeout      = 30 * time.Second
)

// Backend endpoint paths.
const (
	RegisterPath     = "/v1.0/register"
	TicketCreatePath = "/v1.0/ticket/create"
)

// Test ticket sender scheduling.
const (
	TicketInitialDelay   = 30 * time.Second
	TicketIntervalMinSec = 300
	TicketIntervalMaxSec = 600
)
