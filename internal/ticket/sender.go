// Package ticket implements the periodic test-ticket sender, a
// verification loop that files an automated ticket at random intervals
// so site operators can confirm the ticketing pipeline end to end.
package ticket

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sitedesk/sitedesk-agent/internal/api"
	"github.com/sitedesk/sitedesk-agent/internal/config"
	"github.com/sitedesk/sitedesk-agent/internal/constants"
	"github.com/sitedesk/sitedesk-agent/internal/hostinfo"
	"github.com/sitedesk/sitedesk-agent/internal/logfile"
	"github.com/sitedesk/sitedesk-agent/internal/logging"
	"github.com/sitedesk/sitedesk-agent/internal/models"
	"github.com/sitedesk/sitedesk-agent/internal/version"
)

// Sender files automated test tickets on a randomized schedule.
type Sender struct {
	store  *config.Store
	client *api.Client
	runlog *logfile.Logger
	diag   *logging.Logger

	// Schedule knobs, defaulted from constants; tests shrink these.
	InitialDelay time.Duration
	MinInterval  time.Duration
	MaxInterval  time.Duration
}

// NewSender creates a test-ticket sender with the default schedule
// (30s warmup, then every 5-10 minutes).
func NewSender(store *config.Store, client *api.Client, runlog *logfile.Logger, diag *logging.Logger) *Sender {
	return &Sender{
		store:        store,
		client:       client,
		runlog:       runlog,
		diag:         diag,
		InitialDelay: constants.TicketInitialDelay,
		MinInterval:  time.Duration(constants.TicketIntervalMinSec) * time.Second,
		MaxInterval:  time.Duration(constants.TicketIntervalMaxSec) * time.Second,
	}
}

// Run loops until ctx is cancelled, sending one test ticket per
// randomized interval. Failures are logged and the loop continues.
func (s *Sender) Run(ctx context.Context) {
	s.logInfo("Starting test ticket sender background task")

	if !s.sleep(ctx, s.InitialDelay) {
		s.logInfo("Test ticket sender background task stopped")
		return
	}

	for {
		wait := s.nextInterval()
		_ = s.runlog.Logf(logfile.LevelInfo,
			"Next test ticket will be sent in %.0f seconds (%.1f minutes)",
			wait.Seconds(), wait.Minutes())

		if !s.sleep(ctx, wait) {
			break
		}

		s.logInfo("Sending test ticket...")
		if ticketID, err := s.Send(ctx); err != nil {
			_ = s.runlog.Logf(logfile.LevelError, "Failed to send test ticket: %v", err)
			s.diag.Errorf("test ticket failed: %v", err)
		} else {
			_ = s.runlog.Logf(logfile.LevelInfo,
				"Test ticket sent successfully, Ticket ID: %s", ticketID)
		}
	}

	s.logInfo("Test ticket sender background task stopped")
}

// nextInterval picks a uniform random wait between MinInterval and
// MaxInterval inclusive, at second granularity.
func (s *Sender) nextInterval() time.Duration {
	minSec := int(s.MinInterval.Seconds())
	maxSec := int(s.MaxInterval.Seconds())
	if maxSec <= minSec {
		return s.MinInterval
	}
	return time.Duration(minSec+rand.Intn(maxSec-minSec+1)) * time.Second
}

// sleep waits for d or until ctx is cancelled; false means cancelled.
func (s *Sender) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// Send files a single test ticket. Unregistered hosts are skipped: the
// backend requires a device_id header.
func (s *Sender) Send(ctx context.Context) (string, error) {
	settings, err := s.store.Get()
	if err != nil {
		return "", err
	}
	if settings.DeviceID == "" {
		return "", fmt.Errorf("device not registered, skipping test ticket")
	}

	req := BuildTestTicket(settings)

	endpointNote := fmt.Sprintf("Sending test ticket for device %s", settings.DeviceID)
	s.diag.Debugf("%s", endpointNote)

	return s.client.CreateTicket(ctx, settings.DeviceID, settings.SiteID, req)
}

// BuildTestTicket composes the canned test-ticket payload for the given
// settings snapshot.
func BuildTestTicket(settings config.Settings) models.TicketRequest {
	hostname := settings.Hostname
	if hostname == "" {
		hostname = "unknown"
	}

	rmmID := models.OptString(hostinfo.RMMDeviceID())
	rmmText := "N/A"
	if rmmID != nil {
		rmmText = *rmmID
	}

	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 UTC")
	description := fmt.Sprintf(
		"This is an automated test ticket to verify the ticketing system.\n\n"+
			"Generated at: %s\n"+
			"Device ID: %s\n"+
			"Site ID: %s\n"+
			"Hostname: %s\n"+
			"Version: %s\n"+
			"RMM Device ID: %s\n\n"+
			"This ticket can be safely closed.",
		timestamp, settings.DeviceID, settings.SiteID, hostname, version.Version, rmmText)

	return models.TicketRequest{
		Summary:     fmt.Sprintf("[TEST] Automated Test Ticket from %s", hostname),
		Description: description,
		Name:        "Test User",
		Email:       "test@example.com",
		Phone:       "555-0100",
		Impact:      "Low",
		Urgency:     "Low",
		RMMID:       rmmID,
	}
}

func (s *Sender) logInfo(msg string) {
	_ = s.runlog.Log(logfile.LevelInfo, msg)
	s.diag.Infof("%s", msg)
}
