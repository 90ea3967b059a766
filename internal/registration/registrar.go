// Package registration drives first-launch device registration: it
// decides whether the host still needs a server-issued device_id, runs
// the exchange, and folds the result back into the settings store.
package registration

import (
	"context"
	"sync"

	"github.com/sitedesk/sitedesk-agent/internal/api"
	"github.com/sitedesk/sitedesk-agent/internal/config"
	"github.com/sitedesk/sitedesk-agent/internal/hostinfo"
	"github.com/sitedesk/sitedesk-agent/internal/logfile"
	"github.com/sitedesk/sitedesk-agent/internal/logging"
	"github.com/sitedesk/sitedesk-agent/internal/models"
	"github.com/sitedesk/sitedesk-agent/internal/version"
)

// Registrar runs the registration flow at most once per process. The
// one-shot guard holds even when Run is invoked concurrently, so a
// second tray event cannot put two registration calls in flight.
type Registrar struct {
	store  *config.Store
	client *api.Client
	runlog *logfile.Logger
	diag   *logging.Logger

	once sync.Once
}

// NewRegistrar creates a registrar. The runtime log receives the
// user-visible outcome lines; the diagnostic logger gets the details.
func NewRegistrar(store *config.Store, client *api.Client, runlog *logfile.Logger, diag *logging.Logger) *Registrar {
	return &Registrar{
		store:  store,
		client: client,
		runlog: runlog,
		diag:   diag,
	}
}

// Run executes the registration flow. It catches every error at this
// level and reports through the logs; it never fails the host process.
// Calls after the first are no-ops.
func (r *Registrar) Run(ctx context.Context) {
	r.once.Do(func() { r.run(ctx) })
}

func (r *Registrar) run(ctx context.Context) {
	if r.store.IsRegistered() {
		r.logInfo("Device already registered")
		return
	}

	r.logInfo("First launch detected, registering device...")

	settings, err := r.store.Complete()
	if err != nil {
		// Without site_id/api_base there is nothing to send; the
		// installer provisions these, so report and stand down.
		r.logError("Cannot register device: " + err.Error())
		return
	}

	req := r.buildRequest(settings)

	resp, err := r.client.Register(ctx, req)
	if err != nil {
		r.logError("Failed to register device: " + err.Error())
		r.logError("Will retry on next launch")
		return
	}

	if err := r.store.UpdateFromRegistration(resp.Data.DeviceID, resp.Data.GUID); err != nil {
		// The server now believes this device is registered but we could
		// not persist device_id. The next launch re-registers; the server
		// is expected to be idempotent on (site_id, guid) and hand back
		// the same device_id.
		r.logError("Registered with server but failed to persist settings: " + err.Error())
		r.logError("Will retry on next launch")
		return
	}

	r.logInfo("Device registered successfully")
	_ = r.runlog.Logf(logfile.LevelInfo, "Device ID: %s, GUID: %s", resp.Data.DeviceID, resp.Data.GUID)
	r.diag.Info().
		Str("device_id", resp.Data.DeviceID).
		Str("guid", resp.Data.GUID).
		Msg("device registered")
}

// buildRequest composes the registration payload. Probes are
// best-effort: an absent value is omitted and the server mints identity
// from whatever is present.
func (r *Registrar) buildRequest(settings config.Settings) models.RegistrationRequest {
	hostname := settings.Hostname
	if hostname == "" {
		hostname = "unknown"
	}

	return models.RegistrationRequest{
		GUID:     models.OptString(hostinfo.MachineGUID()),
		SiteID:   settings.SiteID,
		Hostname: hostname,
		Version:  version.Version,
		Platform: hostinfo.PlatformTag(),
		Serial:   models.OptString(hostinfo.SerialNumber()),
		MAC:      models.OptString(hostinfo.PrimaryMAC()),
	}
}

func (r *Registrar) logInfo(msg string) {
	_ = r.runlog.Log(logfile.LevelInfo, msg)
	r.diag.Infof("%s", msg)
}

func (r *Registrar) logError(msg string) {
	_ = r.runlog.Log(logfile.LevelError, msg)
	r.diag.Errorf("%s", msg)
}
