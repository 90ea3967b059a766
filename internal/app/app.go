// Package app wires the agent's components into one application context.
// Every shared handle (settings store, loggers, API client) is
// constructed exactly once here and passed into the components that use
// it; background tasks are tracked so shutdown can await them.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/sitedesk/sitedesk-agent/internal/api"
	"github.com/sitedesk/sitedesk-agent/internal/config"
	"github.com/sitedesk/sitedesk-agent/internal/ipc"
	"github.com/sitedesk/sitedesk-agent/internal/logfile"
	"github.com/sitedesk/sitedesk-agent/internal/logging"
	"github.com/sitedesk/sitedesk-agent/internal/registration"
	"github.com/sitedesk/sitedesk-agent/internal/ticket"
	"github.com/sitedesk/sitedesk-agent/internal/version"
)

// Options configures the application context.
type Options struct {
	// SettingsPath overrides the default settings file location.
	SettingsPath string

	// LogsDir overrides the default runtime log directory.
	LogsDir string

	// Console enables diagnostic console output (CLI mode).
	Console bool

	// TestTickets enables the periodic test-ticket sender.
	TestTickets bool
}

// App is the application context.
type App struct {
	Store     *config.Store
	RunLog    *logfile.Logger
	Diag      *logging.Logger
	API       *api.Client
	Registrar *registration.Registrar
	Tickets   *ticket.Sender
	IPC       *ipc.Server

	testTickets bool

	cancel context.CancelFunc
	wg     sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once
}

// New builds the application context. Construction never touches the
// network; a missing settings file only surfaces once a component needs
// it.
func New(opts Options) (*App, error) {
	settingsPath := opts.SettingsPath
	if settingsPath == "" {
		var err error
		settingsPath, err = config.DefaultSettingsPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve settings path: %w", err)
		}
	}

	logsDir := opts.LogsDir
	if logsDir == "" {
		logsDir = filepath.Join(filepath.Dir(settingsPath), "logs")
	}

	store := config.NewStore(settingsPath)
	runlog := logfile.New(logsDir, version.Version)
	diag := logging.NewLogger(logging.Options{
		Console: opts.Console,
		File:    filepath.Join(logsDir, "agent-diagnostic.log"),
	})

	client := api.NewClient(store, diag)

	a := &App{
		Store:       store,
		RunLog:      runlog,
		Diag:        diag,
		API:         client,
		Registrar:   registration.NewRegistrar(store, client, runlog, diag),
		Tickets:     ticket.NewSender(store, client, runlog, diag),
		IPC:         ipc.NewServer(ipc.NewHandler(store, runlog), diag),
		testTickets: opts.TestTickets,
	}
	return a, nil
}

// Start launches the background tasks: the one-shot registration flow,
// the IPC listener and, when enabled, the test-ticket sender. It returns
// immediately; Shutdown awaits everything started here.
func (a *App) Start(ctx context.Context) {
	a.startOnce.Do(func() {
		ctx, a.cancel = context.WithCancel(ctx)

		if err := a.IPC.Start(); err != nil {
			// The frontend degrades without IPC; the agent still
			// registers and serves the tray.
			a.Diag.Errorf("IPC server failed to start: %v", err)
		}

		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.Registrar.Run(ctx)
		}()

		if a.testTickets {
			a.wg.Add(1)
			go func() {
				defer a.wg.Done()
				a.Tickets.Run(ctx)
			}()
		}
	})
}

// Shutdown cancels background tasks and waits for them to finish.
func (a *App) Shutdown() {
	a.stopOnce.Do(func() {
		if a.cancel != nil {
			a.cancel()
		}
		a.IPC.Stop()
		a.wg.Wait()
		_ = a.Diag.Close()
	})
}
