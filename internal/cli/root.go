// Package cli provides the command-line interface for the agent binary.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sitedesk/sitedesk-agent/internal/app"
	"github.com/sitedesk/sitedesk-agent/internal/logging"
	"github.com/sitedesk/sitedesk-agent/internal/tray"
	"github.com/sitedesk/sitedesk-agent/internal/version"
)

var (
	// Global flags
	settingsPath string
	logsDir      string
	verbose      bool

	// run flags
	noTray        bool
	noTestTickets bool
)

// NewRootCmd creates the root command. Running the binary with no
// subcommand starts the tray agent.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sitedesk-agent",
		Short: "SiteDesk support agent",
		Long: `SiteDesk Agent ` + version.Version + ` - Built: ` + version.BuildTime + `
Desktop support agent: registers this machine with the SiteDesk backend
and lets the user file support tickets from the system tray.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgent(cmd.Context())
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Settings file path (default: per-user config dir)")
	rootCmd.PersistentFlags().StringVar(&logsDir, "logs-dir", "", "Runtime log directory (default: <config dir>/logs)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose diagnostic output")

	rootCmd.Flags().BoolVar(&noTray, "no-tray", false, "Run without the system tray (headless)")
	rootCmd.Flags().BoolVar(&noTestTickets, "no-test-tickets", false, "Disable the periodic test ticket sender")

	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newSendTicketCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI with signal-aware cancellation.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp(console bool, testTickets bool) (*app.App, error) {
	return app.New(app.Options{
		SettingsPath: settingsPath,
		LogsDir:      logsDir,
		Console:      console,
		TestTickets:  testTickets,
	})
}

// runAgent starts the background tasks and blocks in the tray loop (or
// on the context when headless).
func runAgent(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a, err := newApp(noTray, !noTestTickets)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	a.Start(ctx)

	if noTray {
		<-ctx.Done()
		return nil
	}

	t := tray.New(a.RunLog, a.Diag, tray.ExecScreenshotter{}, tray.ExecOpener{}, cancel)
	t.Run()
	return nil
}
