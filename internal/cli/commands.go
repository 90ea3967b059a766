package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitedesk/sitedesk-agent/internal/version"
)

// newRegisterCmd runs the registration flow once in the foreground.
// Useful for installers and for re-provisioning a machine whose
// registration failed on launch.
func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Register this device with the backend now",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true, false)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			a.Registrar.Run(cmd.Context())

			settings, err := a.Store.Get()
			if err != nil {
				return err
			}
			if settings.DeviceID == "" {
				return fmt.Errorf("device is not registered (see %s)", a.RunLog.Path())
			}
			fmt.Printf("Registered: device_id=%s guid=%s\n", settings.DeviceID, settings.GUID)
			return nil
		},
	}
}

// newSendTicketCmd files a single test ticket in the foreground.
func newSendTicketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send-ticket",
		Short: "Send one test ticket to verify the ticketing pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true, false)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			ticketID, err := a.Tickets.Send(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Test ticket created, Ticket ID: %s\n", ticketID)
			return nil
		},
	}
}

// newStatusCmd prints the local registration state.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show registration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(true, false)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			settings, err := a.Store.Get()
			if err != nil {
				return err
			}

			fmt.Printf("Site ID:    %s\n", settings.SiteID)
			fmt.Printf("API base:   %s\n", settings.APIBase)
			if settings.DeviceID != "" {
				fmt.Printf("Registered: yes\n")
				fmt.Printf("Device ID:  %s\n", settings.DeviceID)
				fmt.Printf("GUID:       %s\n", settings.GUID)
			} else {
				fmt.Printf("Registered: no\n")
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sitedesk-agent %s (built %s)\n", version.Version, version.BuildTime)
		},
	}
}
