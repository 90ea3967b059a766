// SiteDesk Agent - desktop support agent.
//
// Sits in the system tray, registers the host machine with the SiteDesk
// backend on first launch, and lets the user file support tickets
// (optionally with a screenshot).
//
// Build for Windows without a console window:
//
//	GOOS=windows go build -ldflags "-H=windowsgui" ./cmd/sitedesk-agent
package main

import "github.com/sitedesk/sitedesk-agent/internal/cli"

func main() {
	cli.Execute()
}
