// Package tray runs the agent's system tray menu. The support window
// itself and screenshot capture are host capabilities; the tray only
// glues menu events to them.
package tray

import (
	"fmt"

	"fyne.io/systray"

	"github.com/sitedesk/sitedesk-agent/internal/logfile"
	"github.com/sitedesk/sitedesk-agent/internal/logging"
	"github.com/sitedesk/sitedesk-agent/internal/version"
)

// Screenshotter captures the primary display to a file and returns its
// path. Implementations are platform-provided.
type Screenshotter interface {
	Capture() (string, error)
}

// SupportOpener shows the support request window. screenshotPath is
// empty when no screenshot was taken.
type SupportOpener interface {
	OpenSupport(screenshotPath string) error
}

// Tray owns the menu state and its event loop.
type Tray struct {
	runlog *logfile.Logger
	diag   *logging.Logger
	shots  Screenshotter
	opener SupportOpener
	onQuit func()

	mSupportShot *systray.MenuItem
	mSupport     *systray.MenuItem
	mQuit        *systray.MenuItem

	done chan struct{}
}

// New creates a tray. onQuit runs after the tray loop exits.
func New(runlog *logfile.Logger, diag *logging.Logger, shots Screenshotter, opener SupportOpener, onQuit func()) *Tray {
	return &Tray{
		runlog: runlog,
		diag:   diag,
		shots:  shots,
		opener: opener,
		onQuit: onQuit,
		done:   make(chan struct{}),
	}
}

// Run blocks in the systray event loop until Quit is selected.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(iconData)
	systray.SetTitle("SiteDesk")
	systray.SetTooltip(fmt.Sprintf("SiteDesk Agent v%s", version.Version))

	t.mSupportShot = systray.AddMenuItem("Take Screenshot and Request Support",
		"Capture the screen and open a support request")
	t.mSupport = systray.AddMenuItem("Request Support", "Open a support request")

	systray.AddSeparator()

	t.mQuit = systray.AddMenuItem("Quit", "Exit the agent")

	go t.handleMenuClicks()
}

func (t *Tray) onExit() {
	close(t.done)
	if t.onQuit != nil {
		t.onQuit()
	}
}

func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.mSupportShot.ClickedCh:
			go t.openSupport(true)

		case <-t.mSupport.ClickedCh:
			go t.openSupport(false)

		case <-t.mQuit.ClickedCh:
			systray.Quit()
			return

		case <-t.done:
			return
		}
	}
}

// openSupport captures a screenshot when requested and shows the support
// window. A failed capture degrades to opening the window without one.
func (t *Tray) openSupport(withScreenshot bool) {
	screenshotPath := ""
	if withScreenshot && t.shots != nil {
		path, err := t.shots.Capture()
		if err != nil {
			_ = t.runlog.Logf(logfile.LevelWarn, "Screenshot capture failed: %v", err)
			t.diag.Warnf("screenshot capture failed: %v", err)
		} else {
			screenshotPath = path
		}
	}

	if err := t.opener.OpenSupport(screenshotPath); err != nil {
		_ = t.runlog.Logf(logfile.LevelError, "Failed to open support window: %v", err)
		t.diag.Errorf("failed to open support window: %v", err)
	}
}
