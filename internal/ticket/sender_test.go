package ticket

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sitedesk/sitedesk-agent/internal/api"
	"github.com/sitedesk/sitedesk-agent/internal/config"
	"github.com/sitedesk/sitedesk-agent/internal/logfile"
	"github.com/sitedesk/sitedesk-agent/internal/logging"
	"github.com/sitedesk/sitedesk-agent/internal/version"
)

func newSenderFixture(t *testing.T, settingsJSON, serverURL string) (*Sender, *logfile.Logger) {
	t.Helper()
	dir := t.TempDir()

	path := filepath.Join(dir, "settings.json")
	content := settingsJSON
	if strings.Contains(settingsJSON, "%s") {
		content = fmt.Sprintf(settingsJSON, serverURL)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write settings fixture: %v", err)
	}

	store := config.NewStore(path)
	runlog := logfile.New(filepath.Join(dir, "logs"), "1.0.0")
	diag := logging.NewLogger(logging.Options{})
	return NewSender(store, api.NewClient(store, diag), runlog, diag), runlog
}

func TestBuildTestTicket(t *testing.T) {
	req := BuildTestTicket(config.Settings{
		SiteID:   "S1",
		DeviceID: "D1",
		Hostname: "desk-42",
	})

	if req.Summary != "[TEST] Automated Test Ticket from desk-42" {
		t.Errorf("summary = %q", req.Summary)
	}
	if req.Name != "Test User" || req.Email != "test@example.com" || req.Phone != "555-0100" {
		t.Errorf("requester = %s/%s/%s", req.Name, req.Email, req.Phone)
	}
	if req.Impact != "Low" || req.Urgency != "Low" {
		t.Errorf("impact/urgency = %s/%s, want Low/Low", req.Impact, req.Urgency)
	}
	for _, want := range []string{
		"Device ID: D1",
		"Site ID: S1",
		"Hostname: desk-42",
		"Version: " + version.Version,
		"This ticket can be safely closed.",
	} {
		if !strings.Contains(req.Description, want) {
			t.Errorf("description missing %q:\n%s", want, req.Description)
		}
	}
}

func TestBuildTestTicket_DefaultsHostname(t *testing.T) {
	req := BuildTestTicket(config.Settings{SiteID: "S1", DeviceID: "D1"})
	if req.Summary != "[TEST] Automated Test Ticket from unknown" {
		t.Errorf("summary = %q", req.Summary)
	}
}

func TestSend_SkipsUnregistered(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		t.Error("unregistered host hit the ticket endpoint")
	}))
	defer server.Close()

	sender, _ := newSenderFixture(t, `{"site_id":"S1","api_base":"%s"}`, server.URL)
	_, err := sender.Send(context.Background())
	if err == nil || !strings.Contains(err.Error(), "not registered") {
		t.Fatalf("Send() error = %v, want not-registered error", err)
	}
}

func TestSend_Success(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if got := r.Header.Get("X-Device-ID"); got != "D1" {
			t.Errorf("X-Device-ID = %q, want D1", got)
		}
		if got := r.Header.Get("X-Site-ID"); got != "S1" {
			t.Errorf("X-Site-ID = %q, want S1", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("body not multipart: %v", err)
		}
		if got := r.FormValue("summary"); !strings.HasPrefix(got, "[TEST] ") {
			t.Errorf("summary = %q, want [TEST] prefix", got)
		}
		fmt.Fprint(w, `{"data":"T77"}`)
	}))
	defer server.Close()

	sender, _ := newSenderFixture(t, `{"site_id":"S1","api_base":"%s","device_id":"D1","hostname":"desk-42"}`, server.URL)
	ticketID, err := sender.Send(context.Background())
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if ticketID != "T77" {
		t.Errorf("Send() = %q, want T77", ticketID)
	}
}

func TestNextInterval_Bounds(t *testing.T) {
	sender, _ := newSenderFixture(t, `{"site_id":"S1","api_base":"https://x/"}`, "")
	sender.MinInterval = 300 * time.Second
	sender.MaxInterval = 600 * time.Second

	for i := 0; i < 200; i++ {
		got := sender.nextInterval()
		if got < sender.MinInterval || got > sender.MaxInterval {
			t.Fatalf("nextInterval() = %v, want within [%v, %v]", got, sender.MinInterval, sender.MaxInterval)
		}
	}
}

func TestNextInterval_DegenerateRange(t *testing.T) {
	sender, _ := newSenderFixture(t, `{"site_id":"S1","api_base":"https://x/"}`, "")
	sender.MinInterval = 5 * time.Second
	sender.MaxInterval = 5 * time.Second

	if got := sender.nextInterval(); got != 5*time.Second {
		t.Errorf("nextInterval() = %v, want 5s", got)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		fmt.Fprint(w, `{"data":"T1"}`)
	}))
	defer server.Close()

	sender, runlog := newSenderFixture(t, `{"site_id":"S1","api_base":"%s","device_id":"D1"}`, server.URL)
	sender.InitialDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sender.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}

	data, err := os.ReadFile(runlog.Path())
	if err != nil {
		t.Fatalf("failed to read runtime log: %v", err)
	}
	log := string(data)
	if !strings.Contains(log, "Starting test ticket sender background task") {
		t.Errorf("runtime log missing start line:\n%s", log)
	}
	if !strings.Contains(log, "Test ticket sender background task stopped") {
		t.Errorf("runtime log missing stop line:\n%s", log)
	}
}
