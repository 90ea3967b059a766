package hostinfo

import (
	"net"
	"runtime"
	"testing"
)

func TestCanonicalMAC(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"aa:bb:cc:dd:ee:ff", "aa:bb:cc:dd:ee:ff"},
		{"AA:BB:CC:DD:EE:FF", "aa:bb:cc:dd:ee:ff"},
		{"AA-BB-CC-DD-EE-FF", "aa:bb:cc:dd:ee:ff"},
		{"02:42:ac:11:00:02", "02:42:ac:11:00:02"},
	}

	for _, tt := range tests {
		addr, err := net.ParseMAC(tt.in)
		if err != nil {
			t.Fatalf("ParseMAC(%q) error = %v", tt.in, err)
		}
		if got := CanonicalMAC(addr); got != tt.want {
			t.Errorf("CanonicalMAC(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlatformTag(t *testing.T) {
	got := PlatformTag()
	switch runtime.GOOS {
	case "darwin":
		if got != "macos" {
			t.Errorf("PlatformTag() = %q, want macos", got)
		}
	default:
		if got != runtime.GOOS {
			t.Errorf("PlatformTag() = %q, want %q", got, runtime.GOOS)
		}
	}
}

func TestIsVirtualName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"eth0", false},
		{"en0", false},
		{"wlan0", false},
		{"veth1a2b3c", true},
		{"docker0", true},
		{"br-4f8a2e", true},
		{"virbr0", true},
		{"vmnet8", true},
		{"vboxnet0", true},
		{"utun3", true},
		{"awdl0", true},
		{"tun0", true},
		{"tap0", true},
		{"ztks5a9b2c", true},
		{"VETH0", true},
	}

	for _, tt := range tests {
		if got := isVirtualName(tt.name); got != tt.want {
			t.Errorf("isVirtualName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHostname(t *testing.T) {
	name, ok := Hostname()
	if ok && name == "" {
		t.Error("Hostname() returned ok with empty name")
	}
}
