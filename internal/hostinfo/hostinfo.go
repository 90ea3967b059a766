// Package hostinfo provides best-effort probes for stable host
// identifiers. Every probe returns ok=false on failure instead of an
// error: registration proceeds with whatever identifiers are present and
// the server mints a GUID when none is supplied.
package hostinfo

import (
	"net"
	"os"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// MachineGUID returns the stable machine identifier for this host:
// the Cryptography MachineGuid registry value on Windows, IOPlatformUUID
// on macOS and /etc/machine-id (or the dbus copy) on Linux. When the
// platform source is unreadable it falls back to gopsutil's host ID,
// which reads the same sources with different privileges handling.
func MachineGUID() (string, bool) {
	if id, ok := machineGUID(); ok {
		return id, true
	}
	if id, err := host.HostID(); err == nil && id != "" {
		return id, true
	}
	return "", false
}

// SerialNumber returns the hardware serial number (BIOS / platform /
// DMI depending on the OS).
func SerialNumber() (string, bool) {
	return serialNumber()
}

// Hostname returns the OS hostname.
func Hostname() (string, bool) {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

// PlatformTag returns the platform string sent to the backend.
// The backend expects "macos" rather than Go's "darwin"; other GOOS
// values pass through unchanged.
func PlatformTag() string {
	if runtime.GOOS == "darwin" {
		return "macos"
	}
	return runtime.GOOS
}

// virtualPrefixes covers interface names created by container runtimes,
// hypervisors and tunnels. These never carry the host's primary MAC.
var virtualPrefixes = []string{
	"veth", "docker", "br-", "virbr", "vmnet", "vboxnet",
	"utun", "awdl", "llw", "tun", "tap", "zt",
}

// PrimaryMAC returns the MAC address of the first non-loopback,
// non-virtual interface in enumeration order, canonicalized as lowercase
// colon-separated hex.
func PrimaryMAC() (string, bool) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if len(iface.HardwareAddr) == 0 {
			continue
		}
		if isVirtualName(iface.Name) {
			continue
		}
		return CanonicalMAC(iface.HardwareAddr), true
	}
	return "", false
}

func isVirtualName(name string) bool {
	lower := strings.ToLower(name)
	for _, prefix := range virtualPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// CanonicalMAC formats a hardware address as lowercase colon-separated
// hex, the form the backend stores.
func CanonicalMAC(addr net.HardwareAddr) string {
	return strings.ToLower(strings.ReplaceAll(addr.String(), "-", ":"))
}

// RMMDeviceID returns the RMM (CentraStage) device identifier when the
// RMM agent is installed on this host. Windows only; absent elsewhere.
func RMMDeviceID() (string, bool) {
	return rmmDeviceID()
}
