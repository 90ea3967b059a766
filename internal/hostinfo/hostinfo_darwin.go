//go:build darwin

package hostinfo

import (
	"os/exec"
	"strings"
)

// machineGUID reads IOPlatformUUID from the IOKit platform expert device.
func machineGUID() (string, bool) {
	return ioregValue("IOPlatformUUID")
}

func serialNumber() (string, bool) {
	return ioregValue("IOPlatformSerialNumber")
}

// ioregValue extracts a quoted value from
// `ioreg -rd1 -c IOPlatformExpertDevice` output. Lines look like:
//
//	"IOPlatformUUID" = "8C5F9A3E-..."
func ioregValue(key string) (string, bool) {
	out, err := exec.Command("ioreg", "-rd1", "-c", "IOPlatformExpertDevice").Output()
	if err != nil {
		return "", false
	}
	for _, line := range strings.Split(string(out), "\n") {
		if !strings.Contains(line, `"`+key+`"`) {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		value := strings.Trim(strings.TrimSpace(parts[1]), `"`)
		if value != "" {
			return value, true
		}
	}
	return "", false
}

func rmmDeviceID() (string, bool) {
	return "", false
}
