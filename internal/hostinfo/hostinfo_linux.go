//go:build linux

package hostinfo

import (
	"os"
	"strings"
)

var machineIDPaths = []string{
	"/etc/machine-id",
	"/var/lib/dbus/machine-id",
}

func machineGUID() (string, bool) {
	return firstFileValue(machineIDPaths)
}

func serialNumber() (string, bool) {
	// DMI serial; often root-readable only, in which case the probe is
	// simply absent.
	return firstFileValue([]string{"/sys/class/dmi/id/product_serial"})
}

func firstFileValue(paths []string) (string, bool) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		value := strings.TrimSpace(string(data))
		if value != "" {
			return value, true
		}
	}
	return "", false
}

func rmmDeviceID() (string, bool) {
	return "", false
}
