//go:build windows

package hostinfo

import (
	"strings"

	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows/registry"
)

// machineGUID reads HKLM\SOFTWARE\Microsoft\Cryptography\MachineGuid,
// the value Windows assigns at install time.
func machineGUID() (string, bool) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`SOFTWARE\Microsoft\Cryptography`, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return "", false
	}
	defer key.Close()

	guid, _, err := key.GetStringValue("MachineGuid")
	if err != nil || guid == "" {
		return "", false
	}
	return guid, true
}

type win32BIOS struct {
	SerialNumber string
}

func serialNumber() (string, bool) {
	var bios []win32BIOS
	if err := wmi.Query("SELECT SerialNumber FROM Win32_BIOS", &bios); err != nil {
		return "", false
	}
	if len(bios) == 0 {
		return "", false
	}
	serial := strings.TrimSpace(bios[0].SerialNumber)
	if serial == "" {
		return "", false
	}
	return serial, true
}

// rmmDeviceID reads the CentraStage device ID left by the RMM agent.
func rmmDeviceID() (string, bool) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`SOFTWARE\CentraStage`, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return "", false
	}
	defer key.Close()

	id, _, err := key.GetStringValue("DeviceID")
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}
