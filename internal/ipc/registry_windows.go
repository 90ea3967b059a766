//go:build windows

package ipc

import "golang.org/x/sys/windows/registry"

func readRegistryValue(path, key string) (string, error) {
	subkey, err := registry.OpenKey(registry.LOCAL_MACHINE, path,
		registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return "", err
	}
	defer subkey.Close()

	value, _, err := subkey.GetStringValue(key)
	if err != nil {
		return "", err
	}
	return value, nil
}
