//go:build !windows

package ipc

import "errors"

func readRegistryValue(path, key string) (string, error) {
	return "", errors.New("registry only works on Windows")
}
