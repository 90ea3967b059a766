//go:build !windows && !darwin && !linux

package hostinfo

func machineGUID() (string, bool) { return "", false }

func serialNumber() (string, bool) { return "", false }

func rmmDeviceID() (string, bool) { return "", false }
