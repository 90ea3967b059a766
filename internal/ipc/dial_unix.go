//go:build !windows

package ipc

func dialTarget() (network, addr string, err error) {
	path, err := SocketPath()
	if err != nil {
		return "", "", err
	}
	return "unix", path, nil
}
