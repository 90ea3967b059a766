//go:build windows

package ipc

func dialTarget() (network, addr string, err error) {
	return "tcp", WindowsLoopbackAddr, nil
}
