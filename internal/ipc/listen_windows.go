//go:build windows

package ipc

import "net"

func listen() (net.Listener, error) {
	return net.Listen("tcp", WindowsLoopbackAddr)
}

func cleanup() {}
