package ipc

import (
	"encoding/json"
	"errors"
	"net"
	"sync"

	"github.com/sitedesk/sitedesk-agent/internal/logging"
)

// Server accepts frontend connections and dispatches their commands.
// One connection may carry any number of newline-delimited requests;
// each gets exactly one response in order.
type Server struct {
	handler *Handler
	log     *logging.Logger

	mu       sync.Mutex
	listener net.Listener
	wg       sync.WaitGroup
	closed   bool
}

// NewServer creates an IPC server around the given handler.
func NewServer(handler *Handler, log *logging.Logger) *Server {
	return &Server{handler: handler, log: log}
}

// Start opens the platform listener and begins accepting connections in
// the background. It returns once the listener is bound.
func (s *Server) Start() error {
	listener, err := listen()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.log.Infof("IPC listening on %s", listener.Addr())

	s.wg.Add(1)
	go s.acceptLoop(listener)
	return nil
}

// Addr returns the bound listener address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) acceptLoop(listener net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Warnf("IPC accept failed: %v", err)
			continue
		}
		s.wg.Add(1)
		go s.serveConn(conn)
	}
}

// ServeConn handles one frontend connection. Exported so tests can feed
// an in-memory pipe straight through the dispatch path.
func (s *Server) ServeConn(conn net.Conn) {
	s.wg.Add(1)
	s.serveConn(conn)
}

func (s *Server) serveConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)
	for {
		var req Request
		if err := dec.Decode(&req); err != nil {
			return
		}
		resp := s.handler.Dispatch(&req)
		if err := enc.Encode(resp); err != nil {
			s.log.Warnf("IPC write failed: %v", err)
			return
		}
	}
}

// Stop closes the listener and waits for in-flight connections.
func (s *Server) Stop() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener.Close()
	}
	s.wg.Wait()
	cleanup()
}
