package transport

import (
	"context"
	"io"
	"net"

	"github.com/golang/glog"

	fx "github.com/robotalks/dyno.go/pkg/framework"
)

// Server exposes the operator protocol on a TCP listener, one
// interactive peer at a time.
type Server struct {
	// Greeting, when set, is written to every freshly attached peer.
	Greeting func(io.Writer)

	peerPort
	listener net.Listener
}

// Listen binds a TCP server port.
func Listen(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s := &Server{listener: ln}
	s.in = make(chan byte, inputDepth)
	return s, nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Run implements framework.Runnable, accepting peers until the
// context ends.
func (s *Server) Run(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, s.listener, s.serve)
}

func (s *Server) serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return err
		}
		s.attach(conn)
	}
}

func (s *Server) attach(conn net.Conn) {
	if old := s.swap(conn); old != nil {
		old.Close()
	}
	glog.V(2).Infof("peer %s attached", conn.RemoteAddr())
	if s.Greeting != nil {
		s.Greeting(conn)
	}
	go func() {
		err := feedBytes(s.in, conn)
		glog.V(2).Infof("peer %s detached: %v", conn.RemoteAddr(), err)
		s.drop(conn)
		conn.Close()
	}()
}

// Close shuts the listener and detaches any peer.
func (s *Server) Close() error {
	if conn := s.swap(nil); conn != nil {
		conn.Close()
	}
	return s.listener.Close()
}
