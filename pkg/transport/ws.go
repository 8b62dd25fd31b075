package transport

import (
	"context"
	"io"
	"net"
	"net/http"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/dyno.go/pkg/framework"
)

// WSServer exposes the operator protocol on a websocket endpoint, one
// interactive peer at a time.
type WSServer struct {
	// Greeting, when set, is written to every freshly attached peer.
	Greeting func(io.Writer)

	peerPort
	listener net.Listener
	server   *http.Server
}

// ListenWS binds an HTTP listener serving websocket sessions at path.
func ListenWS(addr, path string) (*WSServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s := &WSServer{listener: ln}
	s.in = make(chan byte, inputDepth)
	mux := http.NewServeMux()
	mux.Handle(path, websocket.Handler(s.session))
	s.server = &http.Server{Handler: mux}
	return s, nil
}

// Addr returns the bound listen address.
func (s *WSServer) Addr() net.Addr {
	return s.listener.Addr()
}

// Run implements framework.Runnable, serving sessions until the
// context ends.
func (s *WSServer) Run(ctx context.Context) error {
	return fx.RunWithContextCancel(ctx, func() { s.server.Close() }, func() error {
		err := s.server.Serve(s.listener)
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
}

func (s *WSServer) session(conn *websocket.Conn) {
	if old := s.swap(conn); old != nil {
		old.Close()
	}
	remote := conn.Request().RemoteAddr
	glog.V(2).Infof("websocket peer %s attached", remote)
	if s.Greeting != nil {
		s.Greeting(conn)
	}
	err := feedBytes(s.in, conn)
	glog.V(2).Infof("websocket peer %s detached: %v", remote, err)
	s.drop(conn)
}

// Close shuts the endpoint down and detaches any peer.
func (s *WSServer) Close() error {
	if conn := s.swap(nil); conn != nil {
		conn.Close()
	}
	return s.server.Close()
}
