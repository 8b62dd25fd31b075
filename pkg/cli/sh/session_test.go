package sh

import (
	"bufio"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type printRec struct {
	lock  sync.Mutex
	lines []string
}

func (r *printRec) print(line string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.lines = append(r.lines, line)
}

func (r *printRec) all() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.lines...)
}

func TestSessionSendAck(t *testing.T) {
	cli, srv := net.Pipe()
	defer srv.Close()
	rec := &printRec{}
	s := NewSession("pipe:", cli, rec.print)
	defer s.Close()

	got := make(chan string, 1)
	go func() {
		line, err := bufio.NewReader(srv).ReadString('\n')
		if err != nil {
			return
		}
		got <- line
		io.WriteString(srv, "D0.00,0,0,1\nR\n")
	}()

	require.NoError(t, s.SendTimeout("t 50 1000", time.Second))
	assert.Equal(t, "t 50 1000\n", <-got)
	// telemetry ahead of the acknowledgment still reaches the printer
	assert.Equal(t, []string{"D0.00,0,0,1", "R"}, rec.all())
}

func TestSessionRejectionAcknowledges(t *testing.T) {
	cli, srv := net.Pipe()
	defer srv.Close()
	s := NewSession("pipe:", cli, nil)
	defer s.Close()

	go func() {
		if _, err := bufio.NewReader(srv).ReadString('\n'); err != nil {
			return
		}
		io.WriteString(srv, "  Unknown command type\n")
	}()

	require.NoError(t, s.SendTimeout("x", time.Second))
}

func TestSessionAckTimeout(t *testing.T) {
	cli, srv := net.Pipe()
	defer srv.Close()
	s := NewSession("pipe:", cli, nil)
	defer s.Close()

	go io.Copy(io.Discard, srv)

	err := s.SendTimeout("r", 50*time.Millisecond)
	assert.Equal(t, errAckTimeout, err)
}

func TestSessionDoneOnPeerClose(t *testing.T) {
	cli, srv := net.Pipe()
	s := NewSession("pipe:", cli, nil)
	defer s.Close()

	srv.Close()
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("session did not end")
	}
}

func TestAcknowledges(t *testing.T) {
	for _, tc := range []struct {
		line string
		ack  bool
	}{
		{"R", true},
		{"H", true},
		{"  Unknown command type", true},
		{"  Throttle out of bounds", true},
		{"D0.00,0,0,1", false},
		{"Throttle Mapper Ver. 0.72", false},
		{"E", false},
		{"", false},
	} {
		assert.Equal(t, tc.ack, acknowledges(tc.line), "%q", tc.line)
	}
}
