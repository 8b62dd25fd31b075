package sh

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/robotalks/dyno.go/pkg/transport"
	"github.com/robotalks/dyno.go/pkg/wire"
)

// DefaultAckTimeout bounds the wait for a controller to acknowledge a
// sent command line.
const DefaultAckTimeout = 2 * time.Second

var errAckTimeout = errors.New("no acknowledgment from controller")
var errSessionEnded = errors.New("session ended")

// Session is a live link to a controller. A background pump streams
// everything the controller says through the print callback, so
// telemetry keeps flowing between commands.
type Session struct {
	URL string

	conn  io.ReadWriteCloser
	print func(string)
	done  chan struct{}

	lock    sync.Mutex
	waiters map[chan string]struct{}
}

// Dial opens a session over a transport URL.
func Dial(rawURL string, print func(string)) (*Session, error) {
	conn, err := transport.Dial(rawURL)
	if err != nil {
		return nil, err
	}
	return NewSession(rawURL, conn, print), nil
}

// NewSession wraps an established connection.
func NewSession(rawURL string, conn io.ReadWriteCloser, print func(string)) *Session {
	s := &Session{
		URL:     rawURL,
		conn:    conn,
		print:   print,
		done:    make(chan struct{}),
		waiters: make(map[chan string]struct{}),
	}
	go s.pump()
	return s
}

func (s *Session) pump() {
	defer close(s.done)
	sc := bufio.NewScanner(s.conn)
	for sc.Scan() {
		line := sc.Text()
		if s.print != nil {
			s.print(line)
		}
		s.lock.Lock()
		for w := range s.waiters {
			select {
			case w <- line:
			default:
			}
		}
		s.lock.Unlock()
	}
}

// Done is closed when the peer goes away.
func (s *Session) Done() <-chan struct{} { return s.done }

// Close implements io.Closer.
func (s *Session) Close() error { return s.conn.Close() }

// Send writes one command line and waits for the controller to
// acknowledge it.
func (s *Session) Send(line string) error {
	return s.SendTimeout(line, DefaultAckTimeout)
}

// SendTimeout is Send with an explicit acknowledgment wait. Telemetry
// lines arriving ahead of the acknowledgment pass through.
func (s *Session) SendTimeout(line string, timeout time.Duration) error {
	w := make(chan string, 16)
	s.lock.Lock()
	s.waiters[w] = struct{}{}
	s.lock.Unlock()
	defer func() {
		s.lock.Lock()
		delete(s.waiters, w)
		s.lock.Unlock()
	}()

	if _, err := io.WriteString(s.conn, line+"\n"); err != nil {
		return err
	}
	deadline := time.After(timeout)
	for {
		select {
		case ln := <-w:
			if acknowledges(ln) {
				return nil
			}
		case <-s.done:
			return errSessionEnded
		case <-deadline:
			return errAckTimeout
		}
	}
}

var (
	ackReceived = string(rune(wire.MarkerReceived))
	ackOverride = string(rune(wire.MarkerOverride))
)

// acknowledges reports whether a response line answers a just-sent
// command: the received or override markers, or a rejection.
func acknowledges(line string) bool {
	return line == ackReceived || line == ackOverride || strings.HasPrefix(line, "  ")
}
