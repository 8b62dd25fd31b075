// Package transport carries the operator protocol over serial lines,
// TCP streams and websockets behind one byte-oriented Port.
//
// The daemon side opens a Port from a URL; network ports double as
// background runners accepting one interactive peer at a time. Peers
// dial the same URL form from the client side.
package transport

import (
	"fmt"
	"io"
	"net"
	"net/url"
	"strconv"
	"sync"

	"golang.org/x/net/websocket"
)

// DefaultBaud is the serial line rate used when the URL does not
// spell one.
const DefaultBaud = 115200

// inputDepth buffers pending input bytes. The control loop drains one
// byte per tick, so bursts such as pasted scripts queue up here.
const inputDepth = 4096

// Port is a non-blocking byte link to the operator.
type Port interface {
	io.Writer
	// ReadByte returns the next pending input byte, or ok false when
	// nothing is pending. It never blocks.
	ReadByte() (byte, bool)
	Close() error
}

// WriteLine writes text to w followed by the line terminator.
func WriteLine(w io.Writer, text string) error {
	_, err := io.WriteString(w, text+"\n")
	return err
}

// Open builds the daemon-side Port from a URL.
//
// Supported forms:
//
//	serial:///dev/ttyUSB0?baud=115200
//	tcp://:9550
//	ws://:9551/throttle
//
// Network ports implement framework.Runnable and must be started on
// the loop to accept peers.
func Open(rawURL string) (Port, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "serial":
		baud := DefaultBaud
		if v := u.Query().Get("baud"); v != "" {
			if baud, err = strconv.Atoi(v); err != nil {
				return nil, fmt.Errorf("bad baud %q", v)
			}
		}
		return OpenSerial(u.Path, baud)
	case "tcp":
		return Listen(u.Host)
	case "ws":
		path := u.Path
		if path == "" {
			path = "/"
		}
		return ListenWS(u.Host, path)
	default:
		return nil, fmt.Errorf("unsupported transport scheme %q", u.Scheme)
	}
}

// Dial connects to a controller endpoint as a peer. Serial URLs open
// the device directly; network URLs dial the corresponding server.
func Dial(rawURL string) (io.ReadWriteCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "serial":
		baud := DefaultBaud
		if v := u.Query().Get("baud"); v != "" {
			if baud, err = strconv.Atoi(v); err != nil {
				return nil, fmt.Errorf("bad baud %q", v)
			}
		}
		return openSerialDevice(u.Path, baud)
	case "tcp":
		return net.Dial("tcp", u.Host)
	case "ws":
		path := u.Path
		if path == "" {
			path = "/"
		}
		return websocket.Dial("ws://"+u.Host+path, "", "http://localhost/")
	default:
		return nil, fmt.Errorf("unsupported transport scheme %q", u.Scheme)
	}
}

// feedBytes drains r into ch until the reader fails, returning the
// read error. It never closes ch.
func feedBytes(ch chan<- byte, r io.Reader) error {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			ch <- b
		}
		if err != nil {
			return err
		}
	}
}

// takeByte performs a non-blocking receive.
func takeByte(ch <-chan byte) (byte, bool) {
	select {
	case b, ok := <-ch:
		if !ok {
			return 0, false
		}
		return b, true
	default:
		return 0, false
	}
}

// peerPort holds the single active peer of a network server. Writes
// while no peer is attached are dropped; a new peer replaces the
// previous one.
type peerPort struct {
	in chan byte

	lock sync.Mutex
	conn io.ReadWriteCloser
}

func (p *peerPort) swap(conn io.ReadWriteCloser) io.ReadWriteCloser {
	p.lock.Lock()
	old := p.conn
	p.conn = conn
	p.lock.Unlock()
	return old
}

// drop detaches conn if it is still the active peer.
func (p *peerPort) drop(conn io.ReadWriteCloser) {
	p.lock.Lock()
	if p.conn == conn {
		p.conn = nil
	}
	p.lock.Unlock()
}

func (p *peerPort) Write(b []byte) (int, error) {
	p.lock.Lock()
	conn := p.conn
	p.lock.Unlock()
	if conn == nil {
		return len(b), nil
	}
	return conn.Write(b)
}

func (p *peerPort) ReadByte() (byte, bool) {
	return takeByte(p.in)
}
