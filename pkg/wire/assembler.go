package wire

import (
	"time"

	"github.com/robotalks/dyno.go/pkg/timer"
)

// ByteSource yields pending input bytes without blocking.
type ByteSource interface {
	// ReadByte returns the next pending byte, or ok false when no
	// input is pending.
	ReadByte() (byte, bool)
}

// Assembler accumulates raw bytes from a ByteSource into command
// lines. A line ends at a newline; carriage returns are folded into
// newlines first so CR, LF and CRLF peers all work. Input longer than
// the capacity is dropped whole: the assembler discards bytes until
// the next terminator, then resumes. A stalled partial line is
// abandoned once no byte arrives within the inactivity window.
type Assembler struct {
	buf      []byte
	discard  bool
	inactive timer.Interval
}

// NewAssembler creates an assembler for lines up to capacity bytes,
// abandoning partial input after the inactivity window.
func NewAssembler(capacity int, window time.Duration) *Assembler {
	return &Assembler{
		buf:      make([]byte, 0, capacity),
		inactive: timer.New(window),
	}
}

// Poll consumes at most one pending byte from src, pacing input to
// the poll cycle, and reports whether a line completed. The returned
// line includes the terminator, normalized to a newline. A partial
// line idle past the inactivity window is abandoned first.
func (a *Assembler) Poll(now time.Time, src ByteSource) (line string, ok bool) {
	if len(a.buf) > 0 && a.inactive.Expired(now) {
		a.buf = a.buf[:0]
	}
	b, have := src.ReadByte()
	if !have {
		return "", false
	}
	if b == '\r' {
		b = '\n'
	}
	if a.discard {
		if b == '\n' {
			a.discard = false
		}
		return "", false
	}
	a.inactive.Start(now)
	if b == '\n' {
		line = string(append(a.buf, '\n'))
		a.buf = a.buf[:0]
		return line, true
	}
	if len(a.buf) == cap(a.buf) {
		a.buf = a.buf[:0]
		a.discard = true
		return "", false
	}
	a.buf = append(a.buf, b)
	return "", false
}

// Pending returns the bytes of the incomplete line assembled so far.
func (a *Assembler) Pending() int {
	return len(a.buf)
}
