package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var baseTime time.Time

type byteFeed struct {
	data []byte
}

func feed(s string) *byteFeed {
	return &byteFeed{data: []byte(s)}
}

func (f *byteFeed) ReadByte() (byte, bool) {
	if len(f.data) == 0 {
		return 0, false
	}
	b := f.data[0]
	f.data = f.data[1:]
	return b, true
}

// drive polls one byte at a time, the way the control loop does,
// until a line completes or the feed runs dry.
func (f *byteFeed) drive(a *Assembler, now time.Time) (string, bool) {
	for len(f.data) > 0 {
		if line, ok := a.Poll(now, f); ok {
			return line, true
		}
	}
	return "", false
}

func TestAssemblerSingleBytePerPoll(t *testing.T) {
	a := NewAssembler(32, time.Second)
	src := feed("ab\n")

	_, ok := a.Poll(baseTime, src)
	require.False(t, ok)
	require.Equal(t, 1, a.Pending())

	_, ok = a.Poll(baseTime, src)
	require.False(t, ok)
	require.Equal(t, 2, a.Pending())

	line, ok := a.Poll(baseTime, src)
	require.True(t, ok)
	require.Equal(t, "ab\n", line)
	require.Equal(t, 0, a.Pending())
}

func TestAssemblerLine(t *testing.T) {
	a := NewAssembler(32, time.Second)
	line, ok := feed("t 50 1000\n").drive(a, baseTime)
	require.True(t, ok)
	require.Equal(t, "t 50 1000\n", line)
}

func TestAssemblerNormalizesCarriageReturn(t *testing.T) {
	a := NewAssembler(32, time.Second)
	line, ok := feed("s 5\r").drive(a, baseTime)
	require.True(t, ok)
	require.Equal(t, "s 5\n", line)
}

func TestAssemblerEmptyLine(t *testing.T) {
	a := NewAssembler(32, time.Second)
	line, ok := feed("\n").drive(a, baseTime)
	require.True(t, ok)
	require.Equal(t, "\n", line)
}

func TestAssemblerDeliversLinesInOrder(t *testing.T) {
	a := NewAssembler(32, time.Second)
	src := feed("r\nw 100\n")

	line, ok := src.drive(a, baseTime)
	require.True(t, ok)
	require.Equal(t, "r\n", line)

	line, ok = src.drive(a, baseTime)
	require.True(t, ok)
	require.Equal(t, "w 100\n", line)

	_, ok = src.drive(a, baseTime)
	require.False(t, ok)
}

func TestAssemblerAccumulatesAcrossPolls(t *testing.T) {
	a := NewAssembler(32, time.Second)
	_, ok := feed("t 5").drive(a, baseTime)
	require.False(t, ok)
	require.Equal(t, 3, a.Pending())

	line, ok := feed("0\n").drive(a, baseTime.Add(10*time.Millisecond))
	require.True(t, ok)
	require.Equal(t, "t 50\n", line)
}

func TestAssemblerLineAtCapacity(t *testing.T) {
	a := NewAssembler(4, time.Second)
	line, ok := feed("abcd\n").drive(a, baseTime)
	require.True(t, ok)
	require.Equal(t, "abcd\n", line)
}

func TestAssemblerOverflowDropsLine(t *testing.T) {
	a := NewAssembler(8, time.Second)
	_, ok := feed("0123456789abcdef").drive(a, baseTime)
	require.False(t, ok)

	// the over-long line never completes, not even its tail
	_, ok = feed("tail\n").drive(a, baseTime)
	require.False(t, ok)

	// the next line parses normally
	line, ok := feed("s 1\n").drive(a, baseTime)
	require.True(t, ok)
	require.Equal(t, "s 1\n", line)
}

func TestAssemblerInactivityAbandonsPartial(t *testing.T) {
	a := NewAssembler(32, time.Second)
	_, ok := feed("t 5").drive(a, baseTime)
	require.False(t, ok)
	require.Equal(t, 3, a.Pending())

	line, ok := feed("0\n").drive(a, baseTime.Add(2*time.Second))
	require.True(t, ok)
	require.Equal(t, "0\n", line)
}
