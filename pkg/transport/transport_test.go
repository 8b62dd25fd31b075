package transport

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLine(&buf, "R"))
	require.Equal(t, "R\n", buf.String())
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	_, err := Open("ftp://host:1")
	require.Error(t, err)
}

func TestOpenRejectsBadBaud(t *testing.T) {
	_, err := Open("serial:///dev/ttyUSB0?baud=fast")
	require.Error(t, err)
}

func TestDialRejectsUnknownScheme(t *testing.T) {
	_, err := Dial("gopher://host:1")
	require.Error(t, err)
}

func TestServerWriteWithoutPeer(t *testing.T) {
	s, err := Listen("127.0.0.1:0")
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Write([]byte("D1.00,1,1,1\n"))
	require.NoError(t, err)
	require.Equal(t, 12, n)
}

func TestServerPeerExchange(t *testing.T) {
	s, err := Listen("127.0.0.1:0")
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	conn, err := net.Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("r\n"))
	require.NoError(t, err)

	var got []byte
	require.Eventually(t, func() bool {
		for {
			b, ok := s.ReadByte()
			if !ok {
				return false
			}
			got = append(got, b)
			if b == '\n' {
				return true
			}
		}
	}, time.Second, time.Millisecond)
	require.Equal(t, "r\n", string(got))

	_, err = s.Write([]byte("E\n"))
	require.NoError(t, err)
	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "E\n", line)
}

func TestServerGreeting(t *testing.T) {
	s, err := Listen("127.0.0.1:0")
	require.NoError(t, err)
	defer s.Close()
	s.Greeting = func(w io.Writer) {
		WriteLine(w, "Throttle Mapper Ver. test")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	conn, err := net.Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "Throttle Mapper Ver. test\n", line)
}
