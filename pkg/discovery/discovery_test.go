package discovery

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/dyno.go/pkg/throttle"
)

func TestAnnouncerTXT(t *testing.T) {
	a := NewAnnouncer(
		throttle.DeviceRef{Type: "throttle", ID: "pi1"},
		9550,
		throttle.Meta{Version: "0.72", Session: "s-1"},
	)
	require.Equal(t, []string{
		"type=throttle",
		"id=pi1",
		"ver=0.72",
		"session=s-1",
	}, a.txt())
}

func TestInstanceFrom(t *testing.T) {
	in, ok := instanceFrom("pi1.local.", 9550,
		[]string{"type=throttle", "id=pi1", "ver=0.72"},
		[]string{"192.168.7.2"})
	require.True(t, ok)
	require.Equal(t, throttle.DeviceRef{Type: "throttle", ID: "pi1"}, in.Ref)
	require.Equal(t, "0.72", in.Version)
	require.Equal(t, "tcp://192.168.7.2:9550", in.URL())
}

func TestInstanceFromIgnoresForeign(t *testing.T) {
	_, ok := instanceFrom("other.local.", 80, []string{"txtvers=1"}, nil)
	require.False(t, ok)
}

func TestInstanceURLFallsBackToHost(t *testing.T) {
	in, ok := instanceFrom("pi1.local.", 9550,
		[]string{"type=throttle", "id=pi1"}, nil)
	require.True(t, ok)
	require.Equal(t, "tcp://pi1.local.:9550", in.URL())
}
