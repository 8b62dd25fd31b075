package mq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchTopic(t *testing.T) {
	testCases := []struct {
		topic   string
		pattern string
		match   bool
	}{
		{"throttle/pi1/data", "throttle/+/data", true},
		{"throttle/pi1/data", "+/+/data", true},
		{"throttle/pi1/data", "throttle/#", true},
		{"throttle/pi1/data", "#", true},
		{"throttle/pi1/data", "throttle/+/event", false},
		{"throttle/pi1", "throttle/pi1", true},
		{"throttle", "throttle/pi1", false},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.match, MatchTopic(tc.topic, tc.pattern),
			"topic %q pattern %q", tc.topic, tc.pattern)
	}
}

func TestClientOptionsFromURL(t *testing.T) {
	opts, prefix, err := ClientOptionsFromURL("mqtt://user:pw@broker:1883/dyno/?client-id=probe")
	require.NoError(t, err)
	require.Equal(t, "dyno/", prefix)
	require.Len(t, opts.Servers, 1)
	require.Equal(t, "tcp", opts.Servers[0].Scheme)
	require.Equal(t, "broker:1883", opts.Servers[0].Host)
	require.Equal(t, "user", opts.Username)
	require.Equal(t, "pw", opts.Password)
	require.Equal(t, "probe", opts.ClientID)
}

func TestClientOptionsKeepWebsocketScheme(t *testing.T) {
	opts, prefix, err := ClientOptionsFromURL("ws://broker:9001/dyno/")
	require.NoError(t, err)
	require.Equal(t, "dyno/", prefix)
	require.Equal(t, "ws", opts.Servers[0].Scheme)
}

func TestClientOptionsBadURL(t *testing.T) {
	_, _, err := ClientOptionsFromURL("mqtt://bro ker/")
	require.Error(t, err)
}

func TestQueueRoute(t *testing.T) {
	q, err := NewQueueFromURL("mqtt://localhost:1883/dyno/")
	require.NoError(t, err)

	var got []string
	q.Sub("throttle/+/data", func(topic string, payload []byte) {
		got = append(got, topic+"="+string(payload))
	})
	q.Sub("throttle/pi1/event", func(topic string, payload []byte) {
		got = append(got, "event:"+string(payload))
	})

	q.route("dyno/throttle/pi1/data", []byte("a"))
	q.route("dyno/throttle/pi2/data", []byte("b"))
	q.route("dyno/throttle/pi1/event", []byte("c"))
	q.route("other/throttle/pi1/data", []byte("d"))
	q.route("dyno/throttle/pi1/meta", []byte("e"))

	require.Equal(t, []string{
		"throttle/pi1/data=a",
		"throttle/pi2/data=b",
		"event:c",
	}, got)
}

func TestSubscriptionClose(t *testing.T) {
	q, err := NewQueueFromURL("mqtt://localhost:1883/dyno/")
	require.NoError(t, err)

	var hits int
	sub := q.Sub("throttle/pi1/cmd", func(string, []byte) { hits++ })
	q.route("dyno/throttle/pi1/cmd", nil)
	_ = sub.Close()
	q.route("dyno/throttle/pi1/cmd", nil)
	require.Equal(t, 1, hits)
}
