package mq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandLines(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		lines   []string
	}{
		{name: "single line", payload: "t 50 1000\n", lines: []string{"t 50 1000\n"}},
		{name: "unterminated", payload: "q", lines: []string{"q\n"}},
		{name: "script", payload: "r\nw 100\nt 0 null\n", lines: []string{"r\n", "w 100\n", "t 0 null\n"}},
		{name: "crlf", payload: "t 1 null\r\nr\r\n", lines: []string{"t 1 null\n", "r\n"}},
		{name: "blank only", payload: "\r\n\n", lines: nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.lines, commandLines([]byte(tc.payload)))
		})
	}
}
