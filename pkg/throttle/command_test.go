package throttle

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	testCases := []struct {
		name string
		line string
		cmd  Command
	}{
		{name: "ramp", line: "t 50 1000\n", cmd: RampTo{Target: 50, Duration: time.Second}},
		{name: "ramp upper case", line: "T 50 1000\n", cmd: RampTo{Target: 50, Duration: time.Second}},
		{name: "ramp to top", line: "t 99 200\n", cmd: RampTo{Target: 99, Duration: 200 * time.Millisecond}},
		{name: "ramp extra spaces", line: "t   7   90\n", cmd: RampTo{Target: 7, Duration: 90 * time.Millisecond}},
		{name: "set null", line: "t 50 null\n", cmd: SetTo{Target: 50}},
		{name: "set null upper case", line: "t 50 NULL\n", cmd: SetTo{Target: 50}},
		{name: "set missing duration", line: "t 50\n", cmd: SetTo{Target: 50}},
		{name: "step up", line: "s 5\n", cmd: StepBy{Delta: 5}},
		{name: "step down", line: "s -5\n", cmd: StepBy{Delta: -5}},
		{name: "wait", line: "w 500\n", cmd: Wait{Duration: 500 * time.Millisecond}},
		{name: "report", line: "r\n", cmd: Report{}},
		{name: "reset", line: "q\n", cmd: Reset{}},
		{name: "reset by first letter", line: "quit now\n", cmd: Reset{}},
		{name: "report with junk args", line: "r 123\n", cmd: Report{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := ParseCommand(tc.line)
			require.NoError(t, err)
			require.Equal(t, tc.cmd, cmd)
		})
	}
}

func TestParseCommandReject(t *testing.T) {
	testCases := []struct {
		name   string
		line   string
		reason string
	}{
		{name: "unknown letter", line: "x\n", reason: "  Unknown command type"},
		{name: "empty line", line: "\n", reason: "  Unknown command type"},
		{name: "spaces only", line: "   \n", reason: "  Unknown command type"},
		{name: "ramp target too high", line: "t 100 500\n", reason: "  Throttle out of bounds"},
		{name: "ramp target negative", line: "t -1 500\n", reason: "  Throttle out of bounds"},
		{name: "ramp zero duration", line: "t 50 0\n", reason: "  Time out of bounds"},
		{name: "ramp negative duration", line: "t 50 -100\n", reason: "  Time out of bounds"},
		{name: "ramp target not a number", line: "t abc 500\n", reason: "  Bad argument for command 't'"},
		{name: "ramp no args", line: "t\n", reason: "  Bad argument for command 't'"},
		{name: "ramp malformed number", line: "t 1-2 500\n", reason: "  Bad argument for command 't'"},
		{name: "ramp duration not a number", line: "t 50 soon\n", reason: "  Bad argument for command 't'"},
		{name: "step not a number", line: "s abc\n", reason: "  Bad argument for command 's'"},
		{name: "step no args", line: "s\n", reason: "  Bad argument for command 's'"},
		{name: "wait zero", line: "w 0\n", reason: "  Time out of bounds"},
		{name: "wait negative", line: "w -10\n", reason: "  Time out of bounds"},
		{name: "wait not a number", line: "w soon\n", reason: "  Bad argument for command 'w'"},
		{name: "wait no args", line: "w\n", reason: "  Bad argument for command 'w'"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := ParseCommand(tc.line)
			require.Nil(t, cmd)
			require.EqualError(t, err, tc.reason)
			require.IsType(t, Reject{}, err)
		})
	}
}

func TestParseCommandRangeSweep(t *testing.T) {
	for target := 0; target <= 99; target++ {
		cmd, err := ParseCommand("t " + strconv.Itoa(target) + " null\n")
		require.NoError(t, err)
		require.Equal(t, SetTo{Target: target}, cmd)
	}
}
