package throttle

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robotalks/dyno.go/pkg/device"
	"github.com/robotalks/dyno.go/pkg/wire"
)

// Command is a parsed, validated operator intent.
type Command interface {
	command()
}

// RampTo moves the wiper to a target position in unit steps paced to
// span a total duration.
type RampTo struct {
	Target   int
	Duration time.Duration
}

// SetTo moves the wiper to a target position at once.
type SetTo struct {
	Target int
}

// StepBy moves the wiper relative to its current position.
type StepBy struct {
	Delta int
}

// Wait holds command sequencing for a duration.
type Wait struct {
	Duration time.Duration
}

// Report forces a telemetry report out of cadence.
type Report struct{}

// Reset drives the wiper home and reconstructs the application state.
// It is also the only command the override path honors.
type Reset struct{}

func (RampTo) command() {}
func (SetTo) command()  {}
func (StepBy) command() {}
func (Wait) command()   {}
func (Report) command() {}
func (Reset) command()  {}

// Reject is the operator-visible refusal of a command line. The
// reason is written verbatim to the output.
type Reject struct {
	Reason string
}

// Error implements error.
func (r Reject) Error() string { return r.Reason }

// Rejection reasons, formatted the way the console prints them.
const (
	reasonUnknown  = "  Unknown command type"
	reasonThrottle = "  Throttle out of bounds"
	reasonTime     = "  Time out of bounds"
)

func rejectBadArg(letter byte) Reject {
	return Reject{Reason: fmt.Sprintf("  Bad argument for command '%c'", letter)}
}

// nullWord marks an absent optional argument spelled out by the
// operator.
const nullWord = "null"

// ParseCommand parses one command line into a Command. Lines are
// case-insensitive; the leading letter of the first word picks the
// command, mirroring the console grammar. Argument validation is
// strict: a malformed number is a rejection, not a zero.
func ParseCommand(line string) (Command, error) {
	var tok wire.Tokenizer
	tok.Reset(strings.ToLower(line))
	word, ok := tok.Next()
	if !ok {
		return nil, Reject{Reason: reasonUnknown}
	}
	switch word[0] {
	case 't':
		return parseRamp(&tok)
	case 's':
		return parseStep(&tok)
	case 'w':
		return parseWait(&tok)
	case 'r':
		return Report{}, nil
	case 'q':
		return Reset{}, nil
	default:
		return nil, Reject{Reason: reasonUnknown}
	}
}

func parseRamp(tok *wire.Tokenizer) (Command, error) {
	arg, ok := tok.Next()
	if !ok {
		return nil, rejectBadArg('t')
	}
	target, err := strconv.Atoi(arg)
	if err != nil {
		return nil, rejectBadArg('t')
	}
	if target < 0 || target > device.MaxPosition {
		return nil, Reject{Reason: reasonThrottle}
	}
	arg, ok = tok.Next()
	if !ok || arg == nullWord {
		return SetTo{Target: target}, nil
	}
	ms, err := strconv.Atoi(arg)
	if err != nil {
		return nil, rejectBadArg('t')
	}
	if ms <= 0 {
		return nil, Reject{Reason: reasonTime}
	}
	return RampTo{Target: target, Duration: time.Duration(ms) * time.Millisecond}, nil
}

func parseStep(tok *wire.Tokenizer) (Command, error) {
	arg, ok := tok.Next()
	if !ok {
		return nil, rejectBadArg('s')
	}
	delta, err := strconv.Atoi(arg)
	if err != nil {
		return nil, rejectBadArg('s')
	}
	return StepBy{Delta: delta}, nil
}

func parseWait(tok *wire.Tokenizer) (Command, error) {
	arg, ok := tok.Next()
	if !ok {
		return nil, rejectBadArg('w')
	}
	ms, err := strconv.Atoi(arg)
	if err != nil {
		return nil, rejectBadArg('w')
	}
	if ms <= 0 {
		return nil, Reject{Reason: reasonTime}
	}
	return Wait{Duration: time.Duration(ms) * time.Millisecond}, nil
}
