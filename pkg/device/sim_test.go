package device

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimPotClamping(t *testing.T) {
	testCases := []struct {
		name string
		set  int
		want int
	}{
		{"in range", 42, 42},
		{"below", -3, 0},
		{"top", 99, 99},
		{"above", 150, 99},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewSimPot(100000)
			p.SetPosition(tc.set)
			require.Equal(t, tc.want, p.Position())
		})
	}
}

func TestSimPotIncrementSaturates(t *testing.T) {
	p := NewSimPot(100000)
	p.SetPosition(MaxPosition - 1)
	p.Increment()
	require.Equal(t, MaxPosition, p.Position())
	p.Increment()
	require.Equal(t, MaxPosition, p.Position())
}

func TestSimPotCalibrate(t *testing.T) {
	p := NewSimPot(100000)
	p.SetPosition(70)
	p.Calibrate()
	require.Equal(t, 0, p.Position())
}

func TestOhms(t *testing.T) {
	testCases := []struct {
		name    string
		maxOhms uint32
		pos     int
		want    uint32
	}{
		{"bottom", 100000, 0, 0},
		{"top", 100000, 99, 100000},
		{"middle", 100000, 49, 49495},
		{"small pot", 10000, 33, 3333},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Ohms(tc.maxOhms, tc.pos))
		})
	}
}

func TestSimSamplerTracksPosition(t *testing.T) {
	p := NewSimPot(100000)
	s := &SimSampler{Pot: p}
	require.Equal(t, 0, s.ReadRaw())
	p.SetPosition(MaxPosition)
	require.Equal(t, ADCMax, s.ReadRaw())
	p.SetPosition(49)
	require.Equal(t, 49*ADCMax/MaxPosition, s.ReadRaw())
}
