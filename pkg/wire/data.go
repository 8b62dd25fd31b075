package wire

import "fmt"

// FormatData renders one telemetry report line: the data marker, the
// sampled voltage with two decimals, the wiper position, the wiper
// resistance in ohms, and a millisecond timestamp.
func FormatData(volts float64, pos int, ohms uint32, ts uint64) string {
	return fmt.Sprintf("%c%.2f,%d,%d,%d", MarkerData, volts, pos, ohms, ts)
}
