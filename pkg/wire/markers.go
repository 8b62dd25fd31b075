package wire

// Protocol markers, each written on a line of its own except
// MarkerData, which prefixes a report line.
const (
	// MarkerReceived acknowledges a command line consumed for execution.
	MarkerReceived byte = 'R'
	// MarkerEnd signals the active command sequence has concluded.
	MarkerEnd byte = 'E'
	// MarkerOverride signals a command bypassed the regular queue.
	MarkerOverride byte = 'H'
	// MarkerData prefixes a telemetry report line.
	MarkerData byte = 'D'
)
