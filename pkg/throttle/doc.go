// Package throttle implements the throttle mapper control core: a
// polled command pipeline driving a digitally adjustable potentiometer
// that stands in for a real throttle.
//
// One Controller owns the whole poll cycle. Each iteration it samples
// the wiper, reports settle-gated telemetry, assembles and dispatches
// operator command lines, then services the high-priority override
// path. Observers receive a mirror of everything emitted on the wire.
package throttle

// Version is the protocol revision announced in the greeting banner.
const Version = "0.72"
