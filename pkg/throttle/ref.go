package throttle

// DeviceRef identifies a controller instance on shared
// infrastructure.
type DeviceRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Name returns the canonical Type/ID form used in topics and
// discovery.
func (r DeviceRef) Name() string {
	return r.Type + "/" + r.ID
}

// IsValid indicates the ref is properly populated.
func (r DeviceRef) IsValid() bool {
	return r.Type != "" && r.ID != ""
}

// Meta describes a controller to interested peers.
type Meta struct {
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
	Version     string            `json:"version"`
	Session     string            `json:"session"`
	// Device is the configured operator transport URL.
	Device string `json:"device,omitempty"`
}
