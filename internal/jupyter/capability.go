package jupyter

// Capability is the detection state of an optional server-side feature.
// It starts Unknown and settles once a probe has seen a definitive
// response from the server.
type Capability int

const (
	// CapabilityUnknown means no probe has reached the server yet.
	CapabilityUnknown Capability = iota
	// CapabilityAvailable means the feature answered a probe.
	CapabilityAvailable
	// CapabilityUnavailable means the server answered but the feature
	// is not installed.
	CapabilityUnavailable
)

func (c Capability) String() string {
	switch c {
	case CapabilityAvailable:
		return "available"
	case CapabilityUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}
