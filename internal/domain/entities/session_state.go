package entities

// SessionState guards against overlapping scans. It is not a full state
// machine: anything other than Idle means a scan is in flight and new
// triggers are discarded.
type SessionState int

const (
	StateIdle SessionState = iota
	StateCapturing
	StateAnalyzing
	StateRendering
)

func (s SessionState) Busy() bool {
	return s != StateIdle
}

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateAnalyzing:
		return "analyzing"
	case StateRendering:
		return "rendering"
	default:
		return "unknown"
	}
}
