package picker

// State is the lifecycle phase of a pick session.
type State int

const (
	// StateIdle means no display resources are held yet.
	StateIdle State = iota
	// StateGrabbed means the pointer grab is held.
	StateGrabbed
	// StateAwaitingInput means the session is blocked waiting for a click.
	StateAwaitingInput
	// StateCaptured means a click position has been received.
	StateCaptured
	// StateReleased means every display resource has been given back.
	StateReleased
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGrabbed:
		return "grabbed"
	case StateAwaitingInput:
		return "awaiting-input"
	case StateCaptured:
		return "captured"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}
