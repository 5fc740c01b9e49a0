package stride

// State represents the current state of a Tracker.
type State int32

const (
	// StateIdle indicates the Tracker is not accumulating distance. Fixes
	// delivered while idle only ever establish a baseline.
	StateIdle State = iota

	// StateTracking indicates a location subscription is active and
	// accepted fixes add to the running total.
	StateTracking
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTracking:
		return "tracking"
	default:
		return "unknown"
	}
}
