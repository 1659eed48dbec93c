package driver

// State describes driver lifecycle state.
type State int

const (
	// StateDisconnected describes initial state.
	StateDisconnected State = iota
	// StateConnected describes online driver.
	StateConnected
	// StateDisposed describes terminal state.
	StateDisposed
)

// String returns state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateDisposed:
		return "disposed"
	}

	return "unknown"
}
