package search

// State is the lifecycle of one search widget
type State int

const (
	// Idle: no pending query
	Idle State = iota
	// Debouncing: a keystroke armed the timer
	Debouncing
	// Fetching: the request for the latest query is in flight
	Fetching
	// Resolved: results for the current query are committed
	Resolved
	// Cancelled: the in-flight fetch was superseded before it completed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Debouncing:
		return "debouncing"
	case Fetching:
		return "fetching"
	case Resolved:
		return "resolved"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
