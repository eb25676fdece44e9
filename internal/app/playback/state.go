// Package playback provides the playback session controller.
package playback

// State represents the session run state.
type State int

const (
	StateIdle       State = iota // Not started
	StateFetching                // Asking the track source for a track
	StateEmpty                   // Track source had nothing for the selection
	StatePlaying                 // A player process is running
	StateStopping                // Shutting down the current player
	StateTerminated              // Session has ended (absorbing)
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateEmpty:
		return "empty"
	case StatePlaying:
		return "playing"
	case StateStopping:
		return "stopping"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
