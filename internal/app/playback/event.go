package playback

import "github.com/osa030/radio/internal/domain/track"

// EventType represents a playback event type.
type EventType int

const (
	EventTrackStarted EventType = iota // Player started for a track
	EventTrackEnded                    // Track finished playing on its own
	EventTrackSkipped                  // User skipped the track
	EventNoTracks                      // Track source had nothing for the selection
	EventQuit                          // User quit the session
	EventInterrupted                   // External interrupt ended the session
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTrackStarted:
		return "track_started"
	case EventTrackEnded:
		return "track_ended"
	case EventTrackSkipped:
		return "track_skipped"
	case EventNoTracks:
		return "no_tracks"
	case EventQuit:
		return "quit"
	case EventInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Event represents a playback event.
type Event struct {
	Type  EventType
	Track *track.Track // Current track (nil for some events)
	State State        // Session state when the event was emitted
}
