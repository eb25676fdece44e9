package radiooooo

import (
	"strings"

	"github.com/osa030/radio/internal/domain/track"
)

const unknown = "Unknown"

// ToTrack converts a play response to a domain Track.
func (r *PlayResponse) ToTrack() *track.Track {
	if r == nil {
		return nil
	}

	artist := strings.TrimSpace(r.Artist)
	if artist == "" {
		artist = unknown
	}
	title := strings.TrimSpace(r.Title)
	if title == "" {
		title = unknown
	}

	// Unknown moods are kept verbatim (uppercased) so they can still be displayed.
	mood, ok := track.ParseMood(r.Mood)
	if !ok {
		mood = track.Mood(strings.ToUpper(strings.TrimSpace(r.Mood)))
	}

	length := int(r.Length)
	if length < 0 {
		length = 0
	}

	decade := int(r.Decade)
	decade -= decade % 10

	return &track.Track{
		Artist:      artist,
		Title:       title,
		Album:       strings.TrimSpace(r.Album),
		Label:       strings.TrimSpace(r.Label),
		Songwriter:  strings.TrimSpace(r.Songwriter),
		Year:        int(r.Year),
		Decade:      decade,
		CountryCode: r.Country,
		Mood:        mood,
		Length:      length,
		AudioURL:    r.Links.MPEG,
	}
}
