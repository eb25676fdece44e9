// Package track provides the Track domain entity.
package track

import (
	"strings"
	"time"
)

// Mood represents the catalogue mood of a track.
type Mood string

const (
	MoodSlow  Mood = "SLOW"
	MoodFast  Mood = "FAST"
	MoodWeird Mood = "WEIRD"
)

// AllMoods returns every mood in canonical order.
func AllMoods() []Mood {
	return []Mood{MoodSlow, MoodFast, MoodWeird}
}

// ParseMood parses a mood name case-insensitively.
func ParseMood(s string) (Mood, bool) {
	switch Mood(strings.ToUpper(strings.TrimSpace(s))) {
	case MoodSlow:
		return MoodSlow, true
	case MoodFast:
		return MoodFast, true
	case MoodWeird:
		return MoodWeird, true
	default:
		return "", false
	}
}

// Lower returns the lowercase display form of the mood.
func (m Mood) Lower() string {
	return strings.ToLower(string(m))
}

// Track represents one playable catalogue item.
// Built from a single remote response and never mutated afterwards.
type Track struct {
	Artist      string // Artist name ("Unknown" when missing)
	Title       string // Track title ("Unknown" when missing)
	Album       string // Album name (optional)
	Label       string // Record label (optional)
	Songwriter  string // Songwriter (optional)
	Year        int    // Release year (0 if unknown)
	Decade      int    // Catalogue decade, multiple of 10
	CountryCode string // 3-letter country code
	Mood        Mood   // Catalogue mood
	Length      int    // Length in seconds (0 if unknown)
	AudioURL    string // Playable stream URL (empty if unplayable)
}

// Playable reports whether the track carries an audio URL.
func (t *Track) Playable() bool {
	return t != nil && t.AudioURL != ""
}

// Duration returns the track length as a time.Duration.
func (t *Track) Duration() time.Duration {
	if t.Length <= 0 {
		return 0
	}
	return time.Duration(t.Length) * time.Second
}
