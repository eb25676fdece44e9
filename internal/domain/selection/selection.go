// Package selection provides the resolved catalogue filter entity.
package selection

import (
	"fmt"
	"strings"

	"github.com/osa030/radio/internal/domain/track"
)

// Selection holds the resolved constraints for catalogue queries.
// Built once per invocation and treated as immutable afterwards.
type Selection struct {
	CountryCode string       // Canonical country code, empty for any country
	Decades     []int        // Ordered decades, empty for any decade
	Moods       []track.Mood // Moods, empty for all moods
}

// HasCountry reports whether a country constraint is set.
func (s Selection) HasCountry() bool {
	return s.CountryCode != ""
}

// MoodsOrAll returns the selected moods, or every mood when none is selected.
func (s Selection) MoodsOrAll() []track.Mood {
	if len(s.Moods) == 0 {
		return track.AllMoods()
	}
	out := make([]track.Mood, len(s.Moods))
	copy(out, s.Moods)
	return out
}

// IsolatesMoods reports whether the mood constraint excludes at least one mood.
func (s Selection) IsolatesMoods() bool {
	if len(s.Moods) == 0 {
		return false
	}
	seen := make(map[track.Mood]bool, len(s.Moods))
	for _, m := range s.Moods {
		seen[m] = true
	}
	for _, m := range track.AllMoods() {
		if !seen[m] {
			return true
		}
	}
	return false
}

// Describe returns the human-readable filter fragments for this selection.
// nameOf maps a country code to its display name; it may be nil.
func (s Selection) Describe(nameOf func(code string) string) []string {
	var parts []string

	if s.HasCountry() {
		name := s.CountryCode
		if nameOf != nil {
			name = nameOf(s.CountryCode)
		}
		parts = append(parts, name)
	}

	if len(s.Decades) > 0 {
		decades := make([]string, len(s.Decades))
		for i, d := range s.Decades {
			decades[i] = fmt.Sprintf("%ds", d)
		}
		parts = append(parts, strings.Join(decades, ", "))
	}

	if s.IsolatesMoods() {
		moods := make([]string, len(s.Moods))
		for i, m := range s.Moods {
			moods[i] = m.Lower()
		}
		parts = append(parts, strings.Join(moods, ", "))
	}

	return parts
}
