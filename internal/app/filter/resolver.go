// Package filter resolves free-form user tokens into a catalogue selection.
package filter

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radio/internal/app/directory"
	"github.com/osa030/radio/internal/domain/selection"
	"github.com/osa030/radio/internal/domain/track"
)

var (
	// ErrMultipleCountries is returned when more than one country token is given.
	ErrMultipleCountries = errors.New("multiple countries specified")
	// ErrInvalidMood is returned for a mood outside slow, fast and weird.
	ErrInvalidMood = errors.New("invalid mood")
)

// DirectoryLoader provides the country directory on demand.
type DirectoryLoader interface {
	Get(ctx context.Context) (*directory.Directory, error)
}

// Resolver builds selections from command-line tokens.
type Resolver struct {
	directories DirectoryLoader
}

// NewResolver creates a new resolver.
func NewResolver(directories DirectoryLoader) *Resolver {
	return &Resolver{directories: directories}
}

// Resolve classifies tokens into decades and at most one country, parses moods
// and returns the resulting selection.
// Decade, mood and token-count errors are reported before the directory is loaded.
func (r *Resolver) Resolve(ctx context.Context, tokens []string, moods []string) (selection.Selection, error) {
	var sel selection.Selection

	var countryToken string
	countryTokens := 0
	seenDecades := make(map[int]bool)

	for _, tok := range tokens {
		if IsDecadeToken(tok) {
			decade, err := ResolveDecade(tok)
			if err != nil {
				return selection.Selection{}, err
			}
			if !seenDecades[decade] {
				seenDecades[decade] = true
				sel.Decades = append(sel.Decades, decade)
			}
			continue
		}

		countryTokens++
		countryToken = tok
	}

	if countryTokens > 1 {
		err := errors.Mark(errors.New("multiple countries specified. Use one at a time"), ErrMultipleCountries)
		return selection.Selection{}, err
	}

	parsedMoods, err := ParseMoods(moods)
	if err != nil {
		return selection.Selection{}, err
	}
	sel.Moods = parsedMoods

	if countryTokens == 1 {
		dir, err := r.directories.Get(ctx)
		if err != nil {
			return selection.Selection{}, err
		}
		code, err := dir.Resolve(countryToken)
		if err != nil {
			return selection.Selection{}, err
		}
		sel.CountryCode = code
	}

	zlog.Debug().Msgf("resolved selection: country=%s decades=%v moods=%v", sel.CountryCode, sel.Decades, sel.Moods)
	return sel, nil
}

// ResolveSession resolves tokens like Resolve and then makes sure the country
// directory is loaded, so track cards can show country names. A directory
// failure is returned even when no country token was given.
func (r *Resolver) ResolveSession(ctx context.Context, tokens []string, moods []string) (selection.Selection, *directory.Directory, error) {
	sel, err := r.Resolve(ctx, tokens, moods)
	if err != nil {
		return selection.Selection{}, nil, err
	}
	dir, err := r.directories.Get(ctx)
	if err != nil {
		return selection.Selection{}, nil, err
	}
	return sel, dir, nil
}

// ParseMoods parses mood names, dropping duplicates while keeping order.
func ParseMoods(names []string) ([]track.Mood, error) {
	var moods []track.Mood
	seen := make(map[track.Mood]bool)
	for _, name := range names {
		m, ok := track.ParseMood(name)
		if !ok {
			err := errors.Mark(errors.Newf("invalid mood: '%s'", name), ErrInvalidMood)
			return nil, errors.WithHint(err, "Moods are slow, fast and weird")
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		moods = append(moods, m)
	}
	return moods, nil
}
