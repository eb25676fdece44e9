// Package source provides the Track Source: one filtered track per request.
package source

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radio/internal/domain/selection"
	"github.com/osa030/radio/internal/domain/track"
	"github.com/osa030/radio/internal/infra/radiooooo"
)

// CatalogueClient defines the catalogue operation needed by the source.
type CatalogueClient interface {
	Play(ctx context.Context, req radiooooo.PlayRequest) (*radiooooo.PlayResponse, error)
}

// Source fetches tracks from the remote catalogue.
type Source struct {
	client CatalogueClient
}

// New creates a new Source.
func New(client CatalogueClient) *Source {
	return &Source{client: client}
}

// FetchTrack asks the catalogue for one track matching sel.
// Returns (nil, nil) when no track exists for the constraints; that is an
// expected outcome, not an error. Any other failure is returned wrapped.
func (s *Source) FetchTrack(ctx context.Context, sel selection.Selection) (*track.Track, error) {
	resp, err := s.client.Play(ctx, BuildRequest(sel))
	if err != nil {
		if errors.Is(err, radiooooo.ErrNoTrack) {
			zlog.Debug().Msgf("no track for selection: country=%s decades=%v", sel.CountryCode, sel.Decades)
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to fetch track")
	}

	t := resp.ToTrack()
	zlog.Debug().Msgf("fetched track: artist=%s title=%s country=%s year=%d playable=%t",
		t.Artist, t.Title, t.CountryCode, t.Year, t.Playable())
	return t, nil
}

// BuildRequest encodes a selection as a play request body.
func BuildRequest(sel selection.Selection) radiooooo.PlayRequest {
	isoCodes := []string{}
	if sel.HasCountry() {
		isoCodes = []string{sel.CountryCode}
	}

	decades := []int{}
	if len(sel.Decades) > 0 {
		decades = append(decades, sel.Decades...)
	}

	moods := sel.MoodsOrAll()
	moodNames := make([]string, len(moods))
	for i, m := range moods {
		moodNames[i] = string(m)
	}

	return radiooooo.PlayRequest{
		Mode:     radiooooo.ModeExplore,
		IsoCodes: isoCodes,
		Decades:  decades,
		Moods:    moodNames,
	}
}
