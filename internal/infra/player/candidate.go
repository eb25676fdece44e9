// Package player launches and stops the external audio player process.
package player

import (
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radio/internal/infra/config"
)

// Kind identifies a supported player executable.
type Kind string

const (
	KindMPV    Kind = "mpv"
	KindFFPlay Kind = "ffplay"
)

// CandidateSettings holds per-candidate settings decoded from the config.
type CandidateSettings struct {
	Path      string   `yaml:"path" mapstructure:"path"`
	ExtraArgs []string `yaml:"extra_args" mapstructure:"extra_args" validate:"dive,required"`
}

// Candidate is a player executable the launcher may use.
type Candidate struct {
	Kind       Kind
	Executable string   // Name looked up on PATH, or an explicit path
	ExtraArgs  []string // Appended before the media URL
}

// DefaultCandidates returns mpv then ffplay, the built-in priority order.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Kind: KindMPV, Executable: string(KindMPV)},
		{Kind: KindFFPlay, Executable: string(KindFFPlay)},
	}
}

// Args returns the command-line arguments for playing url headless, quietly,
// and exiting at end of stream.
func (c Candidate) Args(url string) []string {
	var args []string
	switch c.Kind {
	case KindMPV:
		args = []string{"--no-video", "--really-quiet"}
	case KindFFPlay:
		args = []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}
	}
	args = append(args, c.ExtraArgs...)
	return append(args, url)
}

// NewCandidate builds a candidate from its type name and raw settings.
func NewCandidate(kind string, settings map[string]any) (Candidate, error) {
	k := Kind(kind)
	if k != KindMPV && k != KindFFPlay {
		return Candidate{}, errors.Newf("unsupported player type: %s (must be mpv or ffplay)", kind)
	}

	var cs CandidateSettings
	if err := mapstructure.Decode(settings, &cs); err != nil {
		return Candidate{}, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&cs); err != nil {
		return Candidate{}, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(cs); err != nil {
		return Candidate{}, errors.Wrap(err, "validation failed")
	}

	executable := cs.Path
	if executable == "" {
		executable = string(k)
	}

	return Candidate{Kind: k, Executable: executable, ExtraArgs: cs.ExtraArgs}, nil
}

// NewCandidatesFromConfig creates the ordered candidate list from configuration.
// An empty player list falls back to DefaultCandidates.
func NewCandidatesFromConfig(cfg *config.Config) ([]Candidate, error) {
	if len(cfg.Players) == 0 {
		return DefaultCandidates(), nil
	}

	candidates := make([]Candidate, 0, len(cfg.Players))
	for i, pcfg := range cfg.Players {
		c, err := NewCandidate(pcfg.Type, pcfg.Settings)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create player (index %d, type %s)", i, pcfg.Type)
		}
		zlog.Debug().Msgf("registered player candidate: index=%d type=%s executable=%s", i+1, c.Kind, c.Executable)
		candidates = append(candidates, c)
	}
	return candidates, nil
}
