package playback

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radio/internal/domain/selection"
	"github.com/osa030/radio/internal/domain/track"
)

// Errors
var (
	ErrTerminated = errors.New("session already terminated")
	ErrRunning    = errors.New("session already running")
)

// DefaultPollInterval bounds how long the controller waits before rechecking
// the player and the interrupt signal.
const DefaultPollInterval = 500 * time.Millisecond

// eventBuffer is the capacity of the event channel.
const eventBuffer = 64

// TrackSource supplies tracks for a selection.
// A nil track with a nil error means nothing matched.
type TrackSource interface {
	FetchTrack(ctx context.Context, sel selection.Selection) (*track.Track, error)
}

// Display renders session output for the user.
type Display interface {
	ShowTrack(t *track.Track)
	NoTracks()
	MissingAudio()
	Farewell()
}

// Config holds controller configuration.
type Config struct {
	PollInterval time.Duration // Upper bound on each wait for player exit or input
}

// Controller runs a playback session: fetch a track, play it, wait for the
// track to end or for the user to skip or quit, repeat.
type Controller struct {
	mu sync.RWMutex

	source   TrackSource
	launcher Launcher
	display  Display
	input    <-chan string

	state   State
	current *track.Track
	process Handle

	config  Config
	eventCh chan Event

	sessionID string
	log       zerolog.Logger
}

// NewController creates a new playback controller.
// input delivers user command lines; a nil input disables commands.
func NewController(source TrackSource, launcher Launcher, display Display, input <-chan string, config Config) *Controller {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	sessionID := uuid.New().String()
	return &Controller{
		source:    source,
		launcher:  launcher,
		display:   display,
		input:     input,
		state:     StateIdle,
		config:    config,
		eventCh:   make(chan Event, eventBuffer),
		sessionID: sessionID,
		log:       zlog.With().Str("session", sessionID).Logger(),
	}
}

// Events returns the event channel. It is closed when the session terminates.
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

// Observe calls fn for every event until the session terminates.
// The returned channel is closed once the last event has been handled.
func (c *Controller) Observe(fn func(Event)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range c.eventCh {
			fn(e)
		}
	}()
	return done
}

// SessionID returns the identifier attached to this session's log lines.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Current returns the track most recently started, or nil.
func (c *Controller) Current() *track.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Run plays tracks for sel until the user quits, the source runs dry, or ctx
// is cancelled. Quitting and interrupting are successful outcomes.
func (c *Controller) Run(ctx context.Context, sel selection.Selection) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.finish()

	c.log.Info().Msgf("session started: country=%q decades=%v moods=%v", sel.CountryCode, sel.Decades, sel.Moods)

	for {
		t, err := c.fetch(ctx, sel)
		if err != nil {
			if ctx.Err() != nil {
				return c.interrupt()
			}
			return err
		}
		if t == nil {
			c.empty()
			return nil
		}

		if !t.Playable() {
			c.missingAudio(t)
			return nil
		}
		if err := c.play(t); err != nil {
			return err
		}

		switch c.await(ctx) {
		case outcomeEnded:
			c.ended(t)
		case outcomeSkip:
			c.stopCurrent()
			c.log.Debug().Msgf("track skipped: artist=%s title=%s", t.Artist, t.Title)
			c.sendEvent(EventTrackSkipped, t)
		case outcomeQuit:
			c.setState(StateStopping)
			c.stopCurrent()
			c.sendEvent(EventQuit, t)
			c.display.Farewell()
			return nil
		case outcomeInterrupted:
			return c.interrupt()
		}
	}
}

// RunOnce plays a single track for sel and returns when it finishes.
// User input is not consulted.
func (c *Controller) RunOnce(ctx context.Context, sel selection.Selection) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.finish()

	t, err := c.fetch(ctx, sel)
	if err != nil {
		if ctx.Err() != nil {
			return c.interrupt()
		}
		return err
	}
	if t == nil {
		c.empty()
		return nil
	}

	if !t.Playable() {
		c.missingAudio(t)
		return nil
	}
	if err := c.play(t); err != nil {
		return err
	}

	select {
	case <-c.process.Done():
		c.ended(t)
		return nil
	case <-ctx.Done():
		return c.interrupt()
	}
}

func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateIdle:
		return nil
	case StateTerminated:
		return ErrTerminated
	default:
		return ErrRunning
	}
}

// finish stops any live player, marks the session terminated and closes the
// event channel.
func (c *Controller) finish() {
	c.stopCurrent()
	c.setState(StateTerminated)
	close(c.eventCh)
	c.log.Info().Msg("session terminated")
}

func (c *Controller) fetch(ctx context.Context, sel selection.Selection) (*track.Track, error) {
	c.setState(StateFetching)
	return c.source.FetchTrack(ctx, sel)
}

func (c *Controller) empty() {
	c.setState(StateEmpty)
	c.log.Info().Msg("no tracks for selection")
	c.display.NoTracks()
	c.sendEvent(EventNoTracks, nil)
}

// missingAudio ends the session cleanly when the catalogue returns a track
// without an audio link.
func (c *Controller) missingAudio(t *track.Track) {
	c.setState(StateStopping)
	c.log.Warn().Msgf("track has no audio URL: artist=%s title=%s", t.Artist, t.Title)
	c.display.ShowTrack(t)
	c.display.MissingAudio()
}

// ended records the natural end of t, including the player's exit status.
func (c *Controller) ended(t *track.Track) {
	c.mu.RLock()
	h := c.process
	c.mu.RUnlock()

	if h != nil {
		if err := h.Wait(); err != nil {
			c.log.Debug().Msgf("player exited with error: %v", err)
		}
	}
	c.log.Debug().Msgf("track ended: artist=%s title=%s", t.Artist, t.Title)
	c.sendEvent(EventTrackEnded, t)
}

func (c *Controller) interrupt() error {
	c.setState(StateStopping)
	c.stopCurrent()
	c.log.Info().Msg("session interrupted")
	c.sendEvent(EventInterrupted, c.Current())
	c.display.Farewell()
	return nil
}

// play renders t and replaces any running player with a new one for t.
func (c *Controller) play(t *track.Track) error {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()

	c.display.ShowTrack(t)
	c.stopCurrent()

	h, err := c.launcher.Start(t.AudioURL)
	if err != nil {
		return errors.Wrap(err, "failed to start player")
	}

	c.mu.Lock()
	c.process = h
	c.mu.Unlock()

	c.setState(StatePlaying)
	c.log.Info().Msgf("track started: artist=%s title=%s country=%s year=%d", t.Artist, t.Title, t.CountryCode, t.Year)
	c.sendEvent(EventTrackStarted, t)
	return nil
}

// stopCurrent stops the running player, if any.
func (c *Controller) stopCurrent() {
	c.mu.Lock()
	h := c.process
	c.process = nil
	c.mu.Unlock()

	if h == nil || !h.Alive() {
		return
	}
	if err := h.Stop(); err != nil {
		c.log.Warn().Msgf("failed to stop player: %v", err)
	}
}

type outcome int

const (
	outcomeEnded outcome = iota
	outcomeSkip
	outcomeQuit
	outcomeInterrupted
)

// await blocks until the current track ends, the user sends a command, or
// ctx is cancelled.
func (c *Controller) await(ctx context.Context) outcome {
	ticker := time.NewTicker(c.config.PollInterval)
	defer ticker.Stop()

	c.mu.RLock()
	done := c.process.Done()
	c.mu.RUnlock()

	for {
		// An exit or interrupt that is already pending wins over input.
		select {
		case <-ctx.Done():
			return outcomeInterrupted
		case <-done:
			return outcomeEnded
		default:
		}

		select {
		case <-ctx.Done():
			return outcomeInterrupted
		case <-done:
			return outcomeEnded
		case line, ok := <-c.input:
			if !ok {
				// Input closed; keep playing without commands.
				c.log.Debug().Msg("input closed")
				c.input = nil
				continue
			}
			if IsQuit(line) {
				return outcomeQuit
			}
			return outcomeSkip
		case <-ticker.C:
		}
	}
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	prev := c.state
	c.state = s
	c.mu.Unlock()

	if prev != s {
		c.log.Debug().Msgf("state changed: %s -> %s", prev, s)
	}
}

func (c *Controller) sendEvent(typ EventType, t *track.Track) {
	e := Event{Type: typ, Track: t, State: c.State()}
	select {
	case c.eventCh <- e:
	default:
		c.log.Debug().Msgf("event dropped: %s", typ)
	}
}
