// Package preview plays one source file at a time and tracks where playback is.
//
// Position is derived by polling: the player reports time elapsed since the
// last Play call, and the transport adds the offset that Play started from.
package preview

import (
	"context"
	"fmt"

	"github.com/fremen-fi/wavmerge/internal/audio"
	"github.com/fremen-fi/wavmerge/internal/logging"
)

// State of the transport.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Player is the audio output. Exactly one file is loaded at a time.
type Player interface {
	Load(path string) error
	// Play starts the loaded file at offset seconds.
	Play(offset float64) error
	Pause()
	Stop()
	// Busy reports whether audio is still being produced.
	Busy() bool
	// Elapsed is the playback time in seconds since the last Play.
	Elapsed() float64
	Close() error
}

// DurationReader supplies the total duration of a file.
type DurationReader interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Status is a snapshot for rendering the progress slider and time label.
type Status struct {
	State    State
	Path     string
	Position float64
	Duration float64
	Ratio    float64
	Label    string
}

// Transport drives a Player through Stopped, Playing and Paused.
//
// Transport is not safe for concurrent use; the UI calls it from its main
// thread only. dragging excludes Tick while a seek is in progress.
type Transport struct {
	player    Player
	durations DurationReader

	path     string
	duration float64
	position float64
	offset   float64
	state    State

	dragging   bool
	wasPlaying bool
}

// NewTransport returns a stopped transport.
func NewTransport(player Player, durations DurationReader) *Transport {
	return &Transport{player: player, durations: durations}
}

// Start loads path and plays it from the beginning, replacing any current session.
func (t *Transport) Start(ctx context.Context, path string) error {
	duration, err := t.durations.Duration(ctx, path)
	if err != nil {
		return fmt.Errorf("cannot play %s: %w", path, err)
	}

	t.player.Stop()
	t.reset()
	t.dragging = false

	if err := t.player.Load(path); err != nil {
		return fmt.Errorf("cannot play %s: %w", path, err)
	}
	if err := t.player.Play(0); err != nil {
		return fmt.Errorf("cannot play %s: %w", path, err)
	}

	t.path = path
	t.duration = duration
	t.state = Playing
	logging.Debug("preview started", logging.String("path", path), logging.Float64("duration", duration))
	return nil
}

// Stop halts playback and rewinds to 0. The file stays loaded so the slider
// can still be dragged.
func (t *Transport) Stop() {
	if t.path == "" {
		return
	}
	t.player.Stop()
	t.reset()
}

// Close stops playback, forgets the file and releases the player.
func (t *Transport) Close() {
	t.player.Stop()
	t.reset()
	t.path = ""
	t.duration = 0
	t.dragging = false
	if err := t.player.Close(); err != nil {
		logging.Warn("closing audio output", logging.ErrorField(err))
	}
}

// BeginSeek pauses playback while the user drags the slider.
func (t *Transport) BeginSeek() {
	if t.path == "" || t.dragging {
		return
	}
	t.dragging = true
	t.wasPlaying = t.state == Playing
	t.player.Pause()
	t.state = Paused
}

// EndSeek moves playback to ratio of the duration. Playback resumes only if it
// was running when the drag began; otherwise the player is left paused at the
// new position.
func (t *Transport) EndSeek(ratio float64) error {
	if !t.dragging {
		return nil
	}
	t.dragging = false

	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	target := ratio * t.duration
	t.offset = target
	t.position = target

	if err := t.player.Load(t.path); err != nil {
		t.reset()
		return fmt.Errorf("seek failed: %w", err)
	}
	if err := t.player.Play(target); err != nil {
		t.reset()
		return fmt.Errorf("seek failed: %w", err)
	}

	if t.wasPlaying {
		t.state = Playing
	} else {
		t.player.Pause()
		t.state = Paused
	}
	return nil
}

// Tick polls the player. It runs every config.PollInterval.
func (t *Transport) Tick() {
	if t.state != Playing || t.dragging {
		return
	}
	if !t.player.Busy() {
		t.finish()
		return
	}

	elapsed := t.player.Elapsed()
	if elapsed < 0 {
		return
	}
	pos := elapsed + t.offset
	if pos > t.duration {
		t.finish()
		return
	}
	t.position = pos
}

// Dragging reports whether a seek is in progress.
func (t *Transport) Dragging() bool {
	return t.dragging
}

// State returns the current state.
func (t *Transport) State() State {
	return t.state
}

// Status returns the current position and label.
func (t *Transport) Status() Status {
	ratio := 0.0
	if t.duration > 0 {
		ratio = t.position / t.duration
	}
	return Status{
		State:    t.state,
		Path:     t.path,
		Position: t.position,
		Duration: t.duration,
		Ratio:    ratio,
		Label:    audio.FormatClock(t.position) + " / " + audio.FormatClock(t.duration),
	}
}

// Offset returns the position the current playback segment started from.
func (t *Transport) Offset() float64 {
	return t.offset
}

func (t *Transport) finish() {
	logging.Debug("preview finished", logging.String("path", t.path))
	t.player.Stop()
	t.reset()
}

func (t *Transport) reset() {
	t.state = Stopped
	t.position = 0
	t.offset = 0
}
