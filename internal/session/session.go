// Package session drives a game.Engine: it routes front-end inputs, lets the
// AutoPilot steer, and owns the tick cadence for channel-based front ends.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Garsondee/Snake-Sense/internal/game"
)

// Input is a front-end signal, already decoded from keys or messages.
type Input int

const (
	InputNone Input = iota
	InputUp
	InputDown
	InputLeft
	InputRight
	InputReset
	InputToggleAutoPilot
	InputPause
	InputQuit
)

func (i Input) String() string {
	switch i {
	case InputUp:
		return "up"
	case InputDown:
		return "down"
	case InputLeft:
		return "left"
	case InputRight:
		return "right"
	case InputReset:
		return "reset"
	case InputToggleAutoPilot:
		return "autopilot"
	case InputPause:
		return "pause"
	case InputQuit:
		return "quit"
	default:
		return "none"
	}
}

// Direction maps the four directional inputs onto engine headings.
func (i Input) Direction() (game.Direction, bool) {
	switch i {
	case InputUp:
		return game.Up, true
	case InputDown:
		return game.Down, true
	case InputLeft:
		return game.Left, true
	case InputRight:
		return game.Right, true
	}
	return game.Up, false
}

// InputFor returns the directional input for d.
func InputFor(d game.Direction) Input {
	switch d {
	case game.Up:
		return InputUp
	case game.Down:
		return InputDown
	case game.Left:
		return InputLeft
	case game.Right:
		return InputRight
	}
	return InputNone
}

// Geometry reports the board to use for the next reset.
type Geometry func() (rows, cols int, err error)

// Option configures a Session.
type Option func(*Session)

// WithAutoPilot starts the session with the pilot in control.
func WithAutoPilot(on bool) Option {
	return func(s *Session) { s.auto = on }
}

// WithGeometry recomputes the board on every reset, e.g. from the window size.
func WithGeometry(g Geometry) Option {
	return func(s *Session) { s.geometry = g }
}

// Session couples an engine with the controls every front end shares.
// Like the engine it is owned by a single goroutine.
type Session struct {
	engine   *game.Engine
	pilot    game.AutoPilot
	auto     bool
	paused   bool
	geometry Geometry
}

// New wraps an engine that has already started its first session.
func New(e *game.Engine, opts ...Option) *Session {
	s := &Session{engine: e}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Apply routes one input. Directional inputs are ignored while the pilot
// steers. Only Reset can fail. Quit is left to the caller.
func (s *Session) Apply(in Input) error {
	if d, ok := in.Direction(); ok {
		if !s.auto {
			s.engine.RequestDirection(d)
		}
		return nil
	}
	switch in {
	case InputReset:
		return s.Reset()
	case InputToggleAutoPilot:
		s.auto = !s.auto
		s.note("autopilot", onOff(s.auto))
	case InputPause:
		s.paused = !s.paused
		s.note("pause", onOff(s.paused))
	}
	return nil
}

// Reset starts a new engine session, re-deriving the board when a Geometry
// was configured. Pause is cleared; the autopilot setting survives.
func (s *Session) Reset() error {
	rows, cols := s.engine.Rows(), s.engine.Cols()
	if s.geometry != nil {
		r, c, err := s.geometry()
		if err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		rows, cols = r, c
	}
	s.paused = false
	return s.engine.Reset(rows, cols)
}

// Step performs one cadence step: the pilot steers if enabled, then the
// engine ticks. Nothing happens while paused.
func (s *Session) Step() (game.TickResult, error) {
	if s.paused {
		return game.TickResult{Tick: s.engine.CurrentTick()}, nil
	}
	if s.auto {
		if d, ok := s.pilot.Next(s.engine.Snapshot()); ok {
			s.engine.RequestDirection(d)
		}
	}
	return s.engine.Tick()
}

// Run drives the session from a channel of inputs and a ticker of the given
// interval, publishing a snapshot after every change. The ticker is stopped
// while the game is over and restarted by a reset. Run returns nil on
// InputQuit or when inputs is closed, and ctx.Err() on cancellation.
func (s *Session) Run(ctx context.Context, interval time.Duration, inputs <-chan Input, publish func(game.Snapshot)) error {
	if interval <= 0 {
		return fmt.Errorf("run: tick interval %s must be positive", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	ticking := true

	publish(s.Snapshot())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case in, ok := <-inputs:
			if !ok || in == InputQuit {
				return nil
			}
			if err := s.Apply(in); err != nil && !errors.Is(err, game.ErrGridFull) {
				return err
			}
			if in == InputReset && !ticking && !s.engine.Over() {
				ticker.Reset(interval)
				ticking = true
			}
			publish(s.Snapshot())

		case <-ticker.C:
			if _, err := s.Step(); err != nil && !errors.Is(err, game.ErrGridFull) {
				return err
			}
			publish(s.Snapshot())
			if s.engine.Over() {
				ticker.Stop()
				ticking = false
			}
		}
	}
}

func (s *Session) note(key, value string) {
	if sl := s.engine.SimLog(); sl != nil {
		sl.Add(s.engine.CurrentTick(), "pilot", "session", key, value, 0)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// --- Accessors ---

func (s *Session) Engine() *game.Engine { return s.engine }
func (s *Session) Snapshot() game.Snapshot { return s.engine.Snapshot() }
func (s *Session) AutoPilot() bool { return s.auto }
func (s *Session) Paused() bool { return s.paused }
func (s *Session) Plan() []game.Cell { return s.pilot.Plan(s.engine.Snapshot()) }
