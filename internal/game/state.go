// Package game holds the player state machine: discrete grid moves, the
// continuous display position interpolated between them, and win/lose
// evaluation against a maze.
//
// All methods take the current time explicitly so the state is driven by
// whatever clock the caller owns. A State is single-owner and not safe for
// concurrent use.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/colormaze/internal/core"
	"github.com/vovakirdan/colormaze/internal/maze"
)

// ErrUnknownAction is returned by Move for anything outside the five legal actions.
var ErrUnknownAction = errors.New("game: unknown action")

// Default timing.
const (
	DefaultOperationInterval = 200 * time.Millisecond
	DefaultMaxGameTime       = 60 * time.Second
)

// Ending is the phase of the game. Running is the only non-terminal value.
type Ending uint8

const (
	EndingRunning Ending = iota
	EndingFinished
	EndingFailed
)

// String returns a human-readable name for the ending.
func (e Ending) String() string {
	switch e {
	case EndingRunning:
		return "Running"
	case EndingFinished:
		return "Finished"
	case EndingFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether e is Finished or Failed.
func (e Ending) Terminal() bool {
	return e == EndingFinished || e == EndingFailed
}

// Reason records why a game ended.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonOutOfBounds
	ReasonEmptyTile
	ReasonColorMismatch
	ReasonExitReached
	ReasonTimeUp
)

// String returns a short description used in summaries and storage.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonOutOfBounds:
		return "out_of_bounds"
	case ReasonEmptyTile:
		return "empty_tile"
	case ReasonColorMismatch:
		return "color_mismatch"
	case ReasonExitReached:
		return "exit_reached"
	case ReasonTimeUp:
		return "time_up"
	default:
		return "unknown"
	}
}

// ParseReason is the inverse of Reason.String. Unknown names map to ReasonNone.
func ParseReason(s string) Reason {
	for r := ReasonNone; r <= ReasonTimeUp; r++ {
		if r.String() == s {
			return r
		}
	}
	return ReasonNone
}

// Option configures a State.
type Option func(*State)

// WithOperationInterval sets how long a move is interpolated before the
// display position snaps to the target cell. Non-positive values are ignored.
func WithOperationInterval(d time.Duration) Option {
	return func(s *State) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithMaxGameTime sets the time budget after which a running game finishes.
// Non-positive values are ignored.
func WithMaxGameTime(d time.Duration) Option {
	return func(s *State) {
		if d > 0 {
			s.maxGameTime = d
		}
	}
}

// State is the mutable player state.
type State struct {
	pos         core.Point
	previousPos core.Point
	color       core.TileState
	display     core.Vec2

	ending Ending
	reason Reason

	startTime  time.Time
	lastMove   time.Time
	lastUpdate time.Time
	endTime    time.Time
	moves      int

	interval    time.Duration
	maxGameTime time.Duration
}

// New places a player on the start cell of m with ColorA.
func New(m *maze.Map, now time.Time, opts ...Option) *State {
	s := &State{
		pos:         m.Start(),
		previousPos: m.Start(),
		color:       core.TileColorA,
		display:     m.NDC(m.Start()),
		startTime:   now,
		lastMove:    now,
		lastUpdate:  now,
		interval:    DefaultOperationInterval,
		maxGameTime: DefaultMaxGameTime,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Move applies one discrete action. Directional actions shift the position
// without any bounds check; Toggle flips the color. Moves after the game
// ended are ignored.
func (s *State) Move(a core.Action, now time.Time) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAction, a)
	}
	if s.ending.Terminal() {
		return nil
	}

	s.previousPos = s.pos
	s.lastMove = now
	s.moves++

	if a == core.ActionToggle {
		s.color = s.color.Flip()
		return nil
	}
	s.pos = s.pos.Add(core.Delta(a))
	return nil
}

// Update evaluates the position against m and recomputes the display
// position. It returns the resulting ending; once terminal, further calls
// change nothing.
func (s *State) Update(m *maze.Map, now time.Time) Ending {
	if s.ending.Terminal() {
		return s.ending
	}
	s.lastUpdate = now

	if !m.InBounds(s.pos) {
		return s.end(EndingFailed, ReasonOutOfBounds, now)
	}
	if !s.color.IsColor() {
		panic(fmt.Sprintf("game: invalid player color %v", s.color))
	}

	tile := m.TileAt(s.pos)
	if tile == core.TileEmpty {
		return s.end(EndingFailed, ReasonEmptyTile, now)
	}
	if !tile.Accepts(s.color) {
		return s.end(EndingFailed, ReasonColorMismatch, now)
	}
	if m.IsExitAt(s.pos) {
		return s.end(EndingFinished, ReasonExitReached, now)
	}
	if now.Sub(s.startTime) > s.maxGameTime {
		return s.end(EndingFinished, ReasonTimeUp, now)
	}

	since := now.Sub(s.lastMove)
	if since > s.interval {
		s.display = m.NDC(s.pos)
	} else {
		ratio := core.ClampF(float64(since)/float64(s.interval), 0, 1)
		s.display = core.Lerp(m.NDC(s.previousPos), m.NDC(s.pos), ratio)
	}
	return s.ending
}

func (s *State) end(e Ending, r Reason, now time.Time) Ending {
	s.ending = e
	s.reason = r
	s.endTime = now
	return e
}

// Ending returns the current phase.
func (s *State) Ending() Ending {
	return s.ending
}

// Pos returns the discrete grid position.
func (s *State) Pos() core.Point {
	return s.pos
}

// Color returns the player color.
func (s *State) Color() core.TileState {
	return s.color
}

// Display returns the last computed render-space position.
func (s *State) Display() core.Vec2 {
	return s.display
}

// Deadline returns the instant after which a running game times out.
func (s *State) Deadline() time.Time {
	return s.startTime.Add(s.maxGameTime)
}

// Snapshot is a read-only copy of the state.
type Snapshot struct {
	Pos         core.Point
	PreviousPos core.Point
	Color       core.TileState
	Display     core.Vec2
	Ending      Ending
	Reason      Reason
	Moves       int
	Elapsed     time.Duration // up to the last Update, or to the end
	MaxGameTime time.Duration
}

// Remaining returns the time left in the budget, never negative.
func (sn Snapshot) Remaining() time.Duration {
	return max(sn.MaxGameTime-sn.Elapsed, 0)
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	until := s.lastUpdate
	if s.ending.Terminal() {
		until = s.endTime
	}
	return Snapshot{
		Pos:         s.pos,
		PreviousPos: s.previousPos,
		Color:       s.color,
		Display:     s.display,
		Ending:      s.ending,
		Reason:      s.reason,
		Moves:       s.moves,
		Elapsed:     until.Sub(s.startTime),
		MaxGameTime: s.maxGameTime,
	}
}
