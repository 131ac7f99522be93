package game_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/colormaze/internal/core"
	"github.com/vovakirdan/colormaze/internal/game"
	"github.com/vovakirdan/colormaze/internal/maze"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// toggleMaze is ColorA ColorA Neutral ColorB ColorB ColorB(exit).
func toggleMaze() *maze.Map {
	return maze.FromPaths([][]core.Action{{
		core.ActionRight, core.ActionRight, core.ActionToggle,
		core.ActionRight, core.ActionRight, core.ActionRight,
	}})
}

// play applies each action one operation interval apart, updating after
// every move, and returns the final ending.
func play(t *testing.T, s *game.State, m *maze.Map, actions ...core.Action) game.Ending {
	t.Helper()
	now := t0
	ending := game.EndingRunning
	for _, a := range actions {
		now = now.Add(game.DefaultOperationInterval)
		if err := s.Move(a, now); err != nil {
			t.Fatalf("Move(%v) failed: %v", a, err)
		}
		ending = s.Update(m, now)
	}
	return ending
}

func TestNewPlacesPlayerOnStart(t *testing.T) {
	m := toggleMaze()
	s := game.New(m, t0)

	if s.Pos() != m.Start() {
		t.Errorf("Pos() = %v, expected %v", s.Pos(), m.Start())
	}
	if s.Color() != core.TileColorA {
		t.Errorf("Color() = %v, expected ColorA", s.Color())
	}
	if s.Display() != m.NDC(m.Start()) {
		t.Errorf("Display() = %v, expected %v", s.Display(), m.NDC(m.Start()))
	}
	if s.Ending() != game.EndingRunning {
		t.Errorf("Ending() = %v, expected Running", s.Ending())
	}
}

func TestToggleChangesColor(t *testing.T) {
	m := toggleMaze()
	s := game.New(m, t0)

	play(t, s, m, core.ActionRight, core.ActionRight, core.ActionToggle)

	if s.Color() != core.TileColorB {
		t.Errorf("Color() = %v, expected ColorB", s.Color())
	}
	if s.Pos() != core.Pt(2, 0) {
		t.Errorf("toggle should not move: Pos() = %v", s.Pos())
	}
}

func TestOutcomes(t *testing.T) {
	R, L, D, T := core.ActionRight, core.ActionLeft, core.ActionDown, core.ActionToggle

	tests := []struct {
		name    string
		paths   [][]core.Action
		actions []core.Action
		ending  game.Ending
		reason  game.Reason
	}{
		{
			name:    "opposite color without toggling",
			paths:   [][]core.Action{{R, R, T, R, R, R}},
			actions: []core.Action{R, R, R},
			ending:  game.EndingFailed,
			reason:  game.ReasonColorMismatch,
		},
		{
			name:    "exit with matching color",
			paths:   [][]core.Action{{R, R, T, R, R, R}},
			actions: []core.Action{R, R, T, R, R, R},
			ending:  game.EndingFinished,
			reason:  game.ReasonExitReached,
		},
		{
			name:    "straight corridor",
			paths:   [][]core.Action{{R, R, R, R, R}},
			actions: []core.Action{R, R, R, R, R},
			ending:  game.EndingFinished,
			reason:  game.ReasonExitReached,
		},
		{
			name:    "off the grid",
			paths:   [][]core.Action{{R, R}},
			actions: []core.Action{L},
			ending:  game.EndingFailed,
			reason:  game.ReasonOutOfBounds,
		},
		{
			name:    "empty tile",
			paths:   [][]core.Action{{R, R, L, L, D}},
			actions: []core.Action{R, D},
			ending:  game.EndingFailed,
			reason:  game.ReasonEmptyTile,
		},
		{
			name:    "neutral tolerates both colors",
			paths:   [][]core.Action{{R, R, T, R, R, R}},
			actions: []core.Action{R, R, T, T},
			ending:  game.EndingRunning,
			reason:  game.ReasonNone,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := maze.FromPaths(tc.paths)
			s := game.New(m, t0)

			if got := play(t, s, m, tc.actions...); got != tc.ending {
				t.Errorf("Update() = %v, expected %v", got, tc.ending)
			}
			if got := s.Snapshot().Reason; got != tc.reason {
				t.Errorf("Reason = %v, expected %v", got, tc.reason)
			}
		})
	}
}

func TestMoveRejectsUnknownAction(t *testing.T) {
	m := toggleMaze()
	s := game.New(m, t0)

	for _, a := range []core.Action{core.ActionNone, core.Action(42)} {
		err := s.Move(a, t0)
		if !errors.Is(err, game.ErrUnknownAction) {
			t.Errorf("Move(%d) error = %v, expected ErrUnknownAction", a, err)
		}
	}
	if s.Pos() != m.Start() || s.Snapshot().Moves != 0 {
		t.Error("rejected actions should not change the state")
	}
}

func TestTimeUpFinishes(t *testing.T) {
	m := toggleMaze()
	s := game.New(m, t0, game.WithMaxGameTime(time.Second))

	if got := s.Update(m, t0.Add(time.Second)); got != game.EndingRunning {
		t.Errorf("Update() at the budget = %v, expected Running", got)
	}
	if got := s.Update(m, t0.Add(time.Second+time.Millisecond)); got != game.EndingFinished {
		t.Errorf("Update() past the budget = %v, expected Finished", got)
	}
	if r := s.Snapshot().Reason; r != game.ReasonTimeUp {
		t.Errorf("Reason = %v, expected time_up", r)
	}
	if !s.Deadline().Equal(t0.Add(time.Second)) {
		t.Errorf("Deadline() = %v", s.Deadline())
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	m := toggleMaze()
	s := game.New(m, t0)

	now := t0.Add(time.Second)
	if err := s.Move(core.ActionRight, now); err != nil {
		t.Fatal(err)
	}
	now = now.Add(50 * time.Millisecond)

	e1 := s.Update(m, now)
	d1 := s.Display()
	e2 := s.Update(m, now)
	d2 := s.Display()

	if e1 != e2 || d1 != d2 {
		t.Errorf("second Update() changed state: %v/%v -> %v/%v", e1, d1, e2, d2)
	}
}

func TestEndingIsMonotonic(t *testing.T) {
	m := toggleMaze()
	s := game.New(m, t0)

	if got := play(t, s, m, core.ActionLeft); got != game.EndingFailed {
		t.Fatalf("Update() = %v, expected Failed", got)
	}
	failedAt := s.Snapshot()

	// Walking back onto the maze must not revive the game
	now := t0.Add(time.Second)
	if err := s.Move(core.ActionRight, now); err != nil {
		t.Fatalf("Move() after end returned %v", err)
	}
	for i := 0; i < 3; i++ {
		if got := s.Update(m, now.Add(time.Duration(i)*time.Minute)); got != game.EndingFailed {
			t.Errorf("Update() = %v, expected Failed", got)
		}
	}

	after := s.Snapshot()
	if after.Pos != failedAt.Pos || after.Moves != failedAt.Moves || after.Elapsed != failedAt.Elapsed {
		t.Errorf("terminal state changed: %+v -> %+v", failedAt, after)
	}
}

func TestInterpolation(t *testing.T) {
	m := toggleMaze()
	s := game.New(m, t0)
	interval := game.DefaultOperationInterval

	moveAt := t0.Add(time.Second)
	if err := s.Move(core.ActionRight, moveAt); err != nil {
		t.Fatal(err)
	}
	from := m.NDC(core.Pt(0, 0))
	to := m.NDC(core.Pt(1, 0))

	tests := []struct {
		name     string
		after    time.Duration
		expected core.Vec2
	}{
		{"same instant", 0, from},
		{"halfway", interval / 2, core.Lerp(from, to, 0.5)},
		{"interval elapsed", interval, to},
		{"snapped", interval + time.Millisecond, to},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s.Update(m, moveAt.Add(tc.after))
			if got := s.Display(); got != tc.expected {
				t.Errorf("Display() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCustomOperationInterval(t *testing.T) {
	m := toggleMaze()
	s := game.New(m, t0, game.WithOperationInterval(time.Second), game.WithOperationInterval(0))

	if err := s.Move(core.ActionRight, t0); err != nil {
		t.Fatal(err)
	}
	s.Update(m, t0.Add(500*time.Millisecond))

	expected := core.Lerp(m.NDC(core.Pt(0, 0)), m.NDC(core.Pt(1, 0)), 0.5)
	if got := s.Display(); got != expected {
		t.Errorf("Display() = %v, expected %v", got, expected)
	}
}

func TestSnapshot(t *testing.T) {
	m := toggleMaze()
	s := game.New(m, t0, game.WithMaxGameTime(10*time.Second))

	play(t, s, m, core.ActionRight, core.ActionRight)

	snap := s.Snapshot()
	if snap.Moves != 2 {
		t.Errorf("Moves = %d, expected 2", snap.Moves)
	}
	if snap.PreviousPos != core.Pt(1, 0) || snap.Pos != core.Pt(2, 0) {
		t.Errorf("positions = %v -> %v", snap.PreviousPos, snap.Pos)
	}
	if snap.Elapsed != 2*game.DefaultOperationInterval {
		t.Errorf("Elapsed = %v, expected %v", snap.Elapsed, 2*game.DefaultOperationInterval)
	}
	if snap.Remaining() != 10*time.Second-snap.Elapsed {
		t.Errorf("Remaining() = %v", snap.Remaining())
	}

	over := game.Snapshot{Elapsed: time.Minute, MaxGameTime: time.Second}
	if over.Remaining() != 0 {
		t.Errorf("Remaining() = %v, expected 0", over.Remaining())
	}
}

func TestReasonRoundTrip(t *testing.T) {
	for r := game.ReasonNone; r <= game.ReasonTimeUp; r++ {
		if got := game.ParseReason(r.String()); got != r {
			t.Errorf("ParseReason(%q) = %v, expected %v", r.String(), got, r)
		}
	}
	if game.ParseReason("bogus") != game.ReasonNone {
		t.Error("unknown reason should parse as none")
	}
}
