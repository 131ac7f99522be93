package loop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/colormaze/internal/core"
	"github.com/vovakirdan/colormaze/internal/game"
	"github.com/vovakirdan/colormaze/internal/input"
	"github.com/vovakirdan/colormaze/internal/maze"
)

const (
	R = core.ActionRight
	T = core.ActionToggle
)

// recorder is a Displayer that keeps every frame.
type recorder struct {
	mu        sync.Mutex
	inits     int
	frames    []game.Snapshot
	neverStop bool
}

func (r *recorder) Init(*maze.Map, game.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inits++
	return nil
}

func (r *recorder) Display(_ *maze.Map, snap game.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, snap)
	return nil
}

func (r *recorder) ShouldClose(snap game.Snapshot) bool {
	return !r.neverStop && snap.Ending.Terminal()
}

func pushAll(ch *input.Channel, actions ...core.Action) {
	for _, a := range actions {
		ch.Push(a)
	}
}

func TestStep(t *testing.T) {
	m := maze.FromPaths([][]core.Action{{R, R}})
	now := time.Now()
	st := game.New(m, now)
	ch := input.NewChannel()
	pushAll(ch, R, R)

	if err := Step(m, st, ch, now); err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if st.Pos() != core.Pt(1, 0) {
		t.Errorf("Pos() = %v, expected (1, 0)", st.Pos())
	}
	if ch.Len() != 1 {
		t.Errorf("Step() should consume one action, %d left", ch.Len())
	}

	if err := Step(m, st, ch, now); err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if st.Ending() != game.EndingFinished {
		t.Errorf("Ending() = %v, expected Finished", st.Ending())
	}

	// Empty channel: update only
	if err := Step(m, st, ch, now); err != nil {
		t.Errorf("Step() on empty channel failed: %v", err)
	}
}

func TestStepRejectsUnknownAction(t *testing.T) {
	m := maze.FromPaths([][]core.Action{{R}})
	st := game.New(m, time.Now())
	ch := input.NewChannel()
	ch.Push(core.ActionNone)

	if err := Step(m, st, ch, time.Now()); !errors.Is(err, game.ErrUnknownAction) {
		t.Errorf("Step() error = %v, expected ErrUnknownAction", err)
	}
}

func TestRunnerPlaysToExit(t *testing.T) {
	m := maze.FromPaths([][]core.Action{{R, R, T, R, R, R}})
	st := game.New(m, time.Now())
	ch := input.NewChannel()
	pushAll(ch, R, R, T, R, R, R)

	d := &recorder{}
	snap, err := NewRunner(WithTickRate(500)).Run(context.Background(), m, st, ch, d)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if snap.Ending != game.EndingFinished || snap.Reason != game.ReasonExitReached {
		t.Errorf("Run() = %v/%v, expected Finished/exit_reached", snap.Ending, snap.Reason)
	}
	if d.inits != 1 {
		t.Errorf("Init() called %d times, expected 1", d.inits)
	}
	if len(d.frames) < 6 {
		t.Errorf("displayed %d frames, expected at least 6", len(d.frames))
	}
	if last := d.frames[len(d.frames)-1]; last.Ending != game.EndingFinished {
		t.Errorf("last frame ending = %v, expected Finished", last.Ending)
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	m := maze.FromPaths([][]core.Action{{R}})
	st := game.New(m, time.Now())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	snap, err := NewRunner(WithTickRate(200)).Run(ctx, m, st, input.NewChannel(), &recorder{neverStop: true})
	if err != nil {
		t.Errorf("Run() error = %v, expected nil on cancel", err)
	}
	if snap.Ending != game.EndingRunning {
		t.Errorf("Ending = %v, expected Running", snap.Ending)
	}
}

func TestRunnerStopsOnSourceError(t *testing.T) {
	m := maze.FromPaths([][]core.Action{{R}})
	st := game.New(m, time.Now())

	boom := errors.New("boom")
	errs := make(chan error, 1)
	errs <- boom

	_, err := NewRunner(WithSourceErrors(errs)).Run(context.Background(), m, st, input.NewChannel(), &recorder{})
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, expected boom", err)
	}
}

func TestRunnerUsesClock(t *testing.T) {
	m := maze.FromPaths([][]core.Action{{R}})
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	st := game.New(m, start, game.WithMaxGameTime(time.Second))

	calls := 0
	clock := func() time.Time {
		calls++
		return start.Add(time.Duration(calls) * time.Second)
	}

	snap, err := NewRunner(WithTickRate(500), WithClock(clock)).Run(context.Background(), m, st, input.NewChannel(), &recorder{})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if snap.Reason != game.ReasonTimeUp {
		t.Errorf("Reason = %v, expected time_up", snap.Reason)
	}
}

func TestRunTurnsAppliesEachAction(t *testing.T) {
	m := maze.FromPaths([][]core.Action{{R, R, T, R, R, R}})
	st := game.New(m, time.Now())
	ch := input.NewChannel()

	go pushAll(ch, R, R, T, R, R, R)

	d := &recorder{}
	snap, err := NewRunner().RunTurns(context.Background(), m, st, ch, d)
	if err != nil {
		t.Fatalf("RunTurns() failed: %v", err)
	}
	if snap.Ending != game.EndingFinished {
		t.Errorf("Ending = %v, expected Finished", snap.Ending)
	}
	if len(d.frames) != 6 {
		t.Errorf("displayed %d frames, expected one per action", len(d.frames))
	}
}

func TestRunTurnsTimesOutWithoutInput(t *testing.T) {
	m := maze.FromPaths([][]core.Action{{R}})
	st := game.New(m, time.Now(), game.WithMaxGameTime(30*time.Millisecond))

	done := make(chan game.Snapshot, 1)
	go func() {
		snap, _ := NewRunner().RunTurns(context.Background(), m, st, input.NewChannel(), &recorder{})
		done <- snap
	}()

	select {
	case snap := <-done:
		if snap.Reason != game.ReasonTimeUp {
			t.Errorf("Reason = %v, expected time_up", snap.Reason)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RunTurns() blocked past the time budget")
	}
}

func TestRunTurnsSourceError(t *testing.T) {
	m := maze.FromPaths([][]core.Action{{R}})
	st := game.New(m, time.Now())

	boom := errors.New("boom")
	errs := make(chan error, 1)
	go func() {
		time.Sleep(10 * time.Millisecond)
		errs <- boom
	}()

	_, err := NewRunner(WithSourceErrors(errs)).RunTurns(context.Background(), m, st, input.NewChannel(), &recorder{})
	if !errors.Is(err, boom) {
		t.Errorf("RunTurns() error = %v, expected boom", err)
	}
}

func TestRunTurnsClosedChannel(t *testing.T) {
	m := maze.FromPaths([][]core.Action{{R}})
	st := game.New(m, time.Now())
	ch := input.NewChannel()
	ch.Close()

	_, err := NewRunner().RunTurns(context.Background(), m, st, ch, &recorder{})
	if !errors.Is(err, input.ErrClosed) {
		t.Errorf("RunTurns() error = %v, expected ErrClosed", err)
	}
}
