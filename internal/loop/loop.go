// Package loop drives a game: it pulls actions from the input channel,
// advances the state and hands every frame to a Displayer.
package loop

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colormaze/internal/game"
	"github.com/vovakirdan/colormaze/internal/input"
	"github.com/vovakirdan/colormaze/internal/maze"
)

// DefaultTickRate is the number of frames per second of the ticked Runner.
const DefaultTickRate = 60

// Displayer consumes frames.
type Displayer interface {
	// Init is called once with the first frame, before any input is read.
	Init(m *maze.Map, snap game.Snapshot) error
	// Display renders one frame.
	Display(m *maze.Map, snap game.Snapshot) error
	// ShouldClose reports whether the loop should stop after this frame.
	ShouldClose(snap game.Snapshot) bool
}

// Step applies at most one pending action, then updates the state.
// It never blocks.
func Step(m *maze.Map, st *game.State, ch *input.Channel, now time.Time) error {
	if a, ok := ch.TryPop(); ok {
		if err := st.Move(a, now); err != nil {
			return err
		}
	}
	st.Update(m, now)
	return nil
}

// Runner runs the game loop for one map.
type Runner struct {
	tickLength time.Duration
	clock      func() time.Time
	logger     *log.Logger
	sourceErrs <-chan error
}

// RunnerOpt configures a Runner.
type RunnerOpt func(*Runner)

// WithTickRate sets the frames per second. Non-positive values are ignored.
func WithTickRate(fps int) RunnerOpt {
	return func(r *Runner) {
		if fps > 0 {
			r.tickLength = time.Second / time.Duration(fps)
		}
	}
}

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) RunnerOpt {
	return func(r *Runner) {
		r.clock = clock
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) RunnerOpt {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithSourceErrors makes the loop stop with the first error received on errs.
func WithSourceErrors(errs <-chan error) RunnerOpt {
	return func(r *Runner) {
		r.sourceErrs = errs
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOpt) *Runner {
	r := &Runner{
		tickLength: time.Second / DefaultTickRate,
		clock:      time.Now,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run steps the game once per tick and displays every frame until the
// displayer asks to close, ctx is cancelled or an input source fails.
// Cancellation is a normal stop and returns a nil error.
func (r *Runner) Run(ctx context.Context, m *maze.Map, st *game.State, ch *input.Channel, d Displayer) (game.Snapshot, error) {
	st.Update(m, r.clock())
	snap := st.Snapshot()
	if err := d.Init(m, snap); err != nil {
		return snap, err
	}

	ticker := time.NewTicker(r.tickLength)
	defer ticker.Stop()

	for !d.ShouldClose(snap) {
		select {
		case <-ctx.Done():
			return snap, nil
		case err := <-r.sourceErrs:
			return snap, err
		case <-ticker.C:
			if err := Step(m, st, ch, r.clock()); err != nil {
				return snap, err
			}
			prev := snap.Ending
			snap = st.Snapshot()
			if snap.Ending != prev {
				r.logger.Info("game ended", "ending", snap.Ending, "reason", snap.Reason, "moves", snap.Moves, "elapsed", snap.Elapsed)
			}
			if err := d.Display(m, snap); err != nil {
				return snap, err
			}
		}
	}
	return snap, nil
}

// RunTurns is the blocking variant: it waits for each action instead of
// polling and redraws only after input. The wait is bounded by the game's
// time budget, so an idle player still times out.
func (r *Runner) RunTurns(ctx context.Context, m *maze.Map, st *game.State, ch *input.Channel, d Displayer) (game.Snapshot, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	if r.sourceErrs != nil {
		go func() {
			select {
			case err := <-r.sourceErrs:
				cancel(err)
			case <-ctx.Done():
			}
		}()
	}

	st.Update(m, r.clock())
	snap := st.Snapshot()
	if err := d.Init(m, snap); err != nil {
		return snap, err
	}

	for !d.ShouldClose(snap) {
		// Wake just past the deadline so Update sees the budget exceeded.
		popCtx, popCancel := ctx, context.CancelFunc(func() {})
		if !snap.Ending.Terminal() {
			popCtx, popCancel = context.WithDeadline(ctx, st.Deadline().Add(time.Millisecond))
		}
		a, err := ch.BlockingPop(popCtx)
		popCancel()

		switch {
		case err == nil:
			if err := st.Move(a, r.clock()); err != nil {
				return snap, err
			}
		case ctx.Err() != nil:
			if cause := context.Cause(ctx); !errors.Is(cause, context.Canceled) {
				return snap, cause
			}
			return snap, nil
		case errors.Is(err, context.DeadlineExceeded):
			r.logger.Debug("time budget reached while waiting for input")
		default:
			return snap, err
		}

		st.Update(m, r.clock())
		prev := snap.Ending
		snap = st.Snapshot()
		if snap.Ending != prev {
			r.logger.Info("game ended", "ending", snap.Ending, "reason", snap.Reason, "moves", snap.Moves, "elapsed", snap.Elapsed)
		}
		if err := d.Display(m, snap); err != nil {
			return snap, err
		}
	}
	return snap, nil
}
