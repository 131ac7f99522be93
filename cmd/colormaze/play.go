package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/colormaze/internal/config"
	"github.com/vovakirdan/colormaze/internal/game"
	"github.com/vovakirdan/colormaze/internal/input"
	"github.com/vovakirdan/colormaze/internal/input/keyboard"
	"github.com/vovakirdan/colormaze/internal/input/subprocess"
	"github.com/vovakirdan/colormaze/internal/loop"
	"github.com/vovakirdan/colormaze/internal/maze"
	"github.com/vovakirdan/colormaze/internal/platform/text"
	"github.com/vovakirdan/colormaze/internal/platform/tui"
	"github.com/vovakirdan/colormaze/internal/random"
	"github.com/vovakirdan/colormaze/internal/registry"
	"github.com/vovakirdan/colormaze/internal/render"
	"github.com/vovakirdan/colormaze/internal/storage"
)

var (
	flagFPS         int
	flagDisplay     string
	flagInterpreter string
)

// session is everything one play command shares between games.
type session struct {
	cfg    config.Config
	logger *log.Logger
	store  *storage.Store
	rng    random.Generator
}

func runPlay(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return cmd.Usage()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Input.Source = subprocess.Name
		cfg.Input.Script = args[0]
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Debug("configuration loaded", "path", cfg.Path, "source", cfg.Input.Source, "display", cfg.Display.Mode)

	if !registry.Exists(cfg.Input.Source) {
		return fmt.Errorf("%w %q, run 'colormaze sources' to list them", registry.ErrUnknownSource, cfg.Input.Source)
	}

	s := &session{
		cfg:    cfg,
		logger: logger,
		rng:    random.NewSeeded(cfg.Maze.Seed),
	}
	m, err := s.newMaze()
	if err != nil {
		return err
	}

	s.store = openStore(cfg, logger)
	if s.store != nil {
		defer s.store.Close()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var snap game.Snapshot
	if cfg.Display.Mode == config.DisplayText {
		snap, err = s.playText(ctx, m)
	} else {
		snap, err = s.playTUI(ctx, m)
	}
	if err != nil {
		return err
	}

	fmt.Println(render.Summary(snap))
	return nil
}

// newMaze generates a maze from the configured parameters.
func (s *session) newMaze() (*maze.Map, error) {
	m, err := maze.Generate(s.cfg.Maze.Params(), s.rng)
	if err != nil {
		return nil, err
	}
	s.logger.Info("maze generated", "size", fmt.Sprintf("%dx%d", m.Width(), m.Height()), "exits", len(m.Exits()), "seed", s.cfg.Maze.Seed)
	s.logger.Debug("layout\n" + m.String())
	return m, nil
}

func (s *session) gameOptions() []game.Option {
	return []game.Option{
		game.WithOperationInterval(s.cfg.Timing.OperationInterval),
		game.WithMaxGameTime(s.cfg.Timing.MaxGameTime),
	}
}

// startSource creates and starts the configured input source.
func (s *session) startSource(ctx context.Context, ch *input.Channel, opts registry.Options) (registry.Source, error) {
	opts.Script = s.cfg.Input.Script
	opts.Interpreter = s.cfg.Input.Interpreter
	opts.Logger = s.logger

	src, err := registry.Create(s.cfg.Input.Source, opts)
	if err != nil {
		return nil, err
	}
	if err := src.Start(ctx, ch); err != nil {
		return nil, err
	}
	return src, nil
}

func (s *session) stopSource(src registry.Source) {
	if err := src.Stop(); err != nil {
		s.logger.Warn("input source did not stop cleanly", "source", src.Name(), "error", err)
	}
}

// loopFunc runs one game to its end.
type loopFunc func(context.Context, *maze.Map, *game.State, *input.Channel, loop.Displayer) (game.Snapshot, error)

// textLoop picks how text mode drives the game. Keyboard play is turn
// based and redraws after each key; other sources are polled every tick.
func textLoop(source string, r *loop.Runner) loopFunc {
	if source == keyboard.Name {
		return r.RunTurns
	}
	return r.Run
}

// playText runs one game on plain stdout.
func (s *session) playText(ctx context.Context, m *maze.Map) (game.Snapshot, error) {
	ch := input.NewChannel()
	defer ch.Close()

	var opts registry.Options
	if s.cfg.Input.Source == keyboard.Name {
		tty, err := keyboard.OpenTerminal()
		if err != nil {
			return game.Snapshot{}, err
		}
		defer tty.Close()
		opts.Reader = tty

		if w, h, err := tty.Size(); err == nil && !render.Fits(m, w, h) {
			bw, bh := render.Size(m)
			s.logger.Warn("terminal is smaller than the maze", "need", fmt.Sprintf("%dx%d", bw, bh), "have", fmt.Sprintf("%dx%d", w, h))
		}
	}

	src, err := s.startSource(ctx, ch, opts)
	if err != nil {
		return game.Snapshot{}, err
	}
	defer s.stopSource(src)

	var displayOpts []text.Option
	if term.IsTerminal(int(os.Stdout.Fd())) {
		displayOpts = append(displayOpts, text.WithANSI())
	}

	runner := loop.NewRunner(
		loop.WithTickRate(s.cfg.Timing.TickRate),
		loop.WithLogger(s.logger),
		loop.WithSourceErrors(src.Err()),
	)
	st := game.New(m, time.Now(), s.gameOptions()...)

	run := textLoop(s.cfg.Input.Source, runner)
	snap, err := run(ctx, m, st, ch, text.New(os.Stdout, displayOpts...))
	if errors.Is(err, keyboard.ErrQuit) {
		err = nil
	}
	if err != nil {
		return snap, err
	}
	s.saveRun(m, snap)
	return snap, nil
}

// playTUI runs games in the Bubble Tea UI until the player quits. With
// keyboard input the UI reads the keys itself and offers new mazes.
func (s *session) playTUI(ctx context.Context, m *maze.Map) (game.Snapshot, error) {
	ch := input.NewChannel()
	defer ch.Close()

	opts := []tui.Option{
		tui.WithTickRate(s.cfg.Timing.TickRate),
		tui.WithGameOptions(s.gameOptions()...),
		tui.WithLogger(s.logger),
		tui.WithOnEnd(s.saveRun),
	}

	if s.cfg.Input.Source == keyboard.Name {
		opts = append(opts, tui.WithKeyInput(), tui.WithRestart(s.newMaze))
	} else {
		src, err := s.startSource(ctx, ch, registry.Options{})
		if err != nil {
			return game.Snapshot{}, err
		}
		defer s.stopSource(src)
		opts = append(opts, tui.WithSourceErrors(src.Err()))
	}

	return tui.Run(ctx, m, ch, opts...)
}

// saveRun records a finished game. Unfinished games are not recorded.
func (s *session) saveRun(m *maze.Map, snap game.Snapshot) {
	if s.store == nil || !snap.Ending.Terminal() {
		return
	}
	id, err := s.store.SaveRun(storage.Run{
		Outcome:  snap.Ending.String(),
		Reason:   snap.Reason.String(),
		Elapsed:  snap.Elapsed,
		Moves:    snap.Moves,
		Width:    m.Width(),
		Height:   m.Height(),
		NumPaths: len(m.Exits()),
		Source:   s.cfg.Input.Source,
		Seed:     s.cfg.Maze.Seed,
	})
	if err != nil {
		s.logger.Warn("could not save run", "error", err)
		return
	}
	s.logger.Debug("run saved", "id", id)
}
