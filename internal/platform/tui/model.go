package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colormaze/internal/core"
	"github.com/vovakirdan/colormaze/internal/game"
	"github.com/vovakirdan/colormaze/internal/input"
	"github.com/vovakirdan/colormaze/internal/loop"
	"github.com/vovakirdan/colormaze/internal/maze"
	"github.com/vovakirdan/colormaze/internal/render"
)

// Rows below the board: the end overlay (bordered, one line of text) and
// the help bar.
const (
	overlayRows  = 3
	helpRows     = 1
	reservedRows = overlayRows + helpRows
)

// Model is the Bubble Tea model for one colormaze session.
type Model struct {
	maze   *maze.Map
	state  *game.State
	ch     *input.Channel
	screen *core.Screen
	keys   KeyMap
	help   help.Model
	logger *log.Logger

	tickRate   int
	clock      func() time.Time
	gameOpts   []game.Option
	keyInput   bool
	next       func() (*maze.Map, error)
	sourceErrs <-chan error
	onEnd      func(*maze.Map, game.Snapshot)

	snap     game.Snapshot
	ended    bool
	width    int
	height   int
	err      error
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithTickRate sets the simulation ticks per second. Non-positive values
// are ignored.
func WithTickRate(fps int) Option {
	return func(m *Model) {
		if fps > 0 {
			m.tickRate = fps
		}
	}
}

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(m *Model) {
		m.clock = clock
	}
}

// WithGameOptions are passed to every game.New.
func WithGameOptions(opts ...game.Option) Option {
	return func(m *Model) {
		m.gameOpts = append(m.gameOpts, opts...)
	}
}

// WithKeyInput makes the movement keys push actions into the channel.
// Without it another source feeds the channel and only quit keys work.
func WithKeyInput() Option {
	return func(m *Model) {
		m.keyInput = true
	}
}

// WithRestart enables the restart key once a game ends; next builds the
// new map.
func WithRestart(next func() (*maze.Map, error)) Option {
	return func(m *Model) {
		m.next = next
	}
}

// WithSourceErrors stops the program on the first error from errs.
func WithSourceErrors(errs <-chan error) Option {
	return func(m *Model) {
		m.sourceErrs = errs
	}
}

// WithOnEnd is called once per game when it reaches a terminal state.
func WithOnEnd(fn func(*maze.Map, game.Snapshot)) Option {
	return func(m *Model) {
		m.onEnd = fn
	}
}

// WithLogger sets the logger. It must not write to the terminal the
// program draws on.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// NewModel creates a model playing mz with actions taken from ch.
func NewModel(mz *maze.Map, ch *input.Channel, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false

	m := Model{
		ch:       ch,
		keys:     DefaultKeyMap(),
		help:     h,
		logger:   log.New(io.Discard),
		tickRate: loop.DefaultTickRate,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.keys.SetMovement(m.keyInput)
	m.reset(mz)

	m.screen = core.NewScreen(render.Size(mz))
	return m
}

// reset starts a new game on mz.
func (m *Model) reset(mz *maze.Map) {
	now := m.clock()
	m.maze = mz
	m.state = game.New(mz, now, m.gameOpts...)
	m.state.Update(mz, now)
	m.snap = m.state.Snapshot()
	m.ended = false
	m.keys.Restart.SetEnabled(false)
	m.keys.SetMovement(m.keyInput)
	m.logger.Info("game started", "width", mz.Width(), "height", mz.Height(), "exits", len(mz.Exits()))
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.tickRate), waitSourceErr(m.sourceErrs))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.screen.Resize(m.boardSize())
		return m, nil

	case TickMsg:
		return m.handleTick()

	case sourceErrMsg:
		if m.ended {
			m.logger.Warn("input source stopped after the game ended", "err", msg.err)
			return m, nil
		}
		m.logger.Error("input source failed", "err", msg.err)
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		return m.restart()
	}

	if a, ok := m.keys.Action(msg); ok {
		m.ch.Push(a)
	}
	return m, nil
}

// handleTick advances the game by one step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.ended {
		return m, nil
	}

	if err := loop.Step(m.maze, m.state, m.ch, m.clock()); err != nil {
		m.logger.Error("step failed", "err", err)
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	m.snap = m.state.Snapshot()

	if m.snap.Ending.Terminal() {
		m.ended = true
		m.keys.SetMovement(false)
		m.keys.Restart.SetEnabled(m.next != nil)
		m.logger.Info("game ended", "ending", m.snap.Ending, "reason", m.snap.Reason, "moves", m.snap.Moves, "elapsed", m.snap.Elapsed)
		if m.onEnd != nil {
			m.onEnd(m.maze, m.snap)
		}
		return m, nil
	}

	return m, tickCmd(m.tickRate)
}

// restart builds a new map and starts over.
func (m Model) restart() (tea.Model, tea.Cmd) {
	if !m.ended || m.next == nil {
		return m, nil
	}

	mz, err := m.next()
	if err != nil {
		m.logger.Error("cannot build a new maze", "err", err)
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	if n := m.ch.Drain(); n > 0 {
		m.logger.Debug("dropped stale actions", "count", n)
	}
	m.reset(mz)
	m.screen.Resize(m.boardSize())
	return m, tickCmd(m.tickRate)
}

// boardSize returns the screen area available to the board.
func (m Model) boardSize() (int, int) {
	if m.width == 0 || m.height == 0 {
		return render.Size(m.maze)
	}
	return max(m.width, 1), max(m.height-reservedRows, 1)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	render.Board(m.screen, m.maze, m.snap)
	sections := []string{RenderScreen(m.screen)}

	width := max(m.width, m.screen.Width())
	if m.ended {
		box := overlayStyle.Render(render.Summary(m.snap))
		sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, box))
	} else {
		sections = append(sections, lipgloss.NewStyle().Height(overlayRows).Render(""))
	}
	if m.err != nil {
		sections = append(sections, errorStyle.Render(m.err.Error()))
	}
	sections = append(sections, helpStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Snapshot returns the state of the current game.
func (m Model) Snapshot() game.Snapshot {
	return m.snap
}

// Map returns the map being played.
func (m Model) Map() *maze.Map {
	return m.maze
}

// Err returns the error that stopped the program, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program and blocks until the player quits,
// ctx is cancelled or the input source fails. It returns the last game's
// snapshot. Cancellation is a normal stop.
func Run(ctx context.Context, mz *maze.Map, ch *input.Channel, opts ...Option) (game.Snapshot, error) {
	model := NewModel(mz, ch, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		model = fm
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return model.snap, err
	}
	return model.snap, model.err
}
