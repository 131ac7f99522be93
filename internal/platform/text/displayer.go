// Package text provides a Displayer that writes uncolored frames to an
// io.Writer. It is used with the turn-based loop and for non-interactive
// output.
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/colormaze/internal/core"
	"github.com/vovakirdan/colormaze/internal/game"
	"github.com/vovakirdan/colormaze/internal/maze"
	"github.com/vovakirdan/colormaze/internal/render"
)

// ANSI sequences: cursor home + clear screen.
const clearScreen = "\x1b[H\x1b[2J"

// Displayer writes a frame whenever it differs from the last one.
type Displayer struct {
	w      io.Writer
	ansi   bool
	screen *core.Screen
	last   string
	frames int
}

// Option configures a Displayer.
type Option func(*Displayer)

// WithANSI clears the terminal before each frame.
func WithANSI() Option {
	return func(d *Displayer) {
		d.ansi = true
	}
}

// New creates a Displayer writing to w.
func New(w io.Writer, opts ...Option) *Displayer {
	d := &Displayer{w: w}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Init sizes the screen to the map and draws the first frame.
func (d *Displayer) Init(m *maze.Map, snap game.Snapshot) error {
	w, h := render.Size(m)
	d.screen = core.NewScreen(w, h)
	d.last = ""
	return d.Display(m, snap)
}

// Display draws the player on its grid cell and writes the frame if it changed.
func (d *Displayer) Display(m *maze.Map, snap game.Snapshot) error {
	render.Board(d.screen, m, snap, render.Discrete())
	frame := d.screen.String()
	if frame == d.last {
		return nil
	}
	d.last = frame
	d.frames++

	if d.ansi {
		if _, err := io.WriteString(d.w, clearScreen); err != nil {
			return err
		}
	}
	// Raw terminals need explicit carriage returns.
	_, err := fmt.Fprintf(d.w, "%s\r\n", strings.ReplaceAll(frame, "\n", "\r\n"))
	return err
}

// ShouldClose closes once the game has ended.
func (d *Displayer) ShouldClose(snap game.Snapshot) bool {
	return snap.Ending.Terminal()
}
