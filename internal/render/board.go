// Package render draws a maze and the player into a core.Screen.
// It is shared by every displayer so the terminal UI and the plain text
// output look the same.
package render

import (
	"fmt"

	"github.com/vovakirdan/colormaze/internal/core"
	"github.com/vovakirdan/colormaze/internal/game"
	"github.com/vovakirdan/colormaze/internal/maze"
)

// CellWidth is the number of screen columns per maze cell; terminal
// characters are roughly twice as tall as wide.
const CellWidth = 2

// Rows used above and below the board, and the narrowest frame that
// still shows the whole HUD.
const (
	hudRows    = 1
	statusRows = 1
	minWidth   = 32
)

// Glyphs.
const (
	GlyphNeutral = '░'
	GlyphColor   = '█'
	GlyphExit    = '◎'
	GlyphPlayer  = '●'
)

// Option configures Board.
type Option func(*options)

type options struct {
	discrete bool
}

// Discrete draws the player on its grid cell instead of the interpolated
// display position.
func Discrete() Option {
	return func(o *options) {
		o.discrete = true
	}
}

// Size returns the screen size needed to draw m.
func Size(m *maze.Map) (w, h int) {
	return max(m.Width()*CellWidth, minWidth), m.Height() + hudRows + statusRows
}

// Fits reports whether m can be drawn on a w x h screen.
func Fits(m *maze.Map, w, h int) bool {
	bw, bh := Size(m)
	return bw <= w && bh <= h
}

// TileStyle returns the glyph and color of a tile.
func TileStyle(t core.TileState) (rune, core.Color) {
	switch t {
	case core.TileNeutral:
		return GlyphNeutral, core.ColorGray
	case core.TileColorA:
		return GlyphColor, core.ColorWhite
	case core.TileColorB:
		return GlyphColor, core.ColorBlack
	default:
		return ' ', core.ColorDefault
	}
}

// PlayerColor returns the token color for a player color.
func PlayerColor(c core.TileState) core.Color {
	if c == core.TileColorB {
		return core.ColorBlue
	}
	return core.ColorRed
}

// PlayerCell returns the cell the token is drawn on.
func PlayerCell(m *maze.Map, snap game.Snapshot, opts ...Option) core.Point {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.discrete {
		return snap.Pos
	}
	return core.FromNDC(snap.Display, m.Width(), m.Height())
}

// Board draws the HUD, the maze, the player and a status line centered on
// dst. The screen is cleared first.
func Board(dst *core.Screen, m *maze.Map, snap game.Snapshot, opts ...Option) {
	dst.Clear()

	if !Fits(m, dst.Width(), dst.Height()) {
		bw, bh := Size(m)
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Terminal too small: need %dx%d", bw, bh))
		return
	}

	bw, bh := Size(m)
	ox := (dst.Width() - m.Width()*CellWidth) / 2
	oy := (dst.Height()-bh)/2 + hudRows

	dst.DrawTextColored((dst.Width()-bw)/2, oy-hudRows, HUD(snap), core.ColorYellow)

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			r, c := TileStyle(m.Tile(x, y))
			if m.IsExit(x, y) {
				r, c = GlyphExit, core.ColorBrightGreen
			}
			for i := 0; i < CellWidth; i++ {
				dst.SetColored(ox+x*CellWidth+i, oy+y, r, c)
			}
		}
	}

	if p := PlayerCell(m, snap, opts...); m.InBounds(p) {
		px := ox + p.X*CellWidth
		dst.SetColored(px, oy+p.Y, GlyphPlayer, PlayerColor(snap.Color))
		dst.SetColored(px+1, oy+p.Y, ' ', core.ColorDefault)
	}

	if snap.Ending.Terminal() {
		dst.DrawTextCentered(oy+m.Height(), Status(snap))
	}
}

// HUD returns the one-line heads-up display.
func HUD(snap game.Snapshot) string {
	color := "A"
	if snap.Color == core.TileColorB {
		color = "B"
	}
	return fmt.Sprintf("Time %4.1fs  Moves %d  Color %s", snap.Remaining().Seconds(), snap.Moves, color)
}

// Status describes how the game ended.
func Status(snap game.Snapshot) string {
	switch snap.Reason {
	case game.ReasonExitReached:
		return "You escaped!"
	case game.ReasonTimeUp:
		return "Time is up"
	case game.ReasonColorMismatch:
		return "Wrong color"
	case game.ReasonEmptyTile:
		return "You fell off the path"
	case game.ReasonOutOfBounds:
		return "You left the maze"
	default:
		return snap.Ending.String()
	}
}

// Summary is the line printed when a game ends.
func Summary(snap game.Snapshot) string {
	if !snap.Ending.Terminal() {
		return fmt.Sprintf("Game ended! Quit after %.1fs and %d moves", snap.Elapsed.Seconds(), snap.Moves)
	}
	return fmt.Sprintf("Game ended! %s (%s) after %.1fs and %d moves",
		snap.Ending, snap.Reason, snap.Elapsed.Seconds(), snap.Moves)
}
