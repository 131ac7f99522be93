// Package maze builds the colored tile grid the player traverses.
//
// A maze is carved by replaying random action paths twice. The first pass
// only tracks the bounding box of every trajectory so the grid size and the
// normalised start cell are known; the second pass paints the tiles. Both
// passes replay the same action lists, which keeps geometry and coloring
// consistent without storing per-step positions.
package maze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/colormaze/internal/core"
	"github.com/vovakirdan/colormaze/internal/random"
)

// ErrInvalidParams is returned when generation parameters are out of range.
var ErrInvalidParams = errors.New("maze: invalid generation parameters")

// Params bounds the random walks the maze is carved from.
type Params struct {
	NumPaths   int // Number of paths, each ending at its own exit
	MinPathLen int // Inclusive lower bound of actions per path
	MaxPathLen int // Exclusive upper bound, except when equal to MinPathLen
}

// DefaultParams returns the parameters the game uses when nothing is configured.
func DefaultParams() Params {
	return Params{
		NumPaths:   1,
		MinPathLen: 30,
		MaxPathLen: 50,
	}
}

// Validate checks NumPaths >= 1 and 1 <= MinPathLen <= MaxPathLen.
func (p Params) Validate() error {
	if p.NumPaths < 1 {
		return fmt.Errorf("%w: num_paths must be >= 1, got %d", ErrInvalidParams, p.NumPaths)
	}
	if p.MinPathLen < 1 {
		return fmt.Errorf("%w: min_path_len must be >= 1, got %d", ErrInvalidParams, p.MinPathLen)
	}
	if p.MinPathLen > p.MaxPathLen {
		return fmt.Errorf("%w: min_path_len %d > max_path_len %d", ErrInvalidParams, p.MinPathLen, p.MaxPathLen)
	}
	return nil
}

// Map is an immutable grid of tile states with a start cell and exits.
// Tiles are stored row-major: tiles[y*width+x].
type Map struct {
	width  int
	height int
	tiles  []core.TileState
	start  core.Point
	exits  []core.Point
}

// Generate draws p.NumPaths random action paths from rng and carves a map
// from them.
func Generate(p Params, rng random.Generator) (*Map, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return FromPaths(RandomPaths(p, rng)), nil
}

// RandomPaths draws the action lists Generate carves. Every step samples
// uniformly over the five actions, so a toggle is eligible at every step.
func RandomPaths(p Params, rng random.Generator) [][]core.Action {
	paths := make([][]core.Action, p.NumPaths)
	for i := range paths {
		n := rng.Generate(p.MinPathLen, p.MaxPathLen)
		path := make([]core.Action, n)
		for j := range path {
			path[j] = core.Actions[rng.Generate(0, len(core.Actions))]
		}
		paths[i] = path
	}
	return paths
}

// FromPaths carves a map from fixed action paths. An empty path is a valid
// trivial case whose exit is the start cell.
func FromPaths(paths [][]core.Action) *Map {
	minP, maxP := bounds(paths)

	m := &Map{
		width:  maxP.X - minP.X + 1,
		height: maxP.Y - minP.Y + 1,
		start:  core.Point{X: -minP.X, Y: -minP.Y},
		exits:  make([]core.Point, 0, len(paths)),
	}
	m.tiles = make([]core.TileState, m.width*m.height)

	for _, path := range paths {
		m.paint(path)
	}
	return m
}

// bounds replays every path from the origin and returns the min and max
// corner of all visited cells, origin included.
func bounds(paths [][]core.Action) (minP, maxP core.Point) {
	for _, path := range paths {
		pos := core.Point{}
		for _, a := range path {
			if !a.IsDirectional() {
				continue
			}
			pos = pos.Add(core.Delta(a))
			minP.X = min(minP.X, pos.X)
			minP.Y = min(minP.Y, pos.Y)
			maxP.X = max(maxP.X, pos.X)
			maxP.Y = max(maxP.Y, pos.Y)
		}
	}
	return minP, maxP
}

// paint replays one path from the start cell. The current color is reset
// to ColorA for every path. Revisited cells and toggle cells become
// Neutral; the final cell is forced to the current color and becomes an exit.
func (m *Map) paint(path []core.Action) {
	pos := m.start
	color := core.TileColorA

	for _, a := range path {
		i := m.index(pos.X, pos.Y)
		if m.tiles[i] != core.TileEmpty || a == core.ActionToggle {
			m.tiles[i] = core.TileNeutral
		} else {
			m.tiles[i] = color
		}

		if a == core.ActionToggle {
			color = color.Flip()
			continue
		}
		pos = pos.Add(core.Delta(a))
	}

	m.tiles[m.index(pos.X, pos.Y)] = color
	m.exits = append(m.exits, pos)
}

// index converts a coordinate into a tiles offset, panicking when the
// coordinate is outside the grid. Every production path stays in bounds by
// construction, so a violation is a programming error.
func (m *Map) index(x, y int) int {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		panic(fmt.Sprintf("maze: tile (%d, %d) out of bounds %dx%d", x, y, m.width, m.height))
	}
	return y*m.width + x
}

// Width returns the number of columns.
func (m *Map) Width() int {
	return m.width
}

// Height returns the number of rows.
func (m *Map) Height() int {
	return m.height
}

// Start returns the cell every path begins at.
func (m *Map) Start() core.Point {
	return m.start
}

// Exits returns a copy of the exit cells, one per path, in path order.
// Exits may coincide with each other or with the start.
func (m *Map) Exits() []core.Point {
	out := make([]core.Point, len(m.exits))
	copy(out, m.exits)
	return out
}

// Tile returns the state of cell (x, y). Panics when out of bounds.
func (m *Map) Tile(x, y int) core.TileState {
	return m.tiles[m.index(x, y)]
}

// TileAt returns the state of cell p. Panics when out of bounds.
func (m *Map) TileAt(p core.Point) core.TileState {
	return m.Tile(p.X, p.Y)
}

// InBounds reports whether p lies in [0,width)x[0,height).
func (m *Map) InBounds(p core.Point) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

// IsExit reports whether (x, y) is an exit. Linear in the number of exits.
func (m *Map) IsExit(x, y int) bool {
	for _, e := range m.exits {
		if e.X == x && e.Y == y {
			return true
		}
	}
	return false
}

// IsExitAt reports whether p is an exit.
func (m *Map) IsExitAt(p core.Point) bool {
	return m.IsExit(p.X, p.Y)
}

// NDC maps cell p into render space using the map's dimensions.
func (m *Map) NDC(p core.Point) core.Vec2 {
	return core.NDC(p, m.width, m.height)
}

// Info returns a one-line summary of the map geometry.
func (m *Map) Info() string {
	return fmt.Sprintf("Map width: %d, height: %d, start: %v, exits: %d", m.width, m.height, m.start, len(m.exits))
}

// String renders the map as ASCII, one row per line:
// '#' empty, '.' neutral, 'A'/'B' colors, 'E' exit, 'S' start.
func (m *Map) String() string {
	var sb strings.Builder
	sb.Grow((m.width + 1) * m.height)

	for y := 0; y < m.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < m.width; x++ {
			sb.WriteByte(m.glyph(x, y))
		}
	}
	return sb.String()
}

func (m *Map) glyph(x, y int) byte {
	switch {
	case m.IsExit(x, y):
		return 'E'
	case x == m.start.X && y == m.start.Y:
		return 'S'
	}
	switch m.Tile(x, y) {
	case core.TileNeutral:
		return '.'
	case core.TileColorA:
		return 'A'
	case core.TileColorB:
		return 'B'
	default:
		return '#'
	}
}
