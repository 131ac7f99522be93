package core

// TileState is the fixed category of a maze cell.
type TileState uint8

const (
	TileEmpty   TileState = iota // off the walkable path
	TileNeutral                  // safe for either player color
	TileColorA
	TileColorB
)

// String returns a human-readable name for the tile state.
func (t TileState) String() string {
	switch t {
	case TileEmpty:
		return "Empty"
	case TileNeutral:
		return "Neutral"
	case TileColorA:
		return "ColorA"
	case TileColorB:
		return "ColorB"
	default:
		return "Unknown"
	}
}

// Walkable reports whether a player may stand on the tile at all.
func (t TileState) Walkable() bool {
	return t == TileNeutral || t == TileColorA || t == TileColorB
}

// IsColor reports whether t is one of the two player colors.
func (t TileState) IsColor() bool {
	return t == TileColorA || t == TileColorB
}

// Flip swaps ColorA and ColorB. Any other state is returned unchanged.
func (t TileState) Flip() TileState {
	switch t {
	case TileColorA:
		return TileColorB
	case TileColorB:
		return TileColorA
	default:
		return t
	}
}

// Accepts reports whether a player of the given color may stand on t.
func (t TileState) Accepts(color TileState) bool {
	switch t {
	case TileNeutral:
		return true
	case TileColorA, TileColorB:
		return t == color
	default:
		return false
	}
}
