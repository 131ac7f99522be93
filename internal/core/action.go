package core

// Action is a discrete player intent produced by an input source and
// consumed by the game state.
type Action uint8

const (
	ActionNone   Action = iota
	ActionUp            // w - y decreases
	ActionDown          // s - y increases
	ActionLeft          // a - x decreases
	ActionRight         // d - x increases
	ActionToggle        // x - switch between the two player colors
)

// Actions lists every legal action in the order the generator samples them.
var Actions = [...]Action{ActionUp, ActionDown, ActionLeft, ActionRight, ActionToggle}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionToggle:
		return "Toggle"
	default:
		return "Unknown"
	}
}

// Valid reports whether a is one of the five legal actions.
func (a Action) Valid() bool {
	return a >= ActionUp && a <= ActionToggle
}

// IsDirectional reports whether a moves the player.
func (a Action) IsDirectional() bool {
	return a >= ActionUp && a <= ActionRight
}

// Delta returns the grid displacement of an action.
// Up/Down act on Y (Y grows downward), Left/Right act on X.
// Toggle and invalid actions return the zero point.
func Delta(a Action) Point {
	switch a {
	case ActionUp:
		return Point{X: 0, Y: -1}
	case ActionDown:
		return Point{X: 0, Y: 1}
	case ActionLeft:
		return Point{X: -1, Y: 0}
	case ActionRight:
		return Point{X: 1, Y: 0}
	default:
		return Point{}
	}
}
