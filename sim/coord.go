package sim

import "fmt"

// Coord is a grid coordinate. X runs across the cabin, Y runs along the aisle.
type Coord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns the coordinate one cell away in the direction of a.
// Non-movement actions return c unchanged.
func (c Coord) Step(a Action) Coord {
	dx, dy := a.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns |a.X-b.X| + |a.Y-b.Y|.
func Manhattan(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Action is the outcome of a movement decision for one tick.
type Action string

const (
	ActionWait  Action = "wait"
	ActionNorth Action = "north" // Y-1
	ActionSouth Action = "south" // Y+1
	ActionEast  Action = "east"  // X+1
	ActionWest  Action = "west"  // X-1
	ActionStow  Action = "stow"  // clear baggage, no movement
)

// Delta returns the coordinate offset of a movement action; (0,0) otherwise.
func (a Action) Delta() (dx, dy int) {
	switch a {
	case ActionNorth:
		return 0, -1
	case ActionSouth:
		return 0, 1
	case ActionEast:
		return 1, 0
	case ActionWest:
		return -1, 0
	default:
		return 0, 0
	}
}

// IsMove reports whether a relocates the passenger.
func (a Action) IsMove() bool {
	switch a {
	case ActionNorth, ActionSouth, ActionEast, ActionWest:
		return true
	}
	return false
}
