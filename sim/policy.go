package sim

import (
	"fmt"
)

// Neighbor describes one adjacent cell as seen by a MovementPolicy.
type Neighbor struct {
	InBounds bool
	Variant  TileVariant
	Allowing bool // empty, or occupied but allowing a passer
}

// Neighborhood is the read-only view a policy gets of a passenger's surroundings.
type Neighborhood struct {
	Here  TileVariant
	North Neighbor
	South Neighbor
	East  Neighbor
	West  Neighbor
}

// Toward returns the neighbor in the direction of a movement action.
func (n Neighborhood) Toward(a Action) Neighbor {
	switch a {
	case ActionNorth:
		return n.North
	case ActionSouth:
		return n.South
	case ActionEast:
		return n.East
	case ActionWest:
		return n.West
	}
	return Neighbor{}
}

// MovementPolicy picks one Action for a passenger for the current tick.
// Implementations must be pure: the same inputs always give the same Action,
// and no grid state is read beyond the Neighborhood.
type MovementPolicy interface {
	Decide(pos Coord, seat *Coord, baggage bool, nb Neighborhood) Action
}

// Candidate orderings. The first strictly-best candidate wins, so the order
// is the tie-break rule and Wait is the default.
var (
	aisleCandidates = []Action{ActionWait, ActionNorth, ActionSouth, ActionEast, ActionWest}
	seatCandidates  = []Action{ActionWait, ActionEast, ActionWest} // lateral only within a row
)

// GreedyPolicy moves a passenger to the neighbor that strictly reduces the
// Manhattan distance to its seat, with no lookahead. Seat tiles are only
// entered in the passenger's own seat row.
type GreedyPolicy struct{}

func (GreedyPolicy) Decide(pos Coord, seat *Coord, baggage bool, nb Neighborhood) Action {
	if seat == nil {
		return ActionWait
	}
	candidates := aisleCandidates
	switch nb.Here {
	case VariantSeat:
		candidates = seatCandidates
	case VariantAisle, VariantEntrance:
		if pos.Y == seat.Y && baggage {
			return ActionStow
		}
	}

	best, bestDist := ActionWait, Manhattan(pos, *seat)
	for _, a := range candidates[1:] {
		n := nb.Toward(a)
		if !n.InBounds || !n.Allowing {
			continue
		}
		next := pos.Step(a)
		if n.Variant == VariantSeat && next.Y != seat.Y {
			continue
		}
		if d := Manhattan(next, *seat); d < bestDist {
			best, bestDist = a, d
		}
	}
	return best
}

// PolicyGreedy is the name of the default movement policy.
const PolicyGreedy = "greedy"

// validPolicies maps accepted movement policy names.
var validPolicies = map[string]bool{"": true, PolicyGreedy: true}

// IsValidMovementPolicy returns true if name is a recognized movement policy.
// Empty string is accepted and means greedy.
func IsValidMovementPolicy(name string) bool {
	return validPolicies[name]
}

// NewMovementPolicy creates a MovementPolicy by name.
// Valid names: "greedy" (default). Empty string defaults to greedy.
// Panics on unrecognized names.
func NewMovementPolicy(name string) MovementPolicy {
	if !IsValidMovementPolicy(name) {
		panic(fmt.Sprintf("unknown movement policy %q", name))
	}
	switch name {
	case "", PolicyGreedy:
		return GreedyPolicy{}
	default:
		panic(fmt.Sprintf("unhandled movement policy %q", name))
	}
}
