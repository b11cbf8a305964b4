// Defines the Tile type: a single grid cell with a fixed variant and an
// occupancy state machine (empty → occupied → occupied-and-passing).

package sim

import "fmt"

// PassWait is the number of ticks a passer must dwell in another passenger's
// tile before it may move on. Models the delay of someone stepping aside.
const PassWait = 2

// TileVariant is the fixed kind of a grid cell.
type TileVariant string

const (
	VariantAisle    TileVariant = "aisle"
	VariantSeat     TileVariant = "seat"
	VariantEntrance TileVariant = "entrance"
	VariantBlocked  TileVariant = "blocked"
)

// validVariants maps accepted variant strings.
var validVariants = map[TileVariant]bool{
	VariantAisle:    true,
	VariantSeat:     true,
	VariantEntrance: true,
	VariantBlocked:  true,
}

// IsValidVariant returns true if v names a known tile variant.
func IsValidVariant(v TileVariant) bool {
	return validVariants[v]
}

// Passable reports whether passengers may ever stand on a tile of this variant.
func (v TileVariant) Passable() bool {
	return v == VariantAisle || v == VariantSeat || v == VariantEntrance
}

// OccupancyKind is the tag of a tile's occupancy sub-state.
type OccupancyKind string

const (
	OccupancyEmpty    OccupancyKind = "empty"
	OccupancyOccupied OccupancyKind = "occupied"
	OccupancyPassing  OccupancyKind = "passing" // occupied, plus a passer
)

// Occupancy is a read-only view of a tile's occupancy.
// Occupant is meaningful unless Kind is empty; Passer and Dwell only when passing.
type Occupancy struct {
	Kind     OccupancyKind
	Occupant PassengerID
	Passer   PassengerID
	Dwell    int
}

// Tile is a single grid cell.
// The passer slot is only reachable through PassIn on an occupied tile, so a
// passer without a primary occupant cannot be constructed.
type Tile struct {
	variant  TileVariant
	kind     OccupancyKind
	occupant PassengerID
	passer   PassengerID
	dwell    int
	advanced bool // set when something moved onto this tile in the current tick
	arrived  bool // set when the passer entered in the current tick
}

// NewTile returns an empty tile of the given variant.
func NewTile(v TileVariant) Tile {
	return Tile{variant: v, kind: OccupancyEmpty}
}

func (t *Tile) Variant() TileVariant { return t.variant }

func (t *Tile) IsEmpty() bool { return t.kind == OccupancyEmpty }

// Advanced reports whether the tile has been moved onto this tick.
func (t *Tile) Advanced() bool { return t.advanced }

// Occupant returns the primary occupant, if any.
func (t *Tile) Occupant() (PassengerID, bool) {
	if t.kind == OccupancyEmpty {
		return 0, false
	}
	return t.occupant, true
}

// Passer returns the secondary occupant, if any.
func (t *Tile) Passer() (PassengerID, bool) {
	if t.kind != OccupancyPassing {
		return 0, false
	}
	return t.passer, true
}

// Occupancy returns a copy of the tile's occupancy state.
func (t *Tile) Occupancy() Occupancy {
	o := Occupancy{Kind: t.kind}
	if t.kind != OccupancyEmpty {
		o.Occupant = t.occupant
	}
	if t.kind == OccupancyPassing {
		o.Passer = t.passer
		o.Dwell = t.dwell
	}
	return o
}

// Occupy places p as primary occupant and marks the tile advanced.
// Fails with ErrOccupancyConflict unless the tile is empty.
func (t *Tile) Occupy(p PassengerID) error {
	if t.kind != OccupancyEmpty {
		return fmt.Errorf("occupy with passenger %d: tile holds passenger %d: %w", p, t.occupant, ErrOccupancyConflict)
	}
	t.kind = OccupancyOccupied
	t.occupant = p
	t.advanced = true
	return nil
}

// Free removes and returns the primary occupant. A waiting passer is
// promoted to primary occupant in the same call.
func (t *Tile) Free() (PassengerID, error) {
	switch t.kind {
	case OccupancyEmpty:
		return 0, ErrNoOccupant
	case OccupancyPassing:
		p := t.occupant
		t.occupant = t.passer
		t.passer = 0
		t.dwell = 0
		t.arrived = false
		t.kind = OccupancyOccupied
		return p, nil
	default:
		p := t.occupant
		t.occupant = 0
		t.kind = OccupancyEmpty
		return p, nil
	}
}

// PassIn lets p temporarily share this tile with its primary occupant.
// Requires an occupied tile without a passer. The tick of arrival does not
// count towards the passer's dwell.
func (t *Tile) PassIn(p PassengerID) error {
	if t.kind != OccupancyOccupied {
		return fmt.Errorf("pass in passenger %d on %s tile: %w", p, t.kind, ErrOccupancyConflict)
	}
	t.kind = OccupancyPassing
	t.passer = p
	t.dwell = 0
	t.arrived = true
	return nil
}

// PassOut removes and returns the passer.
func (t *Tile) PassOut() (PassengerID, error) {
	if t.kind != OccupancyPassing {
		return 0, ErrNoPasser
	}
	p := t.passer
	t.passer = 0
	t.dwell = 0
	t.arrived = false
	t.kind = OccupancyOccupied
	return p, nil
}

// IsAllowingPassage reports whether another passenger may enter this tile,
// either by occupying it (empty) or by passing in (occupied).
// fixedOccupant is true when the primary occupant is seated here and does
// not stand aside; a Seat tile with a fixed occupant is impassable.
func (t *Tile) IsAllowingPassage(fixedOccupant bool) bool {
	if !t.variant.Passable() {
		return false
	}
	switch t.kind {
	case OccupancyEmpty:
		return true
	case OccupancyPassing:
		return false
	}
	return !(t.variant == VariantSeat && fixedOccupant)
}

// PassDelayElapsed reports whether the passer has dwelt PassWait ticks.
// Each call before that increments the dwell counter, except in the tick the
// passer arrived; the scheduler calls it once per tick for each passing tile.
// Whether the sweep reaches the tile before or after the passer enters it
// therefore makes no difference.
func (t *Tile) PassDelayElapsed() bool {
	if t.kind != OccupancyPassing || t.arrived {
		return false
	}
	if t.dwell >= PassWait {
		return true
	}
	t.dwell++
	return false
}

// resetAdvanced clears the per-tick flags at the end of a tick.
func (t *Tile) resetAdvanced() {
	t.advanced = false
	t.arrived = false
}

func (t *Tile) String() string {
	return fmt.Sprintf("Tile: (Variant: %s, Occupancy: %s)", t.variant, t.kind)
}
