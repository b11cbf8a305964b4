// Package trace provides tick-by-tick recording for boarding simulations.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Point is a grid coordinate.
type Point struct {
	X int
	Y int
}

// MoveKind classifies a recorded passenger action.
type MoveKind string

const (
	MoveIngress  MoveKind = "ingress"   // queue → entrance
	MoveRelocate MoveKind = "relocate"  // primary → empty tile
	MovePassIn   MoveKind = "pass-in"   // primary → occupied tile, as passer
	MovePassOut  MoveKind = "pass-out"  // passer → empty tile
	MovePassOver MoveKind = "pass-over" // passer → another occupied tile, as passer
	MoveStow     MoveKind = "stow"      // baggage cleared in place
)

// MoveRecord captures a single passenger action within a tick.
type MoveRecord struct {
	Tick      int // tick being executed (1-based)
	Passenger int
	Kind      MoveKind
	From      Point
	To        Point
}

// CellRecord captures the occupants of one tile. -1 means none.
type CellRecord struct {
	At       Point
	Occupant int
	Passer   int
}

// FrameRecord captures the occupied cells and queue length after a tick.
// Empty cells are omitted; cells are in sweep order.
type FrameRecord struct {
	Tick     int
	QueueLen int
	Cells    []CellRecord
}
