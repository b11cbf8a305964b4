package sim

// SweepOrder names the raster order the scheduler uses within a tick.
type SweepOrder string

// SweepColumnMajor visits X ascending in the outer loop and Y (the aisle axis)
// ascending in the inner loop. It is the only supported order.
const SweepColumnMajor SweepOrder = "column-major"

// GridConfig groups the parameters a Simulator is constructed from.
type GridConfig struct {
	Width  int                   // cells across the cabin (must be > 0)
	Height int                   // cells along the aisle (must be > 0)
	Tiles  map[Coord]TileVariant // non-default cells; every other cell is Aisle
	// YieldSeats lets a seated passenger stand aside for a passer. When
	// false a Seat tile holding its own passenger is impassable.
	YieldSeats bool
	Policy     string // movement policy name; "" = greedy
}

// Validate checks dimensions, tile coordinates, tile variants and policy name.
func (c GridConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return configErrorf("size", "width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	for at, v := range c.Tiles {
		if !c.InBounds(at) {
			return configErrorf("tiles", "coordinate %s outside %dx%d grid", at, c.Width, c.Height)
		}
		if !IsValidVariant(v) {
			return configErrorf("tiles", "unknown variant %q at %s", v, at)
		}
	}
	if !IsValidMovementPolicy(c.Policy) {
		return configErrorf("policy", "unknown movement policy %q", c.Policy)
	}
	return nil
}

// InBounds reports whether at lies inside the configured grid.
func (c GridConfig) InBounds(at Coord) bool {
	return at.X >= 0 && at.Y >= 0 && at.X < c.Width && at.Y < c.Height
}
