package sim

// Read-only introspection of a Simulator, for renderers, reporters and tests.

// InBounds reports whether at lies inside the grid.
func (s *Simulator) InBounds(at Coord) bool {
	return at.X >= 0 && at.Y >= 0 && at.X < s.width && at.Y < s.height
}

// Size returns the grid width and height.
func (s *Simulator) Size() (width, height int) {
	return s.width, s.height
}

// Tick returns the number of ticks executed so far.
func (s *Simulator) Tick() int {
	return s.tick
}

// Failed returns the fatal error that aborted the run, or nil.
func (s *Simulator) Failed() error {
	return s.failed
}

// Variant returns the variant of the tile at `at`.
func (s *Simulator) Variant(at Coord) (TileVariant, error) {
	if !s.InBounds(at) {
		return "", configErrorf("coord", "%s outside %dx%d grid", at, s.width, s.height)
	}
	return s.tiles[s.index(at)].variant, nil
}

// Occupancy returns the occupancy of the tile at `at`.
func (s *Simulator) Occupancy(at Coord) (Occupancy, error) {
	if !s.InBounds(at) {
		return Occupancy{}, configErrorf("coord", "%s outside %dx%d grid", at, s.width, s.height)
	}
	return s.tiles[s.index(at)].Occupancy(), nil
}

// IsAllowingPassage reports whether the tile at `at` would take another passenger now.
func (s *Simulator) IsAllowingPassage(at Coord) (bool, error) {
	if !s.InBounds(at) {
		return false, configErrorf("coord", "%s outside %dx%d grid", at, s.width, s.height)
	}
	return s.allowing(at), nil
}

// Passenger returns a copy of the passenger with the given ID.
func (s *Simulator) Passenger(id PassengerID) (Passenger, bool) {
	if id < 0 || int(id) >= len(s.passengers) {
		return Passenger{}, false
	}
	return s.passengers[id], true
}

// NumPassengers returns the number of passengers ever enqueued.
func (s *Simulator) NumPassengers() int {
	return len(s.passengers)
}

// SeatedCount returns how many passengers occupy their own seat.
func (s *Simulator) SeatedCount() int {
	return s.countSeated()
}

// Locate returns where passenger id currently is. The Coord is meaningless
// for LocationQueued.
func (s *Simulator) Locate(id PassengerID) (Location, Coord) {
	for i := range s.tiles {
		t := &s.tiles[i]
		if occ, ok := t.Occupant(); ok && occ == id {
			at := s.coord(i)
			if s.isSeated(id) {
				return LocationSeated, at
			}
			return LocationStanding, at
		}
		if passer, ok := t.Passer(); ok && passer == id {
			return LocationPassing, s.coord(i)
		}
	}
	return LocationQueued, Coord{}
}

// CellView is one tile of a Snapshot.
type CellView struct {
	Variant   TileVariant
	Occupancy Occupancy
	Seated    bool // primary occupant sits in its own seat
}

// Snapshot is an immutable copy of the grid state after some tick.
type Snapshot struct {
	Width    int
	Height   int
	Tick     int
	QueueLen int
	Complete bool
	cells    []CellView // column-major
}

// At returns the cell at `at`. Panics if out of bounds.
func (sn Snapshot) At(at Coord) CellView {
	return sn.cells[at.X*sn.Height+at.Y]
}

// Occupants returns the number of passengers on the grid, passers included.
func (sn Snapshot) Occupants() int {
	n := 0
	for _, c := range sn.cells {
		switch c.Occupancy.Kind {
		case OccupancyOccupied:
			n++
		case OccupancyPassing:
			n += 2
		}
	}
	return n
}

// Snapshot copies the current grid state.
func (s *Simulator) Snapshot() Snapshot {
	sn := Snapshot{
		Width:    s.width,
		Height:   s.height,
		Tick:     s.tick,
		QueueLen: s.WaitQ.Len(),
		Complete: s.IsComplete(),
		cells:    make([]CellView, len(s.tiles)),
	}
	for i := range s.tiles {
		t := &s.tiles[i]
		cv := CellView{Variant: t.variant, Occupancy: t.Occupancy()}
		if occ, ok := t.Occupant(); ok {
			cv.Seated = s.isSeated(occ)
		}
		sn.cells[i] = cv
	}
	return sn
}
