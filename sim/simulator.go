// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/boardsim/boardsim/sim/trace"
)

// Simulator is the core object that holds the grid, the passenger arena, the
// waiting queue, and the tick scheduler.
type Simulator struct {
	width  int
	height int
	// tiles is indexed column-major (x*height + y), the same order the sweep visits.
	tiles []Tile
	// passengers is the arena; PassengerID indexes it.
	passengers []Passenger
	// seats maps an assigned seat to its passenger, to reject duplicates.
	seats map[Coord]PassengerID
	// WaitQ holds passengers not yet on the grid, in ingress order.
	WaitQ      *WaitingQueue
	policy     MovementPolicy
	yieldSeats bool
	tick       int
	started    bool
	// failed is the fatal error that aborted the run, if any.
	failed  error
	Metrics *Metrics
	trace   *trace.SimulationTrace
}

// NewSimulator builds a Simulator from a validated GridConfig.
// Every cell not listed in cfg.Tiles is Aisle.
func NewSimulator(cfg GridConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{
		width:      cfg.Width,
		height:     cfg.Height,
		tiles:      make([]Tile, cfg.Width*cfg.Height),
		seats:      make(map[Coord]PassengerID),
		WaitQ:      &WaitingQueue{},
		policy:     NewMovementPolicy(cfg.Policy),
		yieldSeats: cfg.YieldSeats,
		Metrics:    NewMetrics(),
	}
	for i := range s.tiles {
		s.tiles[i] = NewTile(VariantAisle)
	}
	for at, v := range cfg.Tiles {
		s.tiles[s.index(at)] = NewTile(v)
	}
	return s, nil
}

// SetMovementPolicy replaces the movement policy. Only allowed before the first tick.
func (s *Simulator) SetMovementPolicy(p MovementPolicy) error {
	if s.started {
		return configErrorf("policy", "cannot change movement policy after the run started")
	}
	if p == nil {
		return configErrorf("policy", "movement policy must not be nil")
	}
	s.policy = p
	return nil
}

// SetTrace attaches a trace collector. Pass nil to disable tracing.
func (s *Simulator) SetTrace(st *trace.SimulationTrace) {
	s.trace = st
}

// Trace returns the attached trace collector, or nil.
func (s *Simulator) Trace() *trace.SimulationTrace {
	return s.trace
}

// SetVariant overwrites the variant of the tile at `at`. Pre-run only.
func (s *Simulator) SetVariant(at Coord, v TileVariant) error {
	if s.started {
		return configErrorf("tiles", "cannot change %s after the run started", at)
	}
	if !s.InBounds(at) {
		return configErrorf("tiles", "coordinate %s outside %dx%d grid", at, s.width, s.height)
	}
	if !IsValidVariant(v) {
		return configErrorf("tiles", "unknown variant %q at %s", v, at)
	}
	s.tiles[s.index(at)] = NewTile(v)
	return nil
}

// Enqueue adds a passenger to the back of the waiting queue and returns its ID.
// The seat, when set, must be inside the grid and not assigned to anyone else.
func (s *Simulator) Enqueue(spec PassengerSpec) (PassengerID, error) {
	id := PassengerID(len(s.passengers))
	p := Passenger{ID: id, Name: spec.Name, Baggage: spec.Baggage}
	if spec.Seat != nil {
		seat := *spec.Seat
		if !s.InBounds(seat) {
			return 0, configErrorf("passengers", "seat %s of %q outside %dx%d grid", seat, spec.Name, s.width, s.height)
		}
		if other, taken := s.seats[seat]; taken {
			return 0, configErrorf("passengers", "seat %s of %q already assigned to %q", seat, spec.Name, s.passengers[other].Name)
		}
		s.seats[seat] = id
		p.Seat = &seat
	}
	s.passengers = append(s.passengers, p)
	s.WaitQ.Enqueue(id)
	return id, nil
}

// EnqueueAll enqueues specs in order, stopping at the first error.
func (s *Simulator) EnqueueAll(specs []PassengerSpec) error {
	for i, spec := range specs {
		if _, err := s.Enqueue(spec); err != nil {
			return fmt.Errorf("passenger %d: %w", i, err)
		}
	}
	return nil
}

// Step advances the simulation by exactly one tick.
//
// Every non-Blocked tile not yet advanced this tick is visited in SweepOrder:
//  1. its primary occupant acts (wait, stow, or move/pass in),
//  2. its passer acts once its dwell has elapsed,
//  3. an empty Entrance admits the next queued passenger.
//
// A reset pass then clears every advanced flag. An ImpossibleMoveError is
// fatal: the run is marked failed and every later Step returns it.
func (s *Simulator) Step() error {
	if s.failed != nil {
		return s.failed
	}
	s.started = true
	s.tick++
	for x := 0; x < s.width; x++ {
		for y := 0; y < s.height; y++ {
			at := Coord{X: x, Y: y}
			t := &s.tiles[s.index(at)]
			if !t.variant.Passable() || t.advanced {
				continue
			}
			if err := s.advanceTile(at, t); err != nil {
				s.failed = err
				s.resetAdvanced()
				logrus.Errorf("[tick %06d] run aborted: %v", s.tick, err)
				return err
			}
		}
	}
	s.resetAdvanced()
	s.Metrics.recordTick(s)
	if s.trace != nil {
		s.trace.RecordFrame(s.frame())
	}
	logrus.Debugf("[tick %06d] queue=%d seated=%d/%d", s.tick, s.WaitQ.Len(), s.countSeated(), s.countAssigned())
	return nil
}

func (s *Simulator) advanceTile(at Coord, t *Tile) error {
	if id, ok := t.Occupant(); ok {
		if err := s.actPrimary(at, t, id); err != nil {
			return err
		}
	}
	if id, ok := t.Passer(); ok && t.PassDelayElapsed() {
		if err := s.actPasser(at, t, id); err != nil {
			return err
		}
	}
	if t.variant == VariantEntrance && t.IsEmpty() {
		if id, ok := s.WaitQ.Dequeue(); ok {
			if err := t.Occupy(id); err != nil {
				return err
			}
			s.Metrics.Ingresses++
			s.recordMove(trace.MoveIngress, id, at, at)
			logrus.Debugf("[tick %06d] passenger %d boards at %s", s.tick, id, at)
		}
	}
	return nil
}

// decide asks the policy for id's action at `at`, handling Stow in place.
// It returns the destination of a movement, or ok=false if id stays put.
func (s *Simulator) decide(at Coord, id PassengerID) (dest Coord, ok bool, err error) {
	p := &s.passengers[id]
	a := s.policy.Decide(at, p.Seat, p.Baggage, s.neighborhood(at))
	switch {
	case a == ActionWait:
		return at, false, nil
	case a == ActionStow:
		p.Baggage = false
		s.Metrics.Stows++
		s.recordMove(trace.MoveStow, id, at, at)
		logrus.Debugf("[tick %06d] passenger %d stows baggage at %s", s.tick, id, at)
		return at, false, nil
	case !a.IsMove():
		return at, false, &ImpossibleMoveError{Tick: s.tick, Passenger: id, From: at, Action: a}
	}
	dest = at.Step(a)
	if !s.InBounds(dest) {
		return at, false, &ImpossibleMoveError{Tick: s.tick, Passenger: id, From: at, Action: a}
	}
	if !s.allowing(dest) {
		// The policy picked a tile that will not take the passenger; stay put.
		s.Metrics.BlockedMoves++
		logrus.Debugf("[tick %06d] passenger %d blocked moving %s from %s", s.tick, id, a, at)
		return at, false, nil
	}
	return dest, true, nil
}

func (s *Simulator) actPrimary(at Coord, t *Tile, id PassengerID) error {
	dest, ok, err := s.decide(at, id)
	if err != nil || !ok {
		return err
	}
	dt := &s.tiles[s.index(dest)]
	moved, err := t.Free()
	if err != nil {
		return err
	}
	if dt.IsEmpty() {
		if err := dt.Occupy(moved); err != nil {
			return err
		}
		s.Metrics.Moves++
		s.recordMove(trace.MoveRelocate, moved, at, dest)
		logrus.Debugf("[tick %06d] passenger %d moves %s -> %s", s.tick, moved, at, dest)
		return nil
	}
	if err := dt.PassIn(moved); err != nil {
		return err
	}
	s.Metrics.Moves++
	s.Metrics.PassIns++
	s.recordMove(trace.MovePassIn, moved, at, dest)
	logrus.Debugf("[tick %06d] passenger %d passes into %s from %s", s.tick, moved, dest, at)
	return nil
}

func (s *Simulator) actPasser(at Coord, t *Tile, id PassengerID) error {
	dest, ok, err := s.decide(at, id)
	if err != nil || !ok {
		return err
	}
	dt := &s.tiles[s.index(dest)]
	moved, err := t.PassOut()
	if err != nil {
		return err
	}
	if dt.IsEmpty() {
		if err := dt.Occupy(moved); err != nil {
			return err
		}
		s.Metrics.Moves++
		s.recordMove(trace.MovePassOut, moved, at, dest)
		logrus.Debugf("[tick %06d] passer %d steps out %s -> %s", s.tick, moved, at, dest)
		return nil
	}
	if err := dt.PassIn(moved); err != nil {
		return err
	}
	s.Metrics.Moves++
	s.Metrics.PassIns++
	s.recordMove(trace.MovePassOver, moved, at, dest)
	logrus.Debugf("[tick %06d] passer %d passes on %s -> %s", s.tick, moved, at, dest)
	return nil
}

// RunToCompletion steps until IsComplete or until the simulator has run
// maxTicks ticks in total. It returns the tick count on completion, or a
// *NonTerminationError when the bound is exhausted.
func (s *Simulator) RunToCompletion(maxTicks int) (int, error) {
	if maxTicks <= 0 {
		return s.tick, configErrorf("max_ticks", "must be positive, got %d", maxTicks)
	}
	logrus.Infof("[tick %06d] running %dx%d grid, %d passengers, bound %d ticks",
		s.tick, s.width, s.height, len(s.passengers), maxTicks)
	for !s.IsComplete() {
		if s.tick >= maxTicks {
			return s.tick, &NonTerminationError{MaxTicks: maxTicks, Seated: s.countSeated(), Assigned: s.countAssigned()}
		}
		if err := s.Step(); err != nil {
			return s.tick, err
		}
	}
	logrus.Infof("[tick %06d] boarding complete", s.tick)
	return s.tick, nil
}

// IsComplete reports whether every passenger with an assigned seat is the
// primary occupant of that seat.
func (s *Simulator) IsComplete() bool {
	for _, id := range s.seats {
		if !s.isSeated(id) {
			return false
		}
	}
	return true
}

func (s *Simulator) isSeated(id PassengerID) bool {
	p := s.passengers[id]
	if p.Seat == nil {
		return false
	}
	occ, ok := s.tiles[s.index(*p.Seat)].Occupant()
	return ok && occ == id
}

func (s *Simulator) countSeated() int {
	n := 0
	for _, id := range s.seats {
		if s.isSeated(id) {
			n++
		}
	}
	return n
}

func (s *Simulator) countAssigned() int {
	return len(s.seats)
}

// allowing reports whether the tile at `at` can take another passenger.
func (s *Simulator) allowing(at Coord) bool {
	t := &s.tiles[s.index(at)]
	fixed := false
	if id, ok := t.Occupant(); ok && !s.yieldSeats {
		fixed = s.isSeated(id)
	}
	return t.IsAllowingPassage(fixed)
}

func (s *Simulator) neighborhood(at Coord) Neighborhood {
	nb := Neighborhood{Here: s.tiles[s.index(at)].variant}
	look := func(a Action) Neighbor {
		n := at.Step(a)
		if !s.InBounds(n) {
			return Neighbor{}
		}
		return Neighbor{InBounds: true, Variant: s.tiles[s.index(n)].variant, Allowing: s.allowing(n)}
	}
	nb.North = look(ActionNorth)
	nb.South = look(ActionSouth)
	nb.East = look(ActionEast)
	nb.West = look(ActionWest)
	return nb
}

func (s *Simulator) resetAdvanced() {
	for i := range s.tiles {
		s.tiles[i].resetAdvanced()
	}
}

func (s *Simulator) recordMove(kind trace.MoveKind, id PassengerID, from, to Coord) {
	if s.trace == nil {
		return
	}
	s.trace.RecordMove(trace.MoveRecord{
		Tick:      s.tick,
		Passenger: int(id),
		Kind:      kind,
		From:      trace.Point{X: from.X, Y: from.Y},
		To:        trace.Point{X: to.X, Y: to.Y},
	})
}

func (s *Simulator) frame() trace.FrameRecord {
	f := trace.FrameRecord{Tick: s.tick, QueueLen: s.WaitQ.Len()}
	for i := range s.tiles {
		t := &s.tiles[i]
		occ, ok := t.Occupant()
		if !ok {
			continue
		}
		at := s.coord(i)
		cell := trace.CellRecord{At: trace.Point{X: at.X, Y: at.Y}, Occupant: int(occ), Passer: -1}
		if passer, ok := t.Passer(); ok {
			cell.Passer = int(passer)
		}
		f.Cells = append(f.Cells, cell)
	}
	return f
}

func (s *Simulator) index(at Coord) int {
	return at.X*s.height + at.Y
}

func (s *Simulator) coord(i int) Coord {
	return Coord{X: i / s.height, Y: i % s.height}
}
