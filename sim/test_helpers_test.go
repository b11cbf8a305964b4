package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boardsim/boardsim/sim/internal/testutil"
)

// newTestSimulator builds a simulator over an all-Aisle grid with the given
// overrides and enqueues specs in order.
func newTestSimulator(t *testing.T, width, height int, tiles map[Coord]TileVariant, yieldSeats bool, specs ...PassengerSpec) *Simulator {
	t.Helper()
	s, err := NewSimulator(GridConfig{Width: width, Height: height, Tiles: tiles, YieldSeats: yieldSeats})
	require.NoError(t, err)
	require.NoError(t, s.EnqueueAll(specs))
	return s
}

// seatAt returns a pointer to a fresh Coord.
func seatAt(x, y int) *Coord {
	return &Coord{X: x, Y: y}
}

// basicArrival is the 10x10 all-Aisle grid with an entrance at (2,2) and one
// passenger bound for (1,1).
func basicArrival(t *testing.T, baggage bool) *Simulator {
	t.Helper()
	return newTestSimulator(t, 10, 10,
		map[Coord]TileVariant{{X: 2, Y: 2}: VariantEntrance}, false,
		PassengerSpec{Name: "p0", Seat: seatAt(1, 1), Baggage: baggage})
}

// cabinTiles returns a small cabin: seat columns at x=0,1 and x=w-2,w-1,
// aisle in between, entrance at (2, h-1).
func cabinTiles(width, height int) map[Coord]TileVariant {
	tiles := make(map[Coord]TileVariant)
	for y := 0; y < height; y++ {
		for _, x := range []int{0, 1, width - 2, width - 1} {
			tiles[Coord{X: x, Y: y}] = VariantSeat
		}
	}
	tiles[Coord{X: 2, Y: height - 1}] = VariantEntrance
	return tiles
}

// fullCabinSpecs assigns one passenger to every seat of cabinTiles, in an
// order shuffled by seed.
func fullCabinSpecs(width, height int, seed int64) []PassengerSpec {
	var specs []PassengerSpec
	for y := 0; y < height; y++ {
		for _, x := range []int{0, 1, width - 2, width - 1} {
			specs = append(specs, PassengerSpec{Name: Coord{X: x, Y: y}.String(), Seat: seatAt(x, y), Baggage: (x+y)%3 == 0})
		}
	}
	rng := NewPartitionedRNG(NewSimulationKey(seed)).ForSubsystem(SubsystemBoarding)
	rng.Shuffle(len(specs), func(i, j int) { specs[i], specs[j] = specs[j], specs[i] })
	return specs
}

// goldenSimulator builds a simulator from a golden dataset case.
func goldenSimulator(t *testing.T, tc testutil.GoldenTestCase) *Simulator {
	t.Helper()
	tiles := make(map[Coord]TileVariant, len(tc.Tiles))
	for _, gt := range tc.Tiles {
		tiles[Coord{X: gt.X, Y: gt.Y}] = TileVariant(gt.Variant)
	}
	specs := make([]PassengerSpec, 0, len(tc.Passengers))
	for _, gp := range tc.Passengers {
		spec := PassengerSpec{Name: gp.Name, Baggage: gp.Baggage}
		if gp.Seat != nil {
			spec.Seat = seatAt(gp.Seat[0], gp.Seat[1])
		}
		specs = append(specs, spec)
	}
	return newTestSimulator(t, tc.Width, tc.Height, tiles, tc.YieldSeats, specs...)
}

// assertConservation checks that every passenger ever enqueued is either
// queued or on the grid exactly once.
func assertConservation(t *testing.T, s *Simulator) {
	t.Helper()
	sn := s.Snapshot()
	if got := sn.QueueLen + sn.Occupants(); got != s.NumPassengers() {
		t.Fatalf("tick %d: queue(%d) + on-grid(%d) = %d, want %d",
			s.Tick(), sn.QueueLen, sn.Occupants(), got, s.NumPassengers())
	}
	seen := make(map[PassengerID]bool)
	for _, id := range s.WaitQ.Items() {
		seen[id] = true
	}
	for x := 0; x < sn.Width; x++ {
		for y := 0; y < sn.Height; y++ {
			o := sn.At(Coord{X: x, Y: y}).Occupancy
			ids := []PassengerID{}
			switch o.Kind {
			case OccupancyOccupied:
				ids = append(ids, o.Occupant)
			case OccupancyPassing:
				ids = append(ids, o.Occupant, o.Passer)
			}
			for _, id := range ids {
				if seen[id] {
					t.Fatalf("tick %d: passenger %d appears twice", s.Tick(), id)
				}
				seen[id] = true
			}
		}
	}
}
