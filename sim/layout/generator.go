package layout

import (
	"fmt"
	"sort"

	"github.com/boardsim/boardsim/sim"
)

// Boarding patterns accepted by Generate.
const (
	PatternRandom      = "random"
	PatternBackToFront = "back-to-front"
	PatternFrontToBack = "front-to-back"
	PatternWindowFirst = "window-first"
	PatternAisleFirst  = "aisle-first"
)

var validPatterns = map[string]bool{
	"":                 true,
	PatternRandom:      true,
	PatternBackToFront: true,
	PatternFrontToBack: true,
	PatternWindowFirst: true,
	PatternAisleFirst:  true,
}

// IsValidPattern returns true if name is a recognized boarding pattern.
// Empty string is accepted and means random.
func IsValidPattern(name string) bool {
	return validPatterns[name]
}

// ValidPatternNames returns the accepted pattern names, sorted, without "".
func ValidPatternNames() []string {
	names := make([]string, 0, len(validPatterns))
	for name := range validPatterns {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// MinStandardWidth is the narrowest cabin StandardLayout accepts:
// two seats, an aisle, two seats.
const MinStandardWidth = 5

// StandardLayout returns a single-aisle cabin: seat columns at x=0,1 and
// x=width-2,width-1, aisle in between, and the entrance at (2, height-1).
// Seated passengers yield so window seats stay reachable.
func StandardLayout(width, height int) (sim.GridConfig, error) {
	if width < MinStandardWidth {
		return sim.GridConfig{}, &sim.ConfigurationError{Field: "width", Reason: fmt.Sprintf("standard layout needs width >= %d, got %d", MinStandardWidth, width)}
	}
	if height <= 0 {
		return sim.GridConfig{}, &sim.ConfigurationError{Field: "height", Reason: fmt.Sprintf("must be positive, got %d", height)}
	}
	tiles := make(map[sim.Coord]sim.TileVariant, 4*height+1)
	for y := 0; y < height; y++ {
		for _, x := range []int{0, 1, width - 2, width - 1} {
			tiles[sim.Coord{X: x, Y: y}] = sim.VariantSeat
		}
	}
	tiles[sim.Coord{X: 2, Y: height - 1}] = sim.VariantEntrance
	return sim.GridConfig{
		Width:      width,
		Height:     height,
		Tiles:      tiles,
		YieldSeats: true,
	}, nil
}

// Seats returns every Seat tile of cfg ordered by Y then X.
func Seats(cfg sim.GridConfig) []sim.Coord {
	var seats []sim.Coord
	for at, v := range cfg.Tiles {
		if v == sim.VariantSeat {
			seats = append(seats, at)
		}
	}
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Y != seats[j].Y {
			return seats[i].Y < seats[j].Y
		}
		return seats[i].X < seats[j].X
	})
	return seats
}

// aisleDistance is the lateral distance from a seat to the nearest walkable
// non-seat tile in its row; 0 when the row has none.
func aisleDistance(cfg sim.GridConfig, seat sim.Coord) int {
	best := 0
	for x := 0; x < cfg.Width; x++ {
		v, ok := cfg.Tiles[sim.Coord{X: x, Y: seat.Y}]
		if !ok {
			v = sim.VariantAisle
		}
		if v == sim.VariantSeat || !v.Passable() {
			continue
		}
		d := x - seat.X
		if d < 0 {
			d = -d
		}
		if best == 0 || d < best {
			best = d
		}
	}
	return best
}

// GeneratorSpec describes a generated scenario.
type GeneratorSpec struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Pattern      string  `yaml:"pattern"`
	Seed         int64   `yaml:"seed"`
	BaggageRatio float64 `yaml:"baggage_ratio"`         // fraction of passengers carrying baggage
	LoadFactor   float64 `yaml:"load_factor,omitempty"` // fraction of seats filled; 0 = full
}

// Validate checks dimensions, pattern name and ratios.
func (g *GeneratorSpec) Validate() error {
	if !IsValidPattern(g.Pattern) {
		return fmt.Errorf("unknown boarding pattern %q; valid: %v", g.Pattern, ValidPatternNames())
	}
	if g.BaggageRatio < 0 || g.BaggageRatio > 1 {
		return fmt.Errorf("baggage_ratio must be in [0, 1], got %f", g.BaggageRatio)
	}
	if g.LoadFactor < 0 || g.LoadFactor > 1 {
		return fmt.Errorf("load_factor must be in [0, 1], got %f", g.LoadFactor)
	}
	return nil
}

// Generate builds a StandardLayout and a passenger list boarding in g's
// pattern. Deterministic for equal GeneratorSpecs.
func Generate(g GeneratorSpec) (sim.GridConfig, []sim.PassengerSpec, error) {
	if err := g.Validate(); err != nil {
		return sim.GridConfig{}, nil, fmt.Errorf("invalid generator: %w", err)
	}
	cfg, err := StandardLayout(g.Width, g.Height)
	if err != nil {
		return sim.GridConfig{}, nil, err
	}
	return cfg, Board(cfg, g), nil
}

// Board assigns a passenger to seats of cfg in g's pattern. Only Pattern,
// Seed, BaggageRatio and LoadFactor of g are used.
func Board(cfg sim.GridConfig, g GeneratorSpec) []sim.PassengerSpec {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(g.Seed))
	boardingRNG := rng.ForSubsystem(sim.SubsystemBoarding)
	baggageRNG := rng.ForSubsystem(sim.SubsystemBaggage)

	seats := Seats(cfg)
	// A full shuffle first: it picks the seats left empty under a load
	// factor and randomizes order within the groups of structured patterns.
	boardingRNG.Shuffle(len(seats), func(i, j int) { seats[i], seats[j] = seats[j], seats[i] })
	if g.LoadFactor > 0 && g.LoadFactor < 1 {
		seats = seats[:int(float64(len(seats))*g.LoadFactor)]
	}

	switch g.Pattern {
	case PatternBackToFront:
		sort.SliceStable(seats, func(i, j int) bool { return seats[i].Y < seats[j].Y })
	case PatternFrontToBack:
		sort.SliceStable(seats, func(i, j int) bool { return seats[i].Y > seats[j].Y })
	case PatternWindowFirst:
		sort.SliceStable(seats, func(i, j int) bool {
			return aisleDistance(cfg, seats[i]) > aisleDistance(cfg, seats[j])
		})
	case PatternAisleFirst:
		sort.SliceStable(seats, func(i, j int) bool {
			return aisleDistance(cfg, seats[i]) < aisleDistance(cfg, seats[j])
		})
	}

	specs := make([]sim.PassengerSpec, len(seats))
	for i, seat := range seats {
		seat := seat
		specs[i] = sim.PassengerSpec{
			Name:    fmt.Sprintf("passenger_%d", i),
			Seat:    &seat,
			Baggage: baggageRNG.Float64() < g.BaggageRatio,
		}
	}
	return specs
}
