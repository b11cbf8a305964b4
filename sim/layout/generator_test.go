package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardsim/boardsim/sim"
)

func TestStandardLayout_Shape(t *testing.T) {
	// GIVEN a 6x4 standard cabin
	cfg, err := StandardLayout(6, 4)
	require.NoError(t, err)

	// THEN seat columns are 0,1,4,5, the aisle is 2,3 and the entrance is (2,3)
	assert.Equal(t, 6, cfg.Width)
	assert.Equal(t, 4, cfg.Height)
	assert.True(t, cfg.YieldSeats)
	assert.Equal(t, sim.VariantEntrance, cfg.Tiles[sim.Coord{X: 2, Y: 3}])
	for y := 0; y < 4; y++ {
		for _, x := range []int{0, 1, 4, 5} {
			assert.Equal(t, sim.VariantSeat, cfg.Tiles[sim.Coord{X: x, Y: y}], "(%d,%d)", x, y)
		}
		_, listed := cfg.Tiles[sim.Coord{X: 3, Y: y}]
		assert.False(t, listed, "aisle cells are left to the default")
	}
	assert.Len(t, Seats(cfg), 16)
	require.NoError(t, cfg.Validate())
}

func TestStandardLayout_TooNarrow(t *testing.T) {
	_, err := StandardLayout(4, 10)
	assert.ErrorIs(t, err, sim.ErrConfiguration)
	_, err = StandardLayout(5, 0)
	assert.ErrorIs(t, err, sim.ErrConfiguration)
}

func TestSeats_SortedByRowThenColumn(t *testing.T) {
	cfg, err := StandardLayout(5, 2)
	require.NoError(t, err)

	got := Seats(cfg)

	want := []sim.Coord{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0},
		{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1},
	}
	assert.Equal(t, want, got)
}

func TestAisleDistance(t *testing.T) {
	cfg, err := StandardLayout(6, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, aisleDistance(cfg, sim.Coord{X: 0, Y: 1}))
	assert.Equal(t, 1, aisleDistance(cfg, sim.Coord{X: 1, Y: 1}))
	assert.Equal(t, 1, aisleDistance(cfg, sim.Coord{X: 4, Y: 1}))
	assert.Equal(t, 2, aisleDistance(cfg, sim.Coord{X: 5, Y: 1}))
}

func TestGenerate_EverySeatOnce(t *testing.T) {
	for _, pattern := range ValidPatternNames() {
		t.Run(pattern, func(t *testing.T) {
			cfg, specs, err := Generate(GeneratorSpec{Width: 6, Height: 10, Pattern: pattern, Seed: 1})
			require.NoError(t, err)

			seen := make(map[sim.Coord]bool)
			for _, p := range specs {
				require.NotNil(t, p.Seat)
				assert.False(t, seen[*p.Seat], "seat %s assigned twice", p.Seat)
				seen[*p.Seat] = true
			}
			assert.Len(t, seen, len(Seats(cfg)))
		})
	}
}

func TestGenerate_Patterns_Order(t *testing.T) {
	gen := func(pattern string) []sim.PassengerSpec {
		_, specs, err := Generate(GeneratorSpec{Width: 6, Height: 8, Pattern: pattern, Seed: 9})
		require.NoError(t, err)
		return specs
	}

	// back-to-front: rows never move toward the back
	specs := gen(PatternBackToFront)
	for i := 1; i < len(specs); i++ {
		assert.LessOrEqual(t, specs[i-1].Seat.Y, specs[i].Seat.Y)
	}

	// front-to-back: rows never move toward the front
	specs = gen(PatternFrontToBack)
	for i := 1; i < len(specs); i++ {
		assert.GreaterOrEqual(t, specs[i-1].Seat.Y, specs[i].Seat.Y)
	}

	// window-first: all window seats before any aisle seat
	specs = gen(PatternWindowFirst)
	for i, p := range specs {
		window := p.Seat.X == 0 || p.Seat.X == 5
		assert.Equal(t, i < len(specs)/2, window, "position %d seat %s", i, p.Seat)
	}

	// aisle-first: the opposite
	specs = gen(PatternAisleFirst)
	for i, p := range specs {
		window := p.Seat.X == 0 || p.Seat.X == 5
		assert.Equal(t, i >= len(specs)/2, window, "position %d seat %s", i, p.Seat)
	}
}

func TestGenerate_EveryPatternBoardsCompletely(t *testing.T) {
	sizes := [][2]int{{5, 3}, {6, 8}, {7, 20}, {8, 12}}
	for _, pattern := range ValidPatternNames() {
		for _, size := range sizes {
			for _, ratio := range []float64{0, 0.6, 1} {
				for seed := int64(1); seed <= 3; seed++ {
					g := GeneratorSpec{Width: size[0], Height: size[1], Pattern: pattern, Seed: seed, BaggageRatio: ratio}
					name := fmt.Sprintf("%s/%dx%d/bags=%.1f/seed=%d", pattern, size[0], size[1], ratio, seed)
					t.Run(name, func(t *testing.T) {
						// GIVEN a generated cabin
						cfg, specs, err := Generate(g)
						require.NoError(t, err)
						s, err := sim.NewSimulator(cfg)
						require.NoError(t, err)
						require.NoError(t, s.EnqueueAll(specs))

						// WHEN it runs under a generous bound
						_, err = s.RunToCompletion(5000)

						// THEN every passenger reaches their seat
						require.NoError(t, err)
						assert.True(t, s.IsComplete())
						assert.Equal(t, len(specs), s.SeatedCount())
					})
				}
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	spec := GeneratorSpec{Width: 7, Height: 12, Pattern: PatternRandom, Seed: 42, BaggageRatio: 0.5}
	_, a, err := Generate(spec)
	require.NoError(t, err)
	_, b, err := Generate(spec)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	spec.Seed = 43
	_, c, err := Generate(spec)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerate_BaggageRatioBounds(t *testing.T) {
	_, none, err := Generate(GeneratorSpec{Width: 5, Height: 5, BaggageRatio: 0})
	require.NoError(t, err)
	for _, p := range none {
		assert.False(t, p.Baggage)
	}

	_, all, err := Generate(GeneratorSpec{Width: 5, Height: 5, BaggageRatio: 1})
	require.NoError(t, err)
	for _, p := range all {
		assert.True(t, p.Baggage)
	}
}

func TestGenerate_BaggageDoesNotPerturbOrder(t *testing.T) {
	// GIVEN the same seed with different baggage ratios
	_, light, err := Generate(GeneratorSpec{Width: 6, Height: 6, Seed: 5, BaggageRatio: 0})
	require.NoError(t, err)
	_, heavy, err := Generate(GeneratorSpec{Width: 6, Height: 6, Seed: 5, BaggageRatio: 0.8})
	require.NoError(t, err)

	// THEN the boarding order is identical
	require.Len(t, heavy, len(light))
	for i := range light {
		assert.Equal(t, *light[i].Seat, *heavy[i].Seat)
	}
}

func TestGenerate_LoadFactor(t *testing.T) {
	_, specs, err := Generate(GeneratorSpec{Width: 6, Height: 10, LoadFactor: 0.5})
	require.NoError(t, err)
	assert.Len(t, specs, 20)
}

func TestGeneratorSpec_Validate(t *testing.T) {
	tests := []struct {
		name string
		spec GeneratorSpec
	}{
		{"unknown pattern", GeneratorSpec{Width: 6, Height: 6, Pattern: "zone-by-zone"}},
		{"negative baggage", GeneratorSpec{Width: 6, Height: 6, BaggageRatio: -0.1}},
		{"baggage above one", GeneratorSpec{Width: 6, Height: 6, BaggageRatio: 1.5}},
		{"load factor above one", GeneratorSpec{Width: 6, Height: 6, LoadFactor: 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Generate(tc.spec)
			assert.Error(t, err)
		})
	}
}
