package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardsim/boardsim/sim"
	"github.com/boardsim/boardsim/sim/internal/testutil"
)

// smallCabin is a 5x3 grid: seat (0,0), blocked (4,0), entrance (2,2), with
// one passenger bound for the seat.
func smallCabin(t *testing.T) *sim.Simulator {
	t.Helper()
	s, err := sim.NewSimulator(sim.GridConfig{
		Width:  5,
		Height: 3,
		Tiles: map[sim.Coord]sim.TileVariant{
			{X: 0, Y: 0}: sim.VariantSeat,
			{X: 4, Y: 0}: sim.VariantBlocked,
			{X: 2, Y: 2}: sim.VariantEntrance,
		},
	})
	require.NoError(t, err)
	_, err = s.Enqueue(sim.PassengerSpec{Name: "p0", Seat: &sim.Coord{X: 0, Y: 0}})
	require.NoError(t, err)
	return s
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		name string
		cell sim.CellView
		want rune
	}{
		{"aisle", sim.CellView{Variant: sim.VariantAisle}, GlyphWalkway},
		{"entrance", sim.CellView{Variant: sim.VariantEntrance}, GlyphWalkway},
		{"seat", sim.CellView{Variant: sim.VariantSeat}, GlyphSeat},
		{"blocked", sim.CellView{Variant: sim.VariantBlocked}, GlyphBlocked},
		{"occupied seat", sim.CellView{Variant: sim.VariantSeat, Occupancy: sim.Occupancy{Kind: sim.OccupancyOccupied}}, GlyphOccupied},
		{"passing", sim.CellView{Variant: sim.VariantSeat, Occupancy: sim.Occupancy{Kind: sim.OccupancyPassing}}, GlyphPassing},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Glyph(tc.cell))
		})
	}
}

func TestASCII_EmptyAndAfterIngress(t *testing.T) {
	// GIVEN a fresh small cabin
	s := smallCabin(t)

	// THEN the initial frame shows only tile variants
	testutil.AssertFrame(t, "initial", strings.Join([]string{
		"   01234",
		"  0#***?",
		"  1*****",
		"  2*****",
	}, "\n"), ASCIIString(s.Snapshot()))

	// WHEN one tick runs
	require.NoError(t, s.Step())

	// THEN the passenger stands on the entrance
	testutil.AssertFrame(t, "after tick 1", strings.Join([]string{
		"   01234",
		"  0#***?",
		"  1*****",
		"  2**@**",
	}, "\n"), ASCIIString(s.Snapshot()))
}

func TestASCII_WideGridWrapsColumnIndex(t *testing.T) {
	s, err := sim.NewSimulator(sim.GridConfig{Width: 12, Height: 1, Tiles: map[sim.Coord]sim.TileVariant{{X: 0, Y: 0}: sim.VariantEntrance}})
	require.NoError(t, err)

	got := ASCIIString(s.Snapshot())

	assert.Equal(t, "   012345678901\n  0************\n", got)
}

// screenText reads rows [0,rows) of the screen.
func screenText(s *Screen, width, rows int) string {
	lines := make([]string, rows)
	for y := range lines {
		lines[y] = s.Line(y, width)
	}
	return strings.Join(lines, "\n")
}

func TestRenderer_MatchesASCII(t *testing.T) {
	// GIVEN a simulated terminal and a cabin one tick in
	term := tcell.NewSimulationScreen("UTF-8")
	screen, err := WrapScreen(term)
	require.NoError(t, err)
	defer screen.Close()
	term.SetSize(40, 10)

	s := smallCabin(t)
	require.NoError(t, s.Step())
	sn := s.Snapshot()

	// WHEN the renderer draws it
	NewRenderer(screen).Render(sn, "tick 1")

	// THEN the grid area reads the same as the ASCII frame
	testutil.AssertFrame(t, "screen", ASCIIString(sn), screenText(screen, 40, sn.Height+1))
	// AND the status line sits below the grid after one blank row
	lines := strings.Split(screenText(screen, 40, sn.Height+3), "\n")
	assert.Equal(t, "", lines[sn.Height+1])
	assert.Equal(t, "tick 1", lines[sn.Height+2])
}

func TestRenderer_StyleFor_SeatedDiffersFromStanding(t *testing.T) {
	r := &Renderer{}
	seated := sim.CellView{Variant: sim.VariantSeat, Occupancy: sim.Occupancy{Kind: sim.OccupancyOccupied}, Seated: true}
	standing := sim.CellView{Variant: sim.VariantAisle, Occupancy: sim.Occupancy{Kind: sim.OccupancyOccupied}}

	assert.NotEqual(t, r.styleFor(seated), r.styleFor(standing))
}

func TestScreen_NextKey_ReturnsKeyPresses(t *testing.T) {
	// GIVEN a simulated terminal with a key press queued
	term := tcell.NewSimulationScreen("UTF-8")
	screen, err := WrapScreen(term)
	require.NoError(t, err)
	defer screen.Close()
	term.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)

	// WHEN events are read until a key arrives
	var ev *tcell.EventKey
	for i := 0; i < 5 && ev == nil; i++ {
		ev = screen.NextKey()
	}

	// THEN it is the queued key
	require.NotNil(t, ev)
	assert.Equal(t, tcell.KeyRune, ev.Key())
	assert.Equal(t, 'n', ev.Rune())
}

func TestScreen_SetCell_OffsetsPastGutters(t *testing.T) {
	term := tcell.NewSimulationScreen("UTF-8")
	screen, err := WrapScreen(term)
	require.NoError(t, err)
	defer screen.Close()
	term.SetSize(20, 5)

	screen.Frame(func() { screen.SetCell(sim.Coord{X: 2, Y: 1}, GlyphSeat, tcell.StyleDefault) })

	assert.Equal(t, strings.Repeat(" ", gridLeft+2)+string(GlyphSeat), screen.Line(gridTop+1, 20))
}
