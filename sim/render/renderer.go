package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/boardsim/boardsim/sim"
)

// Renderer draws snapshots to a Screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the grid with its index gutters, then a status line below it.
func (r *Renderer) Render(sn sim.Snapshot, status string) {
	r.screen.Frame(func() {
		gutter := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
		for x := 0; x < sn.Width; x++ {
			r.screen.SetText(gridLeft+x, 0, string(rune('0'+x%10)), gutter)
		}
		for y := 0; y < sn.Height; y++ {
			r.screen.SetText(0, gridTop+y, fmt.Sprintf("%3d", y), gutter)
			for x := 0; x < sn.Width; x++ {
				at := sim.Coord{X: x, Y: y}
				cell := sn.At(at)
				r.screen.SetCell(at, Glyph(cell), r.styleFor(cell))
			}
		}
		r.RenderMessage(status, gridTop+sn.Height+1)
	})
}

// styleFor returns the style of one cell: seated passengers green, standing
// ones yellow, passers red.
func (r *Renderer) styleFor(c sim.CellView) tcell.Style {
	switch c.Occupancy.Kind {
	case sim.OccupancyPassing:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case sim.OccupancyOccupied:
		if c.Seated {
			return tcell.StyleDefault.Foreground(tcell.ColorGreen)
		}
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	}
	switch c.Variant {
	case sim.VariantSeat:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	case sim.VariantEntrance:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	case sim.VariantBlocked:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.SetText(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}
