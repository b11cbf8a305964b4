// Package render draws grid snapshots as plain text and onto a terminal.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/boardsim/boardsim/sim"
)

// Glyphs used by ASCII and the terminal renderer.
const (
	GlyphWalkway  = '*' // aisle or entrance
	GlyphSeat     = '#'
	GlyphBlocked  = '?'
	GlyphOccupied = '@'
	GlyphPassing  = '&' // occupant plus a passer
)

// Glyph returns the rune drawn for one cell. Occupancy wins over variant.
func Glyph(c sim.CellView) rune {
	switch c.Occupancy.Kind {
	case sim.OccupancyPassing:
		return GlyphPassing
	case sim.OccupancyOccupied:
		return GlyphOccupied
	}
	switch c.Variant {
	case sim.VariantAisle, sim.VariantEntrance:
		return GlyphWalkway
	case sim.VariantSeat:
		return GlyphSeat
	default:
		return GlyphBlocked
	}
}

// ASCII writes sn to w: a header row of column indices modulo 10, then one
// row per Y prefixed with its right-aligned index.
func ASCII(w io.Writer, sn sim.Snapshot) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("   ")
	for x := 0; x < sn.Width; x++ {
		bw.WriteByte(byte('0' + x%10))
	}
	bw.WriteByte('\n')
	for y := 0; y < sn.Height; y++ {
		fmt.Fprintf(bw, "%3d", y)
		for x := 0; x < sn.Width; x++ {
			bw.WriteRune(Glyph(sn.At(sim.Coord{X: x, Y: y})))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ASCIIString returns the ASCII rendering of sn.
func ASCIIString(sn sim.Snapshot) string {
	var sb strings.Builder
	_ = ASCII(&sb, sn)
	return sb.String()
}
