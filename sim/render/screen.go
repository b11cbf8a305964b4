package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/boardsim/boardsim/sim"
)

// Grid cell (0,0) sits at column gridLeft, row gridTop, leaving room for the
// index gutters so the screen reads like ASCII output.
const (
	gridLeft = 3
	gridTop  = 1
)

// Screen is the terminal a cabin is watched on.
type Screen struct {
	term tcell.Screen
}

// NewScreen opens and initializes the controlling terminal.
func NewScreen() (*Screen, error) {
	term, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	return WrapScreen(term)
}

// WrapScreen initializes term and wraps it. Tests pass a tcell.SimulationScreen.
func WrapScreen(term tcell.Screen) (*Screen, error) {
	if err := term.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	term.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	term.Clear()
	return &Screen{term: term}, nil
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.term.Fini()
}

// NextKey blocks for the next terminal event and returns it if it is a key
// press. A resize redraws the whole terminal and returns nil, as does any
// other event.
func (s *Screen) NextKey() *tcell.EventKey {
	switch ev := s.term.PollEvent().(type) {
	case *tcell.EventKey:
		return ev
	case *tcell.EventResize:
		s.term.Sync()
	}
	return nil
}

// Frame clears the buffer, runs draw, then shows the result.
func (s *Screen) Frame(draw func()) {
	s.term.Clear()
	draw()
	s.term.Show()
}

// SetCell draws one grid cell.
func (s *Screen) SetCell(at sim.Coord, r rune, style tcell.Style) {
	s.term.SetContent(gridLeft+at.X, gridTop+at.Y, r, nil, style)
}

// SetText writes text on row y starting at column x.
func (s *Screen) SetText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.term.SetContent(x+i, y, r, nil, style)
	}
}

// Line reads the first width columns of row y, trailing blanks trimmed.
func (s *Screen) Line(y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.term.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}
