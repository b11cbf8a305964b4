// Tracks run-wide and per-passenger statistics such as moves, passes,
// stows, and the tick at which each passenger sat down.

package sim

import (
	"fmt"
	"io"
	"sort"
)

// Metrics aggregates statistics about the simulation
// for final reporting. Useful for comparing boarding strategies.
type Metrics struct {
	Ticks        int // Number of ticks executed
	Moves        int // Relocations and pass-ins, passers included
	PassIns      int // Moves that ended as a passer in an occupied tile
	Stows        int // Baggage stow actions
	Ingresses    int // Passengers admitted through an entrance
	BlockedMoves int // Policy choices refused by the destination tile
	PeakQueueLen int // Longest waiting queue observed at a tick boundary

	SeatedAt map[PassengerID]int // passenger → tick it first sat in its own seat
}

func NewMetrics() *Metrics {
	return &Metrics{
		SeatedAt: make(map[PassengerID]int),
	}
}

func (m *Metrics) recordTick(s *Simulator) {
	m.Ticks = s.tick
	if q := s.WaitQ.Len(); q > m.PeakQueueLen {
		m.PeakQueueLen = q
	}
	for _, id := range s.seats {
		if _, done := m.SeatedAt[id]; done {
			continue
		}
		if s.isSeated(id) {
			m.SeatedAt[id] = s.tick
		}
	}
}

// MeanSeatedTick returns the average tick at which passengers sat down.
func (m *Metrics) MeanSeatedTick() float64 {
	if len(m.SeatedAt) == 0 {
		return 0
	}
	sum := 0
	for _, t := range m.SeatedAt {
		sum += t
	}
	return float64(sum) / float64(len(m.SeatedAt))
}

// Print writes aggregated metrics at the end of the simulation.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Ticks                : %d\n", m.Ticks)
	fmt.Fprintf(w, "Passengers Seated    : %d\n", len(m.SeatedAt))
	fmt.Fprintf(w, "Moves                : %d\n", m.Moves)
	fmt.Fprintf(w, "Pass-ins             : %d\n", m.PassIns)
	fmt.Fprintf(w, "Stows                : %d\n", m.Stows)
	fmt.Fprintf(w, "Blocked Moves        : %d\n", m.BlockedMoves)
	fmt.Fprintf(w, "Peak Queue Length    : %d\n", m.PeakQueueLen)
	if len(m.SeatedAt) > 0 {
		fmt.Fprintf(w, "Mean Seated Tick     : %.2f\n", m.MeanSeatedTick())
		fmt.Fprintf(w, "Last Seated Tick     : %d\n", m.lastSeated())
	}
}

func (m *Metrics) lastSeated() int {
	ticks := make([]int, 0, len(m.SeatedAt))
	for _, t := range m.SeatedAt {
		ticks = append(ticks, t)
	}
	sort.Ints(ticks)
	return ticks[len(ticks)-1]
}
