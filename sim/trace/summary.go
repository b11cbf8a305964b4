package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalMoves      int
	KindCounts      map[MoveKind]int
	MaxStepDistance int         // largest Manhattan distance of a single move
	MovesPerTick    map[int]int // tick → number of movement records
	PassengerMoves  map[int]int // passenger → number of movement records (stows excluded)
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		KindCounts:     make(map[MoveKind]int),
		MovesPerTick:   make(map[int]int),
		PassengerMoves: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalMoves = len(st.Moves)
	for _, m := range st.Moves {
		summary.KindCounts[m.Kind]++
		if m.Kind == MoveStow || m.Kind == MoveIngress {
			continue
		}
		summary.MovesPerTick[m.Tick]++
		summary.PassengerMoves[m.Passenger]++
		if d := distance(m.From, m.To); d > summary.MaxStepDistance {
			summary.MaxStepDistance = d
		}
	}
	return summary
}

// MaxMovesPerPassengerPerTick returns the largest number of movement records
// any single passenger has within one tick. A correct scheduler yields <= 1.
func MaxMovesPerPassengerPerTick(st *SimulationTrace) int {
	if st == nil {
		return 0
	}
	type key struct{ tick, passenger int }
	counts := make(map[key]int)
	maxCount := 0
	for _, m := range st.Moves {
		if m.Kind == MoveStow {
			continue
		}
		k := key{m.Tick, m.Passenger}
		counts[k]++
		if counts[k] > maxCount {
			maxCount = counts[k]
		}
	}
	return maxCount
}

func distance(a, b Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
