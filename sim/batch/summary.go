package batch

import (
	"fmt"
	"io"
	"sort"
)

// Summary aggregates the results of a batch.
type Summary struct {
	Total     int
	ByKind    map[Kind]int
	MinTicks  int     // over completed units only
	MaxTicks  int     // over completed units only
	MeanTicks float64 // over completed units only
}

// Summarize computes aggregate statistics from batch results.
// Safe for nil or empty input (returns zero-value fields).
func Summarize(results []Result) *Summary {
	s := &Summary{Total: len(results), ByKind: make(map[Kind]int)}
	completed, sum := 0, 0
	for _, r := range results {
		s.ByKind[r.Kind]++
		if r.Kind != KindCompleted {
			continue
		}
		if completed == 0 || r.Ticks < s.MinTicks {
			s.MinTicks = r.Ticks
		}
		if r.Ticks > s.MaxTicks {
			s.MaxTicks = r.Ticks
		}
		sum += r.Ticks
		completed++
	}
	if completed > 0 {
		s.MeanTicks = float64(sum) / float64(completed)
	}
	return s
}

// Print writes one line per result followed by the summary.
func Print(w io.Writer, results []Result) {
	fmt.Fprintln(w, "=== Batch Results ===")
	for _, r := range results {
		line := fmt.Sprintf("[%3d] %-32s %-16s ticks=%-6d seated=%d", r.Index, r.Name, r.Kind, r.Ticks, r.Seated)
		if r.Err != nil && r.Kind != KindCompleted {
			line += fmt.Sprintf("  (%v)", r.Err)
		}
		fmt.Fprintln(w, line)
	}

	s := Summarize(results)
	fmt.Fprintln(w, "=== Batch Summary ===")
	fmt.Fprintf(w, "Units                : %d\n", s.Total)
	kinds := make([]string, 0, len(s.ByKind))
	for k := range s.ByKind {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-19s: %d\n", k, s.ByKind[Kind(k)])
	}
	if s.ByKind[KindCompleted] > 0 {
		fmt.Fprintf(w, "Ticks (min/mean/max) : %d / %.2f / %d\n", s.MinTicks, s.MeanTicks, s.MaxTicks)
	}
}
