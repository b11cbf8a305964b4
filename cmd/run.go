package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boardsim/boardsim/sim"
	"github.com/boardsim/boardsim/sim/layout"
	"github.com/boardsim/boardsim/sim/render"
	"github.com/boardsim/boardsim/sim/trace"
)

var (
	runFlags   scenarioFlags
	traceLevel string // none, moves or frames
	showFrames bool   // print the grid after every tick
)

// runOptions configures runResolved.
type runOptions struct {
	traceLevel trace.TraceLevel
	showFrames bool
}

// runCmd executes one scenario and prints its metrics and final grid
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one boarding scenario to completion",
	Run: func(cmd *cobra.Command, args []string) {
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q", traceLevel)
		}
		r, err := runFlags.resolve(cmd)
		if err != nil {
			logrus.Fatalf("Unable to load scenario: %v", err)
		}

		logrus.Infof("Starting scenario %q: %dx%d grid, %d passengers, bound %d ticks",
			r.Name, r.Grid.Width, r.Grid.Height, len(r.Passengers), r.MaxTicks)
		startTime := time.Now()

		_, err = runResolved(cmd.OutOrStdout(), r, runOptions{
			traceLevel: trace.TraceLevel(traceLevel),
			showFrames: showFrames,
		})
		switch {
		case errors.Is(err, sim.ErrNonTermination):
			logrus.Fatalf("Boarding did not complete: %v", err)
		case err != nil:
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// runResolved runs r and writes metrics, the final grid and an optional
// trace summary to w. The report is written even when the run fails.
func runResolved(w io.Writer, r *layout.Resolved, opts runOptions) (int, error) {
	s, err := r.NewSimulator()
	if err != nil {
		return 0, err
	}
	var st *trace.SimulationTrace
	if opts.traceLevel != "" && opts.traceLevel != trace.TraceLevelNone {
		st = trace.NewSimulationTrace(trace.TraceConfig{Level: opts.traceLevel})
		s.SetTrace(st)
	}

	var ticks int
	if opts.showFrames {
		ticks, err = runWithFrames(w, s, r.MaxTicks)
	} else {
		ticks, err = s.RunToCompletion(r.MaxTicks)
	}

	fmt.Fprintf(w, "Scenario: %s\n", r.Name)
	s.Metrics.Print(w)
	fmt.Fprintln(w)
	if rerr := render.ASCII(w, s.Snapshot()); rerr != nil {
		return ticks, rerr
	}
	if st != nil {
		printTraceSummary(w, st)
	}
	return ticks, err
}

// runWithFrames steps s one tick at a time, printing the grid after each,
// then lets RunToCompletion report the outcome.
func runWithFrames(w io.Writer, s *sim.Simulator, maxTicks int) (int, error) {
	for !s.IsComplete() && s.Tick() < maxTicks {
		if err := s.Step(); err != nil {
			return s.Tick(), err
		}
		fmt.Fprintf(w, "--- tick %d ---\n", s.Tick())
		if err := render.ASCII(w, s.Snapshot()); err != nil {
			return s.Tick(), err
		}
	}
	return s.RunToCompletion(maxTicks)
}

func printTraceSummary(w io.Writer, st *trace.SimulationTrace) {
	sum := trace.Summarize(st)
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Recorded Moves       : %d\n", sum.TotalMoves)
	for _, kind := range []trace.MoveKind{
		trace.MoveIngress, trace.MoveRelocate, trace.MovePassIn,
		trace.MovePassOut, trace.MovePassOver, trace.MoveStow,
	} {
		fmt.Fprintf(w, "  %-19s: %d\n", kind, sum.KindCounts[kind])
	}
	fmt.Fprintf(w, "Recorded Frames      : %d\n", len(st.Frames))
	fmt.Fprintf(w, "Max Moves/Pax/Tick   : %d\n", trace.MaxMovesPerPassengerPerTick(st))
}

func init() {
	runFlags.register(runCmd.Flags())
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Trace level (none, moves, frames)")
	runCmd.Flags().BoolVar(&showFrames, "frames", false, "Print the grid after every tick")
}
