package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boardsim/boardsim/sim/batch"
	"github.com/boardsim/boardsim/sim/layout"
	"github.com/boardsim/boardsim/sim/trace"
)

var (
	batchWorkers    int
	batchTraceLevel string
	batchStrict     bool // exit non-zero when any unit did not complete
)

// batchCmd runs every scenario of a manifest concurrently
var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Run the scenarios of a batch manifest concurrently",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !trace.IsValidTraceLevel(batchTraceLevel) {
			logrus.Fatalf("Unknown trace level %q", batchTraceLevel)
		}
		m, err := layout.LoadManifest(args[0])
		if err != nil {
			logrus.Fatalf("Unable to load manifest: %v", err)
		}
		jobs, err := manifestJobs(m, trace.TraceLevel(batchTraceLevel))
		if err != nil {
			logrus.Fatalf("Unable to build batch: %v", err)
		}

		workers := m.Workers
		if cmd.Flags().Changed("workers") {
			workers = batchWorkers
		}
		results := batch.Run(cmd.Context(), jobs, batch.Options{Workers: workers})
		batch.Print(cmd.OutOrStdout(), results)

		sum := batch.Summarize(results)
		if batchStrict && sum.ByKind[batch.KindCompleted] != sum.Total {
			logrus.Fatalf("%d of %d scenarios did not complete", sum.Total-sum.ByKind[batch.KindCompleted], sum.Total)
		}
	},
}

// manifestJobs expands m and resolves every scenario into a Job, in order.
func manifestJobs(m *layout.Manifest, level trace.TraceLevel) ([]batch.Job, error) {
	scenarios, err := m.Expand()
	if err != nil {
		return nil, err
	}
	jobs := make([]batch.Job, 0, len(scenarios))
	for i, sc := range scenarios {
		r, err := sc.Resolve()
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		jobs = append(jobs, batch.Job{
			Name:       r.Name,
			Grid:       r.Grid,
			Passengers: r.Passengers,
			MaxTicks:   r.MaxTicks,
			TraceLevel: level,
		})
	}
	return jobs, nil
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Concurrent simulations; overrides the manifest, 0 = GOMAXPROCS")
	batchCmd.Flags().StringVar(&batchTraceLevel, "trace", string(trace.TraceLevelNone), "Trace level recorded per unit (none, moves, frames)")
	batchCmd.Flags().BoolVar(&batchStrict, "strict", false, "Exit non-zero unless every scenario completes")
}
