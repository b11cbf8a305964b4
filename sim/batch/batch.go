// Package batch runs many independent boarding simulations concurrently.
//
// Each Job builds its own Simulator; nothing mutable is shared between
// units. Results come back in input order, one per job, whatever happened
// to the unit: a configuration error, an impossible move, an exhausted tick
// bound or a panic in one unit never affects its siblings.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/boardsim/boardsim/internal/telemetry"
	"github.com/boardsim/boardsim/sim"
	"github.com/boardsim/boardsim/sim/trace"
)

// ErrPanic wraps a panic recovered from a unit.
var ErrPanic = errors.New("simulation panicked")

// Kind classifies a unit's outcome.
type Kind string

const (
	KindCompleted      Kind = "completed"
	KindConfiguration  Kind = "configuration"
	KindImpossibleMove Kind = "impossible-move"
	KindNonTermination Kind = "non-termination"
	KindPanic          Kind = "panic"
	KindCancelled      Kind = "cancelled"
	KindFailed         Kind = "failed" // any other error
)

// Classify maps a unit error to its Kind. A nil error is KindCompleted.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindCompleted
	case errors.Is(err, sim.ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, sim.ErrImpossibleMove):
		return KindImpossibleMove
	case errors.Is(err, sim.ErrNonTermination):
		return KindNonTermination
	case errors.Is(err, ErrPanic):
		return KindPanic
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	default:
		return KindFailed
	}
}

// Job is one independent simulation.
type Job struct {
	Name       string
	Grid       sim.GridConfig
	Passengers []sim.PassengerSpec
	MaxTicks   int
	Policy     sim.MovementPolicy // nil = the policy named in Grid
	TraceLevel trace.TraceLevel   // "" or none = no trace
}

// Result is the outcome of one Job.
type Result struct {
	Index   int       // position of the job in the input
	Name    string    // copied from the job
	RunID   uuid.UUID // unique per executed unit; uuid.Nil when cancelled before start
	Ticks   int
	Err     error
	Kind    Kind
	Seated  int
	Metrics *sim.Metrics           // nil unless a simulator was built
	Trace   *trace.SimulationTrace // nil unless the job asked for one
}

// Options configures Run.
type Options struct {
	Workers int // maximum concurrent units; <= 0 means GOMAXPROCS
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Run executes jobs concurrently and returns one Result per job in input
// order. Cancelling ctx stops dispatch: jobs not yet started report
// KindCancelled, finished results are kept. Units already running finish
// their simulation.
func Run(ctx context.Context, jobs []Job, opts Options) []Result {
	workers := opts.workers()
	ctx, span := telemetry.StartBatch(ctx, len(jobs), workers)

	results := make([]Result, len(jobs))
	for i := range jobs {
		results[i] = Result{Index: i, Name: jobs[i].Name, Kind: KindCancelled}
	}

	// A plain Group: one unit's error must not cancel the others.
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range jobs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			// Each goroutine writes only its own slot.
			results[i] = runUnit(ctx, i, jobs[i])
			return nil
		})
	}
	_ = g.Wait()

	for i := range results {
		if results[i].Kind == KindCancelled && results[i].Err == nil {
			results[i].Err = context.Cause(ctx)
		}
	}

	sum := Summarize(results)
	telemetry.EndBatch(span, sum.ByKind[KindCompleted], sum.Total)
	logrus.Infof("batch: %d jobs, %d completed, %d workers", sum.Total, sum.ByKind[KindCompleted], workers)
	return results
}

func runUnit(ctx context.Context, index int, job Job) (res Result) {
	res = Result{Index: index, Name: job.Name, RunID: uuid.New()}
	_, span := telemetry.StartUnit(ctx, telemetry.Unit{
		Index:      index,
		Name:       job.Name,
		RunID:      res.RunID.String(),
		Passengers: len(job.Passengers),
	})

	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%w: %v", ErrPanic, r)
			res.Kind = KindPanic
			logrus.Warnf("batch: unit %d (%s) recovered from panic: %v", index, job.Name, r)
		}
		telemetry.EndUnit(span, string(res.Kind), res.Ticks, res.Seated, res.Err)
	}()

	res.Ticks, res.Err = simulate(&res, job)
	res.Kind = Classify(res.Err)
	logrus.Debugf("batch: unit %d (%s) %s after %d ticks", index, job.Name, res.Kind, res.Ticks)
	return res
}

// simulate builds and runs the unit's Simulator, filling res as it goes.
func simulate(res *Result, job Job) (int, error) {
	s, err := sim.NewSimulator(job.Grid)
	if err != nil {
		return 0, err
	}
	res.Metrics = s.Metrics
	if job.Policy != nil {
		if err := s.SetMovementPolicy(job.Policy); err != nil {
			return 0, err
		}
	}
	if job.TraceLevel != "" && job.TraceLevel != trace.TraceLevelNone {
		res.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: job.TraceLevel})
		s.SetTrace(res.Trace)
	}
	if err := s.EnqueueAll(job.Passengers); err != nil {
		return 0, err
	}
	ticks, err := s.RunToCompletion(job.MaxTicks)
	res.Seated = s.SeatedCount()
	return ticks, err
}
