package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/boardsim/boardsim/sim"
	"github.com/boardsim/boardsim/sim/layout"
)

// scenarioFlags select the scenario of run and watch.
type scenarioFlags struct {
	scenarioPath   string // YAML scenario
	layoutPath     string // layout CSV
	passengersPath string // passengers CSV, with layoutPath
	maxTicks       int
	policy         string
	gen            layout.GeneratorSpec // used when no file is given
}

// register binds the flags to fs.
func (f *scenarioFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.scenarioPath, "scenario", "", "Path to a YAML scenario file")
	fs.StringVar(&f.layoutPath, "layout", "", "Path to a layout CSV (x,y,variant)")
	fs.StringVar(&f.passengersPath, "passengers", "", "Path to a passengers CSV (name,x,y[,baggage]); requires --layout")
	fs.IntVar(&f.maxTicks, "max-ticks", 0, "Tick bound; 0 uses the scenario's max_ticks or the default")
	fs.StringVar(&f.policy, "policy", "", fmt.Sprintf("Movement policy (%s)", sim.PolicyGreedy))
	registerGeneratorFlags(fs, &f.gen)
}

// registerGeneratorFlags binds the generated-cabin flags shared by run, watch and generate.
func registerGeneratorFlags(fs *pflag.FlagSet, g *layout.GeneratorSpec) {
	fs.IntVar(&g.Width, "width", 7, "Generated cabin width (>= 5)")
	fs.IntVar(&g.Height, "height", 10, "Generated cabin rows")
	fs.StringVar(&g.Pattern, "pattern", layout.PatternRandom, fmt.Sprintf("Boarding pattern %v", layout.ValidPatternNames()))
	fs.Int64Var(&g.Seed, "seed", 42, "Seed for passenger order and baggage")
	fs.Float64Var(&g.BaggageRatio, "baggage-ratio", 0.5, "Fraction of passengers carrying baggage")
	fs.Float64Var(&g.LoadFactor, "load-factor", 0, "Fraction of seats filled; 0 fills every seat")
}

// resolve builds the scenario the flags describe. A scenario file wins over
// a layout CSV, which wins over the generator. --seed overrides the seed of
// a generator scenario file only when set explicitly.
func (f *scenarioFlags) resolve(cmd *cobra.Command) (*layout.Resolved, error) {
	var sc *layout.Scenario
	switch {
	case f.scenarioPath != "":
		loaded, err := layout.LoadScenario(f.scenarioPath)
		if err != nil {
			return nil, err
		}
		sc = loaded
		if sc.Generator != nil && cmd.Flags().Changed("seed") {
			sc.Generator.Seed = f.gen.Seed
		}
	case f.layoutPath != "":
		sc = &layout.Scenario{
			Name:          filepath.Base(f.layoutPath),
			LayoutCSV:     f.layoutPath,
			PassengersCSV: f.passengersPath,
		}
	default:
		if f.passengersPath != "" {
			return nil, fmt.Errorf("--passengers requires --layout")
		}
		gen := f.gen
		sc = &layout.Scenario{
			Name:      fmt.Sprintf("generated-%dx%d-%s-seed%d", gen.Width, gen.Height, gen.Pattern, gen.Seed),
			Generator: &gen,
		}
	}
	if f.maxTicks > 0 {
		sc.MaxTicks = f.maxTicks
	}
	if cmd.Flags().Changed("policy") {
		sc.Policy = f.policy
	}
	return sc.Resolve()
}
