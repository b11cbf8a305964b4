package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boardsim/boardsim/sim/layout"
)

var (
	genSpec           layout.GeneratorSpec
	genName           string
	genMaxTicks       int
	genOut            string // scenario YAML path; stdout when empty
	genPassengersPath string // write passengers as CSV and reference it
)

// generateCmd writes a generated cabin as an explicit scenario file
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a standard cabin scenario as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if genOut != "" {
			f, err := os.Create(genOut)
			if err != nil {
				logrus.Fatalf("Unable to create %s: %v", genOut, err)
			}
			defer func() { _ = f.Close() }()
			out = f
		}
		if err := generateScenario(out, genSpec, genName, genMaxTicks, genOut, genPassengersPath); err != nil {
			logrus.Fatalf("Unable to generate scenario: %v", err)
		}
	},
}

// generateScenario writes the scenario g describes to w. With passengersPath
// set the passengers go to that CSV file, referenced by base name when it
// sits next to scenarioPath.
func generateScenario(w io.Writer, g layout.GeneratorSpec, name string, maxTicks int, scenarioPath, passengersPath string) error {
	grid, specs, err := layout.Generate(g)
	if err != nil {
		return err
	}
	if name == "" {
		name = fmt.Sprintf("%s-%dx%d-seed%d", g.Pattern, g.Width, g.Height, g.Seed)
	}
	sc := layout.FromGrid(name, grid, specs, maxTicks)
	if passengersPath != "" {
		f, err := os.Create(passengersPath)
		if err != nil {
			return fmt.Errorf("creating passengers CSV: %w", err)
		}
		if err := layout.WritePassengersCSV(f, specs); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing passengers CSV: %w", err)
		}
		sc.Passengers = nil
		sc.PassengersCSV = passengersPath
		if scenarioPath != "" && filepath.Dir(scenarioPath) == filepath.Dir(passengersPath) {
			sc.PassengersCSV = filepath.Base(passengersPath)
		}
	}
	logrus.Infof("Generated %q: %dx%d cabin, %d passengers", name, grid.Width, grid.Height, len(specs))
	return sc.WriteYAML(w)
}

func init() {
	registerGeneratorFlags(generateCmd.Flags(), &genSpec)
	generateCmd.Flags().StringVar(&genName, "name", "", "Scenario name; derived from the generator settings when empty")
	generateCmd.Flags().IntVar(&genMaxTicks, "max-ticks", 0, "max_ticks written to the scenario; 0 omits it")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Scenario output path (stdout when empty)")
	generateCmd.Flags().StringVar(&genPassengersPath, "passengers-csv", "", "Write passengers to this CSV and reference it from the scenario")
}
