// Package layout loads, generates and writes boarding scenarios: cabin grids
// plus the passengers boarding them. It produces the plain GridConfig and
// PassengerSpec values the sim package consumes.
package layout

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/boardsim/boardsim/sim"
)

// DefaultMaxTicks bounds a run when a scenario does not set max_ticks.
const DefaultMaxTicks = 10000

// TileSpec overrides the default Aisle variant of one cell.
type TileSpec struct {
	X       int             `yaml:"x"`
	Y       int             `yaml:"y"`
	Variant sim.TileVariant `yaml:"variant"`
}

// Scenario is one boarding run. Loaded from YAML via LoadScenario(path).
//
// The grid comes from exactly one source: explicit width/height/tiles, a
// layout_csv file, or a generator block. Passengers come from the explicit
// list, a passengers_csv file, or the generator.
type Scenario struct {
	Name          string              `yaml:"name,omitempty"`
	Width         int                 `yaml:"width,omitempty"`
	Height        int                 `yaml:"height,omitempty"`
	Tiles         []TileSpec          `yaml:"tiles,omitempty"`
	YieldSeats    bool                `yaml:"yield_seats,omitempty"`
	Policy        string              `yaml:"policy,omitempty"`
	Passengers    []sim.PassengerSpec `yaml:"passengers,omitempty"`
	MaxTicks      int                 `yaml:"max_ticks,omitempty"` // 0 = DefaultMaxTicks
	LayoutCSV     string              `yaml:"layout_csv,omitempty"`
	PassengersCSV string              `yaml:"passengers_csv,omitempty"`
	Generator     *GeneratorSpec      `yaml:"generator,omitempty"`

	baseDir string // directory relative CSV paths resolve against
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}
	s.baseDir = filepath.Dir(path)
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}

// ParseScenario decodes a scenario from YAML bytes with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &s, nil
}

// Validate checks that the scenario names exactly one grid source and that
// its fields are in range. Grid-level checks happen in sim.GridConfig.Validate.
func (s *Scenario) Validate() error {
	explicit := s.Width != 0 || s.Height != 0 || len(s.Tiles) > 0
	sources := 0
	for _, set := range []bool{explicit, s.LayoutCSV != "", s.Generator != nil} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return fmt.Errorf("scenario %q: exactly one of width/height/tiles, layout_csv or generator required, got %d", s.Name, sources)
	}
	if s.Generator != nil {
		if len(s.Passengers) > 0 || s.PassengersCSV != "" {
			return fmt.Errorf("scenario %q: generator scenarios cannot list passengers", s.Name)
		}
		if err := s.Generator.Validate(); err != nil {
			return fmt.Errorf("scenario %q: generator: %w", s.Name, err)
		}
	}
	if len(s.Passengers) > 0 && s.PassengersCSV != "" {
		return fmt.Errorf("scenario %q: passengers and passengers_csv are mutually exclusive", s.Name)
	}
	if s.MaxTicks < 0 {
		return fmt.Errorf("scenario %q: max_ticks must be non-negative, got %d", s.Name, s.MaxTicks)
	}
	if !sim.IsValidMovementPolicy(s.Policy) {
		return fmt.Errorf("scenario %q: unknown movement policy %q", s.Name, s.Policy)
	}
	return nil
}

// Resolved is a scenario with every file read and generator run.
type Resolved struct {
	Name       string
	Grid       sim.GridConfig
	Passengers []sim.PassengerSpec
	MaxTicks   int
}

// Resolve validates the scenario and materializes its grid and passengers.
func (s *Scenario) Resolve() (*Resolved, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	r := &Resolved{Name: s.Name, MaxTicks: s.MaxTicks}
	if r.MaxTicks == 0 {
		r.MaxTicks = DefaultMaxTicks
	}

	switch {
	case s.Generator != nil:
		grid, specs, err := Generate(*s.Generator)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		r.Grid, r.Passengers = grid, specs
	case s.LayoutCSV != "":
		grid, err := LoadLayoutCSV(s.resolvePath(s.LayoutCSV))
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		r.Grid = grid
	default:
		r.Grid = sim.GridConfig{Width: s.Width, Height: s.Height, Tiles: make(map[sim.Coord]sim.TileVariant, len(s.Tiles))}
		for _, t := range s.Tiles {
			r.Grid.Tiles[sim.Coord{X: t.X, Y: t.Y}] = t.Variant
		}
	}
	if s.Generator == nil {
		r.Grid.YieldSeats = s.YieldSeats
	}
	r.Grid.Policy = s.Policy

	switch {
	case s.PassengersCSV != "":
		specs, err := LoadPassengersCSV(s.resolvePath(s.PassengersCSV))
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		r.Passengers = specs
	case s.Generator == nil:
		r.Passengers = s.Passengers
	}

	if err := r.Grid.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	logrus.Debugf("scenario %q: %dx%d grid, %d passengers, max %d ticks",
		r.Name, r.Grid.Width, r.Grid.Height, len(r.Passengers), r.MaxTicks)
	return r, nil
}

func (s *Scenario) resolvePath(p string) string {
	if filepath.IsAbs(p) || s.baseDir == "" {
		return p
	}
	return filepath.Join(s.baseDir, p)
}

// NewSimulator builds a Simulator for the resolved scenario with every
// passenger enqueued.
func (r *Resolved) NewSimulator() (*sim.Simulator, error) {
	s, err := sim.NewSimulator(r.Grid)
	if err != nil {
		return nil, err
	}
	if err := s.EnqueueAll(r.Passengers); err != nil {
		return nil, err
	}
	return s, nil
}

// FromGrid builds an explicit scenario from a grid and passenger list.
// Tiles are listed in X-then-Y order so the output is stable.
func FromGrid(name string, cfg sim.GridConfig, specs []sim.PassengerSpec, maxTicks int) *Scenario {
	s := &Scenario{
		Name:       name,
		Width:      cfg.Width,
		Height:     cfg.Height,
		YieldSeats: cfg.YieldSeats,
		Policy:     cfg.Policy,
		Passengers: specs,
		MaxTicks:   maxTicks,
	}
	for at, v := range cfg.Tiles {
		if v == sim.VariantAisle {
			continue
		}
		s.Tiles = append(s.Tiles, TileSpec{X: at.X, Y: at.Y, Variant: v})
	}
	sort.Slice(s.Tiles, func(i, j int) bool {
		if s.Tiles[i].X != s.Tiles[j].X {
			return s.Tiles[i].X < s.Tiles[j].X
		}
		return s.Tiles[i].Y < s.Tiles[j].Y
	})
	return s
}

// WriteYAML encodes the scenario to w with two-space indentation.
func (s *Scenario) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	return enc.Close()
}
