package layout

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest lists the scenarios of a batch run. Loaded from YAML via
// LoadManifest(path).
type Manifest struct {
	Workers   int             `yaml:"workers,omitempty"`   // 0 = GOMAXPROCS
	MaxTicks  int             `yaml:"max_ticks,omitempty"` // default for scenarios without one
	Scenarios []ManifestEntry `yaml:"scenarios"`
}

// ManifestEntry is a scenario file reference or an inline scenario.
// Seeds replicate a generator scenario once per seed.
type ManifestEntry struct {
	Path     string    `yaml:"path,omitempty"`
	Scenario *Scenario `yaml:"scenario,omitempty"`
	Seeds    []int64   `yaml:"seeds,omitempty"`
}

// LoadManifest reads and parses a YAML batch manifest.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	dir := filepath.Dir(path)
	for i := range m.Scenarios {
		e := &m.Scenarios[i]
		if e.Path != "" && !filepath.IsAbs(e.Path) {
			e.Path = filepath.Join(dir, e.Path)
		}
		if e.Scenario != nil {
			e.Scenario.baseDir = dir
		}
	}
	return &m, nil
}

// Validate checks the manifest shape. Scenario contents are checked by Expand.
func (m *Manifest) Validate() error {
	if m.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", m.Workers)
	}
	if m.MaxTicks < 0 {
		return fmt.Errorf("max_ticks must be non-negative, got %d", m.MaxTicks)
	}
	if len(m.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario required")
	}
	for i, e := range m.Scenarios {
		if (e.Path == "") == (e.Scenario == nil) {
			return fmt.Errorf("scenarios[%d]: exactly one of path or scenario required", i)
		}
	}
	return nil
}

// Expand loads every referenced scenario and replicates seeded entries, in
// manifest order. The manifest's max_ticks fills scenarios that set none.
func (m *Manifest) Expand() ([]*Scenario, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	var out []*Scenario
	for i, e := range m.Scenarios {
		s := e.Scenario
		if e.Path != "" {
			loaded, err := LoadScenario(e.Path)
			if err != nil {
				return nil, fmt.Errorf("scenarios[%d]: %w", i, err)
			}
			s = loaded
		}
		if s.Name == "" {
			s.Name = fmt.Sprintf("scenario_%d", i)
		}
		if s.MaxTicks == 0 {
			s.MaxTicks = m.MaxTicks
		}
		if len(e.Seeds) == 0 {
			out = append(out, s)
			continue
		}
		if s.Generator == nil {
			return nil, fmt.Errorf("scenarios[%d]: seeds require a generator scenario", i)
		}
		for _, seed := range e.Seeds {
			replica := *s
			gen := *s.Generator
			gen.Seed = seed
			replica.Generator = &gen
			replica.Name = fmt.Sprintf("%s/seed=%d", s.Name, seed)
			out = append(out, &replica)
		}
	}
	return out, nil
}
