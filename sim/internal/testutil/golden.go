// Package testutil provides shared test infrastructure for the boarding
// simulator. It holds the golden scenario dataset and assertion helpers used
// across the sim/ and sim/batch/ test packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one hand-verified boarding scenario.
type GoldenTestCase struct {
	Name       string            `json:"name"`
	Width      int               `json:"width"`
	Height     int               `json:"height"`
	Tiles      []GoldenTile      `json:"tiles"`
	YieldSeats bool              `json:"yield_seats"`
	Passengers []GoldenPassenger `json:"passengers"`
	MaxTicks   int               `json:"max_ticks"`

	// Expected outcome. WantTicks is ignored when WantComplete is false.
	WantComplete bool `json:"want_complete"`
	WantTicks    int  `json:"want_ticks"`
}

// GoldenTile overrides the default Aisle variant of one cell.
type GoldenTile struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Variant string `json:"variant"`
}

// GoldenPassenger is a passenger in enqueue order. Seat is nil for none.
type GoldenPassenger struct {
	Name    string  `json:"name"`
	Seat    *[2]int `json:"seat"`
	Baggage bool    `json:"baggage"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	data, err := os.ReadFile(TestdataPath(t, "goldendataset.json"))
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// TestdataPath returns the absolute path of a file in the repo root testdata/.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", name)
}

// AssertFrame compares two rendered grids line by line, reporting the first
// differing row. Trailing newlines are ignored.
func AssertFrame(t *testing.T, name, want, got string) {
	t.Helper()
	wantLines := strings.Split(strings.TrimRight(want, "\n"), "\n")
	gotLines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(wantLines) != len(gotLines) {
		t.Errorf("%s: got %d rows, want %d\ngot:\n%s\nwant:\n%s", name, len(gotLines), len(wantLines), got, want)
		return
	}
	for i := range wantLines {
		if wantLines[i] != gotLines[i] {
			t.Errorf("%s: row %d: got %q, want %q", name, i, gotLines[i], wantLines[i])
			return
		}
	}
}
