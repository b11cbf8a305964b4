package layout

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardsim/boardsim/sim"
)

func TestParseLayoutCSV_SizeFromMaxCoord(t *testing.T) {
	// GIVEN a layout whose largest coordinate is (4,4)
	in := `x,y,variant
0,0,seat
1,0,seat
2,4,entrance
4,4,none
3,1,aisle
`
	// WHEN parsed
	cfg, err := ParseLayoutCSV(strings.NewReader(in))

	// THEN the grid is 5x5 and "none" maps to blocked
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Width)
	assert.Equal(t, 5, cfg.Height)
	assert.Equal(t, sim.VariantSeat, cfg.Tiles[sim.Coord{X: 1, Y: 0}])
	assert.Equal(t, sim.VariantEntrance, cfg.Tiles[sim.Coord{X: 2, Y: 4}])
	assert.Equal(t, sim.VariantBlocked, cfg.Tiles[sim.Coord{X: 4, Y: 4}])
	assert.NoError(t, cfg.Validate())
}

func TestParseLayoutCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		field string
	}{
		{"unknown variant", "x,y,variant\n0,0,galley\n", "layout"},
		{"bad x", "x,y,variant\na,0,seat\n", "layout"},
		{"bad y", "x,y,variant\n0,b,seat\n", "layout"},
		{"negative y", "x,y,variant\n0,-1,seat\n", "layout"},
		{"short row", "x,y,variant\n0,0\n", "layout"},
		{"long row", "x,y,variant\n0,0,seat,extra\n", "layout"},
		{"bare quote", "x,y,variant\n0,0,se\"at\n", "layout"},
		{"header only", "x,y,variant\n", "layout"},
		{"empty", "", "layout"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// WHEN a malformed layout is parsed
			_, err := ParseLayoutCSV(strings.NewReader(tc.in))

			// THEN it is a configuration error naming the file
			require.Error(t, err)
			assert.ErrorIs(t, err, sim.ErrConfiguration)
			var cfgErr *sim.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestParseLayoutCSV_ErrorNamesLine(t *testing.T) {
	_, err := ParseLayoutCSV(strings.NewReader("x,y,variant\n0,0,seat\n1,x1,seat\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), `"x1"`)
}

func TestParsePassengersCSV(t *testing.T) {
	in := `name,x,y,baggage
person0,0,3,true
person1,4,2
crew,,,
`
	specs, err := ParsePassengersCSV(strings.NewReader(in))

	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.Equal(t, "person0", specs[0].Name)
	assert.Equal(t, &sim.Coord{X: 0, Y: 3}, specs[0].Seat)
	assert.True(t, specs[0].Baggage)
	assert.Equal(t, &sim.Coord{X: 4, Y: 2}, specs[1].Seat)
	assert.False(t, specs[1].Baggage)
	assert.Nil(t, specs[2].Seat)
}

func TestParsePassengersCSV_Errors(t *testing.T) {
	for name, in := range map[string]string{
		"bad baggage": "name,x,y,baggage\np,0,0,maybe\n",
		"bad x":       "name,x,y\np,one,0\n",
		"half seat":   "name,x,y\np,0,\n",
		"negative x":  "name,x,y\np,-2,0\n",
		"too many":    "name,x,y,baggage\np,0,0,true,extra\n",
		"too few":     "name,x,y\np,0\n",
		"empty":       "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePassengersCSV(strings.NewReader(in))
			require.Error(t, err)
			assert.ErrorIs(t, err, sim.ErrConfiguration)
			var cfgErr *sim.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "passengers", cfgErr.Field)
		})
	}
}

func TestWritePassengersCSV_ReadsBack(t *testing.T) {
	// GIVEN generated passengers
	_, specs, err := Generate(GeneratorSpec{Width: 5, Height: 3, Seed: 2, BaggageRatio: 0.5})
	require.NoError(t, err)
	specs = append(specs, sim.PassengerSpec{Name: "crew"})

	// WHEN written and parsed back
	var buf bytes.Buffer
	require.NoError(t, WritePassengersCSV(&buf, specs))
	got, err := ParsePassengersCSV(&buf)

	// THEN the lists match
	require.NoError(t, err)
	assert.Equal(t, specs, got)
}

func TestLoadLayoutCSV_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y,variant\n0,0,entrance\n2,2,seat\n"), 0644))

	cfg, err := LoadLayoutCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Width)

	_, err = LoadLayoutCSV(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
	_, err = LoadPassengersCSV(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
