package layout

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/boardsim/boardsim/sim"
)

// csvVariants maps layout CSV variant names. "none" is the legacy name for
// an unusable cell.
var csvVariants = map[string]sim.TileVariant{
	"aisle":    sim.VariantAisle,
	"seat":     sim.VariantSeat,
	"entrance": sim.VariantEntrance,
	"blocked":  sim.VariantBlocked,
	"none":     sim.VariantBlocked,
}

// LoadLayoutCSV reads a layout file with an `x,y,variant` header row.
// The grid size is the largest coordinate plus one on each axis; cells not
// listed are Aisle.
func LoadLayoutCSV(path string) (sim.GridConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return sim.GridConfig{}, fmt.Errorf("opening layout: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ParseLayoutCSV(file)
}

// ParseLayoutCSV parses layout rows from r. See LoadLayoutCSV.
// Malformed input is reported as a *sim.ConfigurationError.
func ParseLayoutCSV(r io.Reader) (sim.GridConfig, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	// Skip header row
	if _, err := reader.Read(); err != nil {
		return sim.GridConfig{}, readError("layout", err)
	}

	cfg := sim.GridConfig{Tiles: make(map[sim.Coord]sim.TileVariant)}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return sim.GridConfig{}, readError("layout", err)
		}
		if len(row) != 3 {
			return sim.GridConfig{}, malformed("layout", line, "has %d columns, expected 3", len(row))
		}
		at, err := parseCoord("layout", line, row[0], row[1])
		if err != nil {
			return sim.GridConfig{}, err
		}
		v, ok := csvVariants[strings.ToLower(strings.TrimSpace(row[2]))]
		if !ok {
			return sim.GridConfig{}, malformed("layout", line, "unknown variant %q", row[2])
		}
		cfg.Tiles[at] = v
		if at.X+1 > cfg.Width {
			cfg.Width = at.X + 1
		}
		if at.Y+1 > cfg.Height {
			cfg.Height = at.Y + 1
		}
	}
	if len(cfg.Tiles) == 0 {
		return sim.GridConfig{}, &sim.ConfigurationError{Field: "layout", Reason: "no tiles"}
	}
	return cfg, nil
}

// LoadPassengersCSV reads a passenger file with a `name,x,y[,baggage]`
// header row. Empty x and y mean the passenger has no seat.
func LoadPassengersCSV(path string) ([]sim.PassengerSpec, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening passengers: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ParsePassengersCSV(file)
}

// ParsePassengersCSV parses passenger rows from r. See LoadPassengersCSV.
func ParsePassengersCSV(r io.Reader) ([]sim.PassengerSpec, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		return nil, readError("passengers", err)
	}

	var specs []sim.PassengerSpec
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, readError("passengers", err)
		}
		if len(row) < 3 || len(row) > 4 {
			return nil, malformed("passengers", line, "has %d columns, expected 3 or 4", len(row))
		}
		spec := sim.PassengerSpec{Name: strings.TrimSpace(row[0])}
		if strings.TrimSpace(row[1]) != "" || strings.TrimSpace(row[2]) != "" {
			seat, err := parseCoord("passengers", line, row[1], row[2])
			if err != nil {
				return nil, err
			}
			spec.Seat = &seat
		}
		if len(row) == 4 && strings.TrimSpace(row[3]) != "" {
			spec.Baggage, err = strconv.ParseBool(strings.TrimSpace(row[3]))
			if err != nil {
				return nil, malformed("passengers", line, "baggage %q is not a boolean", row[3])
			}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// WritePassengersCSV writes specs in the format ParsePassengersCSV reads.
func WritePassengersCSV(w io.Writer, specs []sim.PassengerSpec) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"name", "x", "y", "baggage"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, spec := range specs {
		row := []string{spec.Name, "", "", strconv.FormatBool(spec.Baggage)}
		if spec.Seat != nil {
			row[1] = strconv.Itoa(spec.Seat.X)
			row[2] = strconv.Itoa(spec.Seat.Y)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func parseCoord(file string, line int, xs, ys string) (sim.Coord, error) {
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return sim.Coord{}, malformed(file, line, "x %q is not an integer", xs)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return sim.Coord{}, malformed(file, line, "y %q is not an integer", ys)
	}
	if x < 0 || y < 0 {
		return sim.Coord{}, malformed(file, line, "negative coordinate (%d,%d)", x, y)
	}
	return sim.Coord{X: x, Y: y}, nil
}

func malformed(file string, line int, format string, args ...any) error {
	return &sim.ConfigurationError{Field: file, Reason: fmt.Sprintf("line %d: ", line) + fmt.Sprintf(format, args...)}
}

// readError reports a CSV that could not be read at all. An empty file has
// no header row.
func readError(file string, err error) error {
	if err == io.EOF {
		return &sim.ConfigurationError{Field: file, Reason: "missing header row"}
	}
	return &sim.ConfigurationError{Field: file, Reason: err.Error()}
}
