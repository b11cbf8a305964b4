package sim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_BasicArrival(t *testing.T) {
	// GIVEN the basic arrival scenario
	s := basicArrival(t, false)

	// WHEN it runs to completion
	_, err := s.RunToCompletion(100)
	require.NoError(t, err)

	// THEN the counters reflect one ingress and two relocations
	m := s.Metrics
	assert.Equal(t, 3, m.Ticks)
	assert.Equal(t, 1, m.Ingresses)
	assert.Equal(t, 2, m.Moves)
	assert.Equal(t, 0, m.PassIns)
	assert.Equal(t, 0, m.Stows)
	assert.Equal(t, map[PassengerID]int{0: 3}, m.SeatedAt)
	assert.InDelta(t, 3.0, m.MeanSeatedTick(), 1e-9)
}

func TestMetrics_PeakQueueLen(t *testing.T) {
	s := newTestSimulator(t, 5, 5, map[Coord]TileVariant{{X: 2, Y: 4}: VariantEntrance}, false,
		PassengerSpec{Name: "a", Seat: seatAt(0, 0)},
		PassengerSpec{Name: "b", Seat: seatAt(4, 0)},
		PassengerSpec{Name: "c", Seat: seatAt(0, 4)})

	require.NoError(t, s.Step())

	// One passenger boarded on tick 1, two still queued.
	assert.Equal(t, 2, s.Metrics.PeakQueueLen)
}

func TestMetrics_Print(t *testing.T) {
	s := basicArrival(t, true)
	_, err := s.RunToCompletion(100)
	require.NoError(t, err)

	var buf bytes.Buffer
	s.Metrics.Print(&buf)

	out := buf.String()
	assert.Contains(t, out, "=== Simulation Metrics ===")
	assert.Contains(t, out, "Ticks                : 4")
	assert.Contains(t, out, "Stows                : 1")
	assert.Contains(t, out, "Last Seated Tick     : 4")
}

func TestMetrics_Print_NoneSeated(t *testing.T) {
	var buf bytes.Buffer
	NewMetrics().Print(&buf)
	assert.NotContains(t, buf.String(), "Mean Seated Tick")
	assert.Equal(t, 0.0, NewMetrics().MeanSeatedTick())
}
