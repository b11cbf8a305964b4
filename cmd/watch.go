package cmd

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boardsim/boardsim/sim"
	"github.com/boardsim/boardsim/sim/layout"
	"github.com/boardsim/boardsim/sim/render"
)

var watchFlags scenarioFlags

// watchCmd steps a scenario interactively in the terminal
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Step through a boarding scenario in the terminal",
	Run: func(cmd *cobra.Command, args []string) {
		r, err := watchFlags.resolve(cmd)
		if err != nil {
			logrus.Fatalf("Unable to load scenario: %v", err)
		}
		s, err := r.NewSimulator()
		if err != nil {
			logrus.Fatalf("Unable to build simulator: %v", err)
		}
		screen, err := render.NewScreen()
		if err != nil {
			logrus.Fatalf("Unable to open terminal: %v", err)
		}
		w := newWatcher(screen, s, r)
		w.run()
		screen.Close()
		if err := s.Failed(); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d ticks, %d/%d seated\n", r.Name, s.Tick(), s.SeatedCount(), w.assigned)
	},
}

// watcher drives a Simulator from keyboard input.
type watcher struct {
	screen   *render.Screen
	renderer *render.Renderer
	sim      *sim.Simulator
	name     string
	maxTicks int
	assigned int
	running  bool
	err      error // last step error
}

func newWatcher(screen *render.Screen, s *sim.Simulator, r *layout.Resolved) *watcher {
	assigned := 0
	for _, p := range r.Passengers {
		if p.Seat != nil {
			assigned++
		}
	}
	return &watcher{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		sim:      s,
		name:     r.Name,
		maxTicks: r.MaxTicks,
		assigned: assigned,
		running:  true,
	}
}

// run is the main loop: render, then block on one input event.
func (w *watcher) run() {
	for w.running {
		w.renderer.Render(w.sim.Snapshot(), w.status())
		w.handleInput()
	}
}

func (w *watcher) handleInput() {
	if ev := w.screen.NextKey(); ev != nil {
		w.handleKeyEvent(ev)
	}
}

func (w *watcher) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		w.running = false
	case tcell.KeyRight, tcell.KeyEnter:
		w.step()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			w.running = false
		case 'n', ' ':
			w.step()
		case 'r', 'R':
			w.finish()
		}
	}
}

// canStep reports whether another tick may run.
func (w *watcher) canStep() bool {
	return w.err == nil && !w.sim.IsComplete() && w.sim.Tick() < w.maxTicks
}

// step runs one tick unless the run is over.
func (w *watcher) step() {
	if !w.canStep() {
		return
	}
	w.err = w.sim.Step()
}

// finish steps until the run is over.
func (w *watcher) finish() {
	for w.canStep() {
		w.step()
	}
}

func (w *watcher) status() string {
	state := "[n]ext [r]un [q]uit"
	switch {
	case w.err != nil:
		state = "FAILED: " + w.err.Error()
	case w.sim.IsComplete():
		state = "complete  [q]uit"
	case w.sim.Tick() >= w.maxTicks:
		state = fmt.Sprintf("tick bound %d reached  [q]uit", w.maxTicks)
	}
	sn := w.sim.Snapshot()
	return fmt.Sprintf("%s  tick %d  queue %d  seated %d/%d  %s",
		w.name, sn.Tick, sn.QueueLen, w.sim.SeatedCount(), w.assigned, state)
}

func init() {
	watchFlags.register(watchCmd.Flags())
}
