package trace

// TraceLevel controls the verbosity of tick tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelMoves captures every relocation, pass and stow.
	TraceLevelMoves TraceLevel = "moves"
	// TraceLevelFrames captures moves plus a full occupancy frame per tick.
	TraceLevelFrames TraceLevel = "frames"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelMoves:  true,
	TraceLevelFrames: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// WantsFrames reports whether per-tick frames should be recorded.
func (c TraceConfig) WantsFrames() bool {
	return c.Level == TraceLevelFrames
}

// SimulationTrace collects move and frame records during a simulation.
type SimulationTrace struct {
	Config TraceConfig
	Moves  []MoveRecord
	Frames []FrameRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Moves:  make([]MoveRecord, 0),
		Frames: make([]FrameRecord, 0),
	}
}

// RecordMove appends a move record.
func (st *SimulationTrace) RecordMove(record MoveRecord) {
	st.Moves = append(st.Moves, record)
}

// RecordFrame appends a frame record. No-op unless the level is frames.
func (st *SimulationTrace) RecordFrame(record FrameRecord) {
	if !st.Config.WantsFrames() {
		return
	}
	st.Frames = append(st.Frames, record)
}
