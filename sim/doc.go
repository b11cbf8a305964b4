// Package sim provides the core tick-synchronous boarding simulation engine for boardsim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - tile.go: Tile variants and the occupancy state machine (empty → occupied → passing)
//   - policy.go: The greedy movement policy and its fixed candidate ordering
//   - simulator.go: The grid, the waiting queue, and the per-tick sweep
//
// # Architecture
//
// The sim package defines the grid, passengers, and scheduler; collaborators
// live in sub-packages:
//   - sim/batch/: Concurrent execution of many independent simulations
//   - sim/layout/: CSV and YAML loaders, standard cabin layouts, boarding patterns
//   - sim/render/: ASCII and terminal rendering of snapshots
//   - sim/trace/: Per-tick move and occupancy recording
//
// Passengers live in an arena owned by the Simulator and are addressed by
// PassengerID; tiles hold IDs only. A relocation is "clear source slot, set
// destination slot" on indices, never a move of the passenger value.
//
// # Sweep order
//
// Each tick visits every coordinate in column-major order: X ascending in the
// outer loop, Y (the along-aisle axis) ascending in the inner loop. The order
// decides which passenger gets first refusal on a contested tile and is part
// of the reproducibility contract. See SweepOrder.
//
// # Key Interfaces
//
//   - MovementPolicy: choose an Action from a passenger's position, seat,
//     baggage flag, and 4-neighborhood. Must be pure.
package sim
