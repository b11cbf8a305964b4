package sim

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below unwrap to these so callers can use errors.Is.
var (
	ErrConfiguration     = errors.New("configuration error")
	ErrOccupancyConflict = errors.New("occupancy conflict")
	ErrNoOccupant        = errors.New("tile has no occupant")
	ErrNoPasser          = errors.New("tile has no passer")
	ErrImpossibleMove    = errors.New("impossible move")
	ErrNonTermination    = errors.New("tick bound exhausted before completion")
)

// ConfigurationError reports malformed or out-of-bounds grid or passenger input.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

func configErrorf(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ImpossibleMoveError is returned when a policy resolves to a destination
// outside the grid. It is fatal for the run.
type ImpossibleMoveError struct {
	Tick      int
	Passenger PassengerID
	From      Coord
	Action    Action
}

func (e *ImpossibleMoveError) Error() string {
	return fmt.Sprintf("impossible move at tick %d: passenger %d at %s chose %q",
		e.Tick, e.Passenger, e.From, e.Action)
}

func (e *ImpossibleMoveError) Unwrap() error { return ErrImpossibleMove }

// NonTerminationError is returned by RunToCompletion when the tick bound is
// exhausted. It is an expected outcome for unreachable-seat configurations.
type NonTerminationError struct {
	MaxTicks int
	Seated   int // passengers seated when the bound was hit
	Assigned int // passengers with an assigned seat
}

func (e *NonTerminationError) Error() string {
	return fmt.Sprintf("not complete after %d ticks (%d/%d seated)", e.MaxTicks, e.Seated, e.Assigned)
}

func (e *NonTerminationError) Unwrap() error { return ErrNonTermination }
