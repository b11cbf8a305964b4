// Defines the Passenger struct that models an individual traveller in the simulation.
// Passengers are owned by the Simulator's arena and referenced by PassengerID.

package sim

import (
	"fmt"
)

// PassengerID indexes the Simulator's passenger arena. IDs are dense and
// assigned in enqueue order starting at 0.
type PassengerID int

// PassengerSpec is the loader-facing description of a passenger.
type PassengerSpec struct {
	Name    string `yaml:"name"`
	Seat    *Coord `yaml:"seat,omitempty"` // nil = no assigned seat
	Baggage bool   `yaml:"baggage"`
}

// Passenger models a single passenger's state in the simulation.
type Passenger struct {
	ID      PassengerID
	Name    string
	Seat    *Coord // fixed at enqueue; never reassigned
	Baggage bool   // cleared by a Stow action
}

// HasSeat reports whether the passenger has an assigned seat.
func (p Passenger) HasSeat() bool {
	return p.Seat != nil
}

// This method returns a human-readable string representation of a Passenger.
func (p Passenger) String() string {
	seat := "none"
	if p.Seat != nil {
		seat = p.Seat.String()
	}
	return fmt.Sprintf("Passenger: (ID: %d, Name: %s, Seat: %s, Baggage: %t)", p.ID, p.Name, seat, p.Baggage)
}

// Location is where a passenger currently is.
type Location string

const (
	LocationQueued   Location = "queued"
	LocationStanding Location = "standing" // primary occupant, not at own seat
	LocationPassing  Location = "passing"
	LocationSeated   Location = "seated"
)
