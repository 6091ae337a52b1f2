package registry

import (
	"sync"

	"github.com/altavia/voyager/internal/domain"
)

// FlightRegistry is the single authority for flight records and their seat
// pools. It replaces the original's static database globals with an injected
// value; lookups are scan-based, which is fine at the expected dataset size
// (tens of flights, not thousands).
//
// All seat-count reads and writes happen under the registry mutex. BookSeats
// is the critical section the booking ledger relies on: the availability
// check and the increment of every leg are one atomic unit, so two racing
// bookings can never both take the last seat.
type FlightRegistry struct {
	mu      sync.RWMutex
	flights map[string]*domain.Flight
}

func NewFlightRegistry() *FlightRegistry {
	return &FlightRegistry{flights: make(map[string]*domain.Flight)}
}

// AddOrReplace inserts the flight, overwriting any record with the same
// flight number.
func (r *FlightRegistry) AddOrReplace(f domain.Flight) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := f
	r.flights[f.Number] = &cp
}

// FlightByNumber returns the registry's record for the given flight number.
func (r *FlightRegistry) FlightByNumber(number string) (*domain.Flight, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.flights[number]
	return f, ok
}

// FlightsFromOrigin returns every flight departing the given airport. The
// returned pointers are shared registry records; callers must read seat
// counts through SeatsAvailable, not directly.
func (r *FlightRegistry) FlightsFromOrigin(origin string) []*domain.Flight {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Flight
	for _, f := range r.flights {
		if f.Origin == origin {
			out = append(out, f)
		}
	}
	return out
}

// Search returns copies of the direct flights from origin to destination
// departing on the given date (date portion only).
func (r *FlightRegistry) Search(origin, destination, date string) []domain.Flight {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Flight, 0)
	for _, f := range r.flights {
		if f.Origin == origin && f.Destination == destination && f.DepartureDate() == date {
			out = append(out, *f)
		}
	}
	return out
}

// All returns a copy of every flight record, for snapshot persistence.
func (r *FlightRegistry) All() []domain.Flight {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Flight, 0, len(r.flights))
	for _, f := range r.flights {
		out = append(out, *f)
	}
	return out
}

func (r *FlightRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.flights)
}

// SeatsAvailable reports whether every leg still has a free seat. The whole
// itinerary is checked under one read lock, so a concurrent booking cannot be
// observed half-applied across the legs.
func (r *FlightRegistry) SeatsAvailable(legs []*domain.Flight) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, leg := range legs {
		if leg.IsFull() {
			return false
		}
	}
	return true
}

// BookSeats atomically takes one seat on every leg. If any leg is full,
// nothing is booked and false is returned; a booking that would push a seat
// pool past capacity is rejected, never clamped.
func (r *FlightRegistry) BookSeats(legs []*domain.Flight) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, leg := range legs {
		if leg.IsFull() {
			return false
		}
	}
	for _, leg := range legs {
		leg.Booked++
	}
	return true
}

// ReleaseSeats returns one seat on every leg. Seat pools never go below
// zero; releasing is only called for previously booked itineraries.
func (r *FlightRegistry) ReleaseSeats(legs []*domain.Flight) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, leg := range legs {
		if leg.Booked > 0 {
			leg.Booked--
		}
	}
}
