package search

import (
	"github.com/altavia/voyager/internal/domain"
	"github.com/altavia/voyager/internal/registry"
)

// Layover policy bounds in fractional hours, carried over unchanged from the
// original system. Below the minimum the connection is infeasible; above the
// maximum it is policy-excessive.
const (
	DefaultMinLayoverHours = 0.5
	DefaultMaxLayoverHours = 6.0
)

type Policy struct {
	MinLayoverHours float64
	MaxLayoverHours float64
}

func DefaultPolicy() Policy {
	return Policy{
		MinLayoverHours: DefaultMinLayoverHours,
		MaxLayoverHours: DefaultMaxLayoverHours,
	}
}

// Validator prunes candidate paths down to bookable itineraries.
type Validator struct {
	policy   Policy
	registry *registry.FlightRegistry
}

func NewValidator(policy Policy, reg *registry.FlightRegistry) *Validator {
	return &Validator{policy: policy, registry: reg}
}

// Validate filters candidate paths for the requested departure date. A path
// survives only if it is non-empty, departs on the date, keeps every layover
// inside the policy window, and every leg still has a free seat. Seat counts
// are a snapshot read; booking re-validates under its own lock.
//
// A malformed timestamp on any candidate aborts this search with
// domain.ErrInvalidTimestamp; it never panics past the caller.
func (v *Validator) Validate(paths [][]*domain.Flight, date string) ([]domain.Itinerary, error) {
	itineraries := make([]domain.Itinerary, 0, len(paths))
	for _, path := range paths {
		it := domain.NewItinerary(path)
		ok, err := v.check(it, date)
		if err != nil {
			return nil, err
		}
		if ok {
			itineraries = append(itineraries, it)
		}
	}
	return itineraries, nil
}

func (v *Validator) check(it domain.Itinerary, date string) (bool, error) {
	if it.Empty() {
		return false, nil
	}
	if it.DepartureDate() != date {
		return false, nil
	}
	for i := 0; i < len(it.Legs)-1; i++ {
		layover, err := it.Legs[i].LayoverTo(it.Legs[i+1])
		if err != nil {
			return false, err
		}
		if layover < v.policy.MinLayoverHours || layover > v.policy.MaxLayoverHours {
			return false, nil
		}
	}
	if !v.registry.SeatsAvailable(it.Legs) {
		return false, nil
	}
	return true, nil
}
