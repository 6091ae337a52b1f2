package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/altavia/voyager/internal/domain"
)

// The scenario used throughout: A→B then B→C with a one-hour layover.
func connectingPair() (domain.Flight, domain.Flight) {
	ab := domain.Flight{Number: "F1", Origin: "A", Destination: "B",
		Departure: "2019-01-01 08:00", Arrival: "2019-01-01 10:00", Cost: 100, Capacity: 1}
	bc := domain.Flight{Number: "F2", Origin: "B", Destination: "C",
		Departure: "2019-01-01 11:00", Arrival: "2019-01-01 13:00", Cost: 150, Capacity: 1}
	return ab, bc
}

func TestValidator_AcceptsValidConnection(t *testing.T) {
	ab, bc := connectingPair()
	reg := registryWith(ab, bc)
	v := NewValidator(DefaultPolicy(), reg)

	paths := NewPathFinder(reg).FindPaths("A", "C")
	itineraries, err := v.Validate(paths, "2019-01-01")
	assert.NoError(t, err)
	assert.Len(t, itineraries, 1)

	it := itineraries[0]
	assert.Equal(t, 250.0, it.TotalCost())
	assert.Equal(t, "250.00", it.CostText())
	assert.Equal(t, "05:00", it.DurationText())
}

func TestValidator_RejectsWrongDate(t *testing.T) {
	ab, bc := connectingPair()
	reg := registryWith(ab, bc)
	v := NewValidator(DefaultPolicy(), reg)

	paths := NewPathFinder(reg).FindPaths("A", "C")
	itineraries, err := v.Validate(paths, "2019-01-02")
	assert.NoError(t, err)
	assert.Empty(t, itineraries)
}

func TestValidator_RejectsExcessiveLayover(t *testing.T) {
	// Seven hours on the ground in B: outside the policy window.
	ab, bc := connectingPair()
	bc.Departure = "2019-01-01 17:00"
	bc.Arrival = "2019-01-01 19:00"
	reg := registryWith(ab, bc)
	v := NewValidator(DefaultPolicy(), reg)

	paths := NewPathFinder(reg).FindPaths("A", "C")
	itineraries, err := v.Validate(paths, "2019-01-01")
	assert.NoError(t, err)
	assert.Empty(t, itineraries)
}

func TestValidator_RejectsTooShortLayover(t *testing.T) {
	ab, bc := connectingPair()
	bc.Departure = "2019-01-01 10:15"
	bc.Arrival = "2019-01-01 12:00"
	reg := registryWith(ab, bc)
	v := NewValidator(DefaultPolicy(), reg)

	paths := NewPathFinder(reg).FindPaths("A", "C")
	itineraries, err := v.Validate(paths, "2019-01-01")
	assert.NoError(t, err)
	assert.Empty(t, itineraries)
}

func TestValidator_RejectsFullLeg(t *testing.T) {
	ab, bc := connectingPair()
	bc.Booked = bc.Capacity
	reg := registryWith(ab, bc)
	v := NewValidator(DefaultPolicy(), reg)

	paths := NewPathFinder(reg).FindPaths("A", "C")
	itineraries, err := v.Validate(paths, "2019-01-01")
	assert.NoError(t, err)
	assert.Empty(t, itineraries, "every itinerary containing a sold-out flight is excluded")
}

func TestValidator_InvalidTimestampSurfaces(t *testing.T) {
	ab, bc := connectingPair()
	ab.Arrival = "garbage"
	reg := registryWith(ab, bc)
	v := NewValidator(DefaultPolicy(), reg)

	paths := NewPathFinder(reg).FindPaths("A", "C")
	_, err := v.Validate(paths, "2019-01-01")
	assert.ErrorIs(t, err, domain.ErrInvalidTimestamp)
}

func TestValidator_PolicyBoundsInclusive(t *testing.T) {
	cases := []struct {
		name      string
		departure string
		arrival   string
		want      int
	}{
		{"exactly minimum layover", "2019-01-01 10:30", "2019-01-01 12:00", 1},
		{"exactly maximum layover", "2019-01-01 16:00", "2019-01-01 18:00", 1},
		{"just under minimum", "2019-01-01 10:29", "2019-01-01 12:00", 0},
		{"just over maximum", "2019-01-01 16:01", "2019-01-01 18:00", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ab, bc := connectingPair()
			bc.Departure = tc.departure
			bc.Arrival = tc.arrival
			reg := registryWith(ab, bc)
			v := NewValidator(DefaultPolicy(), reg)

			paths := NewPathFinder(reg).FindPaths("A", "C")
			itineraries, err := v.Validate(paths, "2019-01-01")
			assert.NoError(t, err)
			assert.Len(t, itineraries, tc.want)
		})
	}
}
