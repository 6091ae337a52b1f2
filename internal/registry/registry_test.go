package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/altavia/voyager/internal/domain"
)

func TestFlightRegistry_AddOrReplace(t *testing.T) {
	reg := NewFlightRegistry()
	reg.AddOrReplace(domain.Flight{Number: "F1", Origin: "A", Cost: 100})
	reg.AddOrReplace(domain.Flight{Number: "F1", Origin: "A", Cost: 200})

	assert.Equal(t, 1, reg.Len())
	f, ok := reg.FlightByNumber("F1")
	assert.True(t, ok)
	assert.Equal(t, 200.0, f.Cost)
}

func TestFlightRegistry_FlightByNumber_NotFound(t *testing.T) {
	reg := NewFlightRegistry()
	_, ok := reg.FlightByNumber("missing")
	assert.False(t, ok)
}

func TestFlightRegistry_FlightsFromOrigin(t *testing.T) {
	reg := NewFlightRegistry()
	reg.AddOrReplace(domain.Flight{Number: "F1", Origin: "A", Destination: "B"})
	reg.AddOrReplace(domain.Flight{Number: "F2", Origin: "A", Destination: "C"})
	reg.AddOrReplace(domain.Flight{Number: "F3", Origin: "B", Destination: "C"})

	assert.Len(t, reg.FlightsFromOrigin("A"), 2)
	assert.Len(t, reg.FlightsFromOrigin("B"), 1)
	assert.Empty(t, reg.FlightsFromOrigin("Z"))
}

func TestFlightRegistry_Search(t *testing.T) {
	reg := NewFlightRegistry()
	reg.AddOrReplace(domain.Flight{Number: "F1", Origin: "A", Destination: "B", Departure: "2019-01-01 08:00"})
	reg.AddOrReplace(domain.Flight{Number: "F2", Origin: "A", Destination: "B", Departure: "2019-01-02 08:00"})
	reg.AddOrReplace(domain.Flight{Number: "F3", Origin: "A", Destination: "C", Departure: "2019-01-01 08:00"})

	got := reg.Search("A", "B", "2019-01-01")
	assert.Len(t, got, 1)
	assert.Equal(t, "F1", got[0].Number)
}

func TestFlightRegistry_BookSeats_AllOrNothing(t *testing.T) {
	reg := NewFlightRegistry()
	reg.AddOrReplace(domain.Flight{Number: "F1", Capacity: 2})
	reg.AddOrReplace(domain.Flight{Number: "F2", Capacity: 2, Booked: 2})

	f1, _ := reg.FlightByNumber("F1")
	f2, _ := reg.FlightByNumber("F2")

	// F2 is full: nothing on F1 is taken either.
	assert.False(t, reg.BookSeats([]*domain.Flight{f1, f2}))
	assert.Equal(t, 0, f1.Booked)
	assert.Equal(t, 2, f2.Booked)

	assert.True(t, reg.BookSeats([]*domain.Flight{f1}))
	assert.Equal(t, 1, f1.Booked)
}

func TestFlightRegistry_ReleaseSeats_FloorsAtZero(t *testing.T) {
	reg := NewFlightRegistry()
	reg.AddOrReplace(domain.Flight{Number: "F1", Capacity: 2, Booked: 1})
	f1, _ := reg.FlightByNumber("F1")

	reg.ReleaseSeats([]*domain.Flight{f1})
	reg.ReleaseSeats([]*domain.Flight{f1})
	assert.Equal(t, 0, f1.Booked)
}

func TestFlightRegistry_BookSeats_NeverOversells(t *testing.T) {
	const seats = 5
	const contenders = 50

	reg := NewFlightRegistry()
	reg.AddOrReplace(domain.Flight{Number: "F1", Capacity: seats})
	f1, _ := reg.FlightByNumber("F1")

	var wg sync.WaitGroup
	var mu sync.Mutex
	booked := 0
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if reg.BookSeats([]*domain.Flight{f1}) {
				mu.Lock()
				booked++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, seats, booked)
	assert.Equal(t, seats, f1.Booked)
	assert.LessOrEqual(t, f1.Booked, f1.Capacity)
}

func TestUserRoster(t *testing.T) {
	roster := NewUserRoster()
	roster.AddOrReplace(domain.User{Email: "a@b.c", FirstName: "Ann", Role: domain.RoleClient})
	roster.AddOrReplace(domain.User{Email: "a@b.c", FirstName: "Anna", Role: domain.RoleClient})

	assert.Equal(t, 1, roster.Len())
	u, ok := roster.UserByEmail("a@b.c")
	assert.True(t, ok)
	assert.Equal(t, "Anna", u.FirstName)

	_, ok = roster.UserByEmail("missing@b.c")
	assert.False(t, ok)
}
