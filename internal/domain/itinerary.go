package domain

import (
	"fmt"
	"strings"
)

// Itinerary is an ordered sequence of flight legs. Legs are shared references
// into the flight registry, never copies: seat counts live in one place.
type Itinerary struct {
	Legs []*Flight `json:"legs"`
}

func NewItinerary(legs []*Flight) Itinerary {
	return Itinerary{Legs: legs}
}

func (it Itinerary) Empty() bool {
	return len(it.Legs) == 0
}

func (it Itinerary) Origin() string {
	return it.Legs[0].Origin
}

func (it Itinerary) Destination() string {
	return it.Legs[len(it.Legs)-1].Destination
}

func (it Itinerary) FirstDeparture() string {
	return it.Legs[0].Departure
}

func (it Itinerary) LastArrival() string {
	return it.Legs[len(it.Legs)-1].Arrival
}

// DepartureDate returns the date portion of the first leg's departure.
func (it Itinerary) DepartureDate() string {
	return it.Legs[0].DepartureDate()
}

func (it Itinerary) TotalCost() float64 {
	var total float64
	for _, leg := range it.Legs {
		total += leg.Cost
	}
	return total
}

// TotalTravelTime returns last arrival minus first departure in fractional
// hours, layovers included.
func (it Itinerary) TotalTravelTime() (float64, error) {
	dep, err := ParseTimestamp(it.FirstDeparture())
	if err != nil {
		return 0, err
	}
	arr, err := ParseTimestamp(it.LastArrival())
	if err != nil {
		return 0, err
	}
	return hoursBetween(dep, arr), nil
}

// FlightNumbers returns the ordered leg identifiers.
func (it Itinerary) FlightNumbers() []string {
	nums := make([]string, len(it.Legs))
	for i, leg := range it.Legs {
		nums[i] = leg.Number
	}
	return nums
}

// Equal reports structural equality: identical ordered flight-number
// sequences, regardless of which objects hold them.
func (it Itinerary) Equal(other Itinerary) bool {
	if len(it.Legs) != len(other.Legs) {
		return false
	}
	for i := range it.Legs {
		if it.Legs[i].Number != other.Legs[i].Number {
			return false
		}
	}
	return true
}

// DurationText returns the total travel time formatted as HH:MM. Legs are
// timestamp-checked at ingestion, so a parse failure here renders as 00:00
// rather than failing the whole listing.
func (it Itinerary) DurationText() string {
	dep, err := ParseTimestamp(it.FirstDeparture())
	if err != nil {
		return "00:00"
	}
	arr, err := ParseTimestamp(it.LastArrival())
	if err != nil {
		return "00:00"
	}
	minutes := int(arr.Sub(dep).Minutes())
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// CostText returns the total cost with exactly two decimal places.
func (it Itinerary) CostText() string {
	return fmt.Sprintf("%.2f", it.TotalCost())
}

// String renders the itinerary in its fixed text form: one line per leg
// "Number,Departure,Arrival,Airline,Origin,Destination", then the total cost,
// then the total duration as HH:MM.
func (it Itinerary) String() string {
	var b strings.Builder
	for _, leg := range it.Legs {
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s,%s\n",
			leg.Number, leg.Departure, leg.Arrival, leg.Airline, leg.Origin, leg.Destination)
	}
	fmt.Fprintf(&b, "%s\n%s", it.CostText(), it.DurationText())
	return b.String()
}
