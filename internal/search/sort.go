package search

import (
	"math"

	"github.com/altavia/voyager/internal/domain"
)

// SortByCost returns the itineraries ordered by ascending total cost. The
// sort is stable: equal-cost itineraries keep their input order.
func SortByCost(itineraries []domain.Itinerary) []domain.Itinerary {
	return insertionSort(itineraries, func(it domain.Itinerary) float64 {
		return it.TotalCost()
	})
}

// SortByTime returns the itineraries ordered by ascending total travel time.
// Stable, like SortByCost.
func SortByTime(itineraries []domain.Itinerary) []domain.Itinerary {
	return insertionSort(itineraries, func(it domain.Itinerary) float64 {
		hours, err := it.TotalTravelTime()
		if err != nil {
			// Unparseable legs are rejected upstream; sink any stray one.
			return math.MaxFloat64
		}
		return hours
	})
}

// insertionSort builds a new slice, inserting each itinerary before the
// first element with a strictly greater key. O(n²), which is fine at the
// expected list sizes; stability is what matters here.
func insertionSort(itineraries []domain.Itinerary, key func(domain.Itinerary) float64) []domain.Itinerary {
	sorted := make([]domain.Itinerary, 0, len(itineraries))
	for _, it := range itineraries {
		k := key(it)
		pos := len(sorted)
		for i := range sorted {
			if k < key(sorted[i]) {
				pos = i
				break
			}
		}
		sorted = append(sorted, domain.Itinerary{})
		copy(sorted[pos+1:], sorted[pos:])
		sorted[pos] = it
	}
	return sorted
}
