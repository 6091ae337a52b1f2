package search

import (
	"slices"

	"github.com/altavia/voyager/internal/domain"
	"github.com/altavia/voyager/internal/registry"
)

// PathFinder enumerates every simple multi-leg path between two airports.
//
// The search is a plain depth-first traversal of the flight graph. It is
// exponential in the branching factor and deliberately does not prune
// cost-dominated alternatives or bound path length beyond cycle avoidance;
// both are acceptable because the dataset stays small.
type PathFinder struct {
	registry *registry.FlightRegistry
}

func NewPathFinder(reg *registry.FlightRegistry) *PathFinder {
	return &PathFinder{registry: reg}
}

// FindPaths returns every simple path (no repeated airport) from origin to
// destination. Each path is an ordered slice of shared flight records.
func (p *PathFinder) FindPaths(origin, destination string) [][]*domain.Flight {
	return p.explore(origin, destination, nil)
}

// explore recurses from the given airport. The visited set is copied on
// extend rather than mutated in place, so no state leaks between branches.
func (p *PathFinder) explore(origin, destination string, visited []string) [][]*domain.Flight {
	seen := make([]string, 0, len(visited)+1)
	seen = append(seen, visited...)
	seen = append(seen, origin)

	var paths [][]*domain.Flight
	for _, flight := range p.registry.FlightsFromOrigin(origin) {
		switch {
		case flight.Destination == destination:
			paths = append(paths, []*domain.Flight{flight})
		case !slices.Contains(seen, flight.Destination):
			for _, rest := range p.explore(flight.Destination, destination, seen) {
				path := make([]*domain.Flight, 0, len(rest)+1)
				path = append(path, flight)
				path = append(path, rest...)
				paths = append(paths, path)
			}
		}
	}
	return paths
}
