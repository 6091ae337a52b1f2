package planner

import (
	"context"

	"go.uber.org/zap"

	"github.com/altavia/voyager/internal/domain"
	"github.com/altavia/voyager/internal/registry"
	"github.com/altavia/voyager/internal/search"
)

type PlannerUseCase interface {
	SearchFlights(ctx context.Context, origin, destination, date string) ([]domain.Flight, error)
	Itineraries(ctx context.Context, user *domain.User, date, origin, destination string) ([]domain.Itinerary, error)
	SortByCost(user *domain.User, itineraries []domain.Itinerary) []domain.Itinerary
	SortByTime(user *domain.User, itineraries []domain.Itinerary) []domain.Itinerary
}

type Cache interface {
	GetItineraries(ctx context.Context, date, origin, destination string) ([]domain.Itinerary, error)
	SetItineraries(ctx context.Context, date, origin, destination string, itineraries []domain.Itinerary) error
	Invalidate(ctx context.Context) error
}

// PlannerService runs the discovery pipeline: path finding, validation,
// sorting. Search results are read-through cached; the cache is best effort
// and never fails a search.
type PlannerService struct {
	registry  *registry.FlightRegistry
	finder    *search.PathFinder
	validator *search.Validator
	cache     Cache
	logger    *zap.Logger
}

func NewPlannerService(reg *registry.FlightRegistry, policy search.Policy, cache Cache, logger *zap.Logger) *PlannerService {
	return &PlannerService{
		registry:  reg,
		finder:    search.NewPathFinder(reg),
		validator: search.NewValidator(policy, reg),
		cache:     cache,
		logger:    logger,
	}
}

// SearchFlights returns the direct flights from origin to destination on the
// given date.
func (s *PlannerService) SearchFlights(_ context.Context, origin, destination, date string) ([]domain.Flight, error) {
	return s.registry.Search(origin, destination, date), nil
}

// Itineraries returns every bookable itinerary from origin to destination
// departing on the given date. When a user is supplied, their transient
// result list is replaced wholesale.
func (s *PlannerService) Itineraries(ctx context.Context, user *domain.User, date, origin, destination string) ([]domain.Itinerary, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetItineraries(ctx, date, origin, destination); err == nil && cached != nil {
			s.remember(user, cached)
			return cached, nil
		}
	}

	paths := s.finder.FindPaths(origin, destination)
	itineraries, err := s.validator.Validate(paths, date)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetItineraries(ctx, date, origin, destination, itineraries); err != nil {
			s.logger.Warn("cache itineraries", zap.Error(err))
		}
	}

	s.remember(user, itineraries)
	return itineraries, nil
}

// SortByCost orders itineraries by ascending total cost, stable.
func (s *PlannerService) SortByCost(user *domain.User, itineraries []domain.Itinerary) []domain.Itinerary {
	sorted := search.SortByCost(itineraries)
	s.remember(user, sorted)
	return sorted
}

// SortByTime orders itineraries by ascending total travel time, stable.
func (s *PlannerService) SortByTime(user *domain.User, itineraries []domain.Itinerary) []domain.Itinerary {
	sorted := search.SortByTime(itineraries)
	s.remember(user, sorted)
	return sorted
}

func (s *PlannerService) remember(user *domain.User, itineraries []domain.Itinerary) {
	if user != nil {
		user.Results = itineraries
	}
}

var _ PlannerUseCase = (*PlannerService)(nil)
