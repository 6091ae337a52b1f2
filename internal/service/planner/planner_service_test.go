package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/altavia/voyager/internal/domain"
	"github.com/altavia/voyager/internal/registry"
	"github.com/altavia/voyager/internal/search"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetItineraries(ctx context.Context, date, origin, destination string) ([]domain.Itinerary, error) {
	args := m.Called(ctx, date, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Itinerary), args.Error(1)
}

func (m *MockCache) SetItineraries(ctx context.Context, date, origin, destination string, itineraries []domain.Itinerary) error {
	args := m.Called(ctx, date, origin, destination, itineraries)
	return args.Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func fixtureRegistry() *registry.FlightRegistry {
	reg := registry.NewFlightRegistry()
	reg.AddOrReplace(domain.Flight{Number: "F1", Airline: "AC", Origin: "A", Destination: "B",
		Departure: "2019-01-01 08:00", Arrival: "2019-01-01 10:00", Cost: 100, Capacity: 1})
	reg.AddOrReplace(domain.Flight{Number: "F2", Airline: "AC", Origin: "B", Destination: "C",
		Departure: "2019-01-01 11:00", Arrival: "2019-01-01 13:00", Cost: 150, Capacity: 1})
	return reg
}

func TestPlannerService_SearchFlights(t *testing.T) {
	service := NewPlannerService(fixtureRegistry(), search.DefaultPolicy(), nil, zap.NewNop())

	flights, err := service.SearchFlights(context.Background(), "A", "B", "2019-01-01")
	assert.NoError(t, err)
	assert.Len(t, flights, 1)
	assert.Equal(t, "F1", flights[0].Number)

	flights, err = service.SearchFlights(context.Background(), "A", "B", "2019-02-01")
	assert.NoError(t, err)
	assert.Empty(t, flights)
}

func TestPlannerService_Itineraries_ComputesAndCaches(t *testing.T) {
	mockCache := &MockCache{}
	service := NewPlannerService(fixtureRegistry(), search.DefaultPolicy(), mockCache, zap.NewNop())

	ctx := context.Background()
	mockCache.On("GetItineraries", ctx, "2019-01-01", "A", "C").Return(nil, nil).Once()
	mockCache.On("SetItineraries", ctx, "2019-01-01", "A", "C", mock.Anything).Return(nil).Once()

	itineraries, err := service.Itineraries(ctx, nil, "2019-01-01", "A", "C")
	assert.NoError(t, err)
	assert.Len(t, itineraries, 1)
	assert.Equal(t, []string{"F1", "F2"}, itineraries[0].FlightNumbers())

	mockCache.AssertExpectations(t)
}

func TestPlannerService_Itineraries_CacheHit(t *testing.T) {
	mockCache := &MockCache{}
	service := NewPlannerService(fixtureRegistry(), search.DefaultPolicy(), mockCache, zap.NewNop())

	ctx := context.Background()
	cached := []domain.Itinerary{domain.NewItinerary([]*domain.Flight{{Number: "F9"}})}
	mockCache.On("GetItineraries", ctx, "2019-01-01", "A", "C").Return(cached, nil).Once()

	itineraries, err := service.Itineraries(ctx, nil, "2019-01-01", "A", "C")
	assert.NoError(t, err)
	assert.Equal(t, cached, itineraries)

	mockCache.AssertNotCalled(t, "SetItineraries", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPlannerService_Itineraries_CacheFailureFallsThrough(t *testing.T) {
	mockCache := &MockCache{}
	service := NewPlannerService(fixtureRegistry(), search.DefaultPolicy(), mockCache, zap.NewNop())

	ctx := context.Background()
	mockCache.On("GetItineraries", ctx, "2019-01-01", "A", "C").Return(nil, errors.New("redis down")).Once()
	mockCache.On("SetItineraries", ctx, "2019-01-01", "A", "C", mock.Anything).Return(errors.New("redis down")).Once()

	itineraries, err := service.Itineraries(ctx, nil, "2019-01-01", "A", "C")
	assert.NoError(t, err, "cache trouble never fails a search")
	assert.Len(t, itineraries, 1)
}

func TestPlannerService_ReplacesUserResultsWholesale(t *testing.T) {
	service := NewPlannerService(fixtureRegistry(), search.DefaultPolicy(), nil, zap.NewNop())
	user := &domain.User{Email: "ann@example.com"}
	user.Results = []domain.Itinerary{domain.NewItinerary([]*domain.Flight{{Number: "stale"}})}

	ctx := context.Background()
	itineraries, err := service.Itineraries(ctx, user, "2019-01-01", "A", "C")
	assert.NoError(t, err)
	assert.Equal(t, itineraries, user.Results)

	sorted := service.SortByCost(user, itineraries)
	assert.Equal(t, sorted, user.Results)
}

func TestPlannerService_Sorts(t *testing.T) {
	service := NewPlannerService(fixtureRegistry(), search.DefaultPolicy(), nil, zap.NewNop())

	cheapLate := domain.NewItinerary([]*domain.Flight{{Number: "X", Cost: 10,
		Departure: "2019-01-01 08:00", Arrival: "2019-01-01 20:00", Capacity: 1}})
	pricyQuick := domain.NewItinerary([]*domain.Flight{{Number: "Y", Cost: 500,
		Departure: "2019-01-01 08:00", Arrival: "2019-01-01 09:00", Capacity: 1}})

	byCost := service.SortByCost(nil, []domain.Itinerary{pricyQuick, cheapLate})
	assert.Equal(t, "X", byCost[0].Legs[0].Number)

	byTime := service.SortByTime(nil, []domain.Itinerary{cheapLate, pricyQuick})
	assert.Equal(t, "Y", byTime[0].Legs[0].Number)
}
