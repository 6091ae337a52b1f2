package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/altavia/voyager/internal/domain"
	"github.com/altavia/voyager/internal/kafka"
	"github.com/altavia/voyager/internal/registry"
	"github.com/altavia/voyager/internal/store"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrFlightNotFound = errors.New("flight not found")
)

type LedgerUseCase interface {
	Book(ctx context.Context, email string, flightNumbers []string) (bool, error)
	Cancel(ctx context.Context, email string, flightNumbers []string) error
	BookedItineraries(ctx context.Context, email string) ([]domain.Itinerary, error)
}

type Cache interface {
	Invalidate(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// LedgerService is the booking ledger: the only component that mutates seat
// pools and users' booked lists. Booking conflicts (already booked, sold
// out) are boolean outcomes callers branch on routinely; only persistence
// and transport failures are errors.
type LedgerService struct {
	registry *registry.FlightRegistry
	roster   *registry.UserRoster
	store    store.RecordStore
	cache    Cache
	producer Producer
	topic    string
	logger   *zap.Logger

	// mu serializes booked-list mutation and snapshot persistence. Seat
	// pools have their own critical section inside the registry.
	mu sync.Mutex
}

type LedgerServiceOption func(*LedgerService)

func WithCache(cache Cache) LedgerServiceOption {
	return func(s *LedgerService) {
		s.cache = cache
	}
}

func WithProducer(producer Producer, topic string) LedgerServiceOption {
	return func(s *LedgerService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewLedgerService(reg *registry.FlightRegistry, roster *registry.UserRoster, st store.RecordStore, logger *zap.Logger, opts ...LedgerServiceOption) *LedgerService {
	service := &LedgerService{
		registry: reg,
		roster:   roster,
		store:    st,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// BookItinerary books one seat on every leg and records the itinerary on the
// user. Returns false without error when the user already booked a
// structurally equal itinerary or any leg is sold out. The availability
// check and the increments are one atomic registry operation; a failed
// snapshot save rolls both the seats and the booked list back and reports
// the error.
func (s *LedgerService) BookItinerary(ctx context.Context, user *domain.User, it domain.Itinerary) (bool, error) {
	if it.Empty() {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if user.HasBooked(it) {
		return false, nil
	}
	if !s.registry.BookSeats(it.Legs) {
		return false, nil
	}
	user.Booked = append(user.Booked, it)

	if err := s.persist(ctx); err != nil {
		s.registry.ReleaseSeats(it.Legs)
		user.Booked = user.Booked[:len(user.Booked)-1]
		return false, fmt.Errorf("persist booking: %w", err)
	}

	s.afterMutation(ctx, kafka.EventItineraryBooked, user.Email, it)
	return true, nil
}

// CancelItinerary removes a structurally equal itinerary from the user's
// booked list and releases its seats. Cancelling an itinerary that was never
// booked is a no-op, not an error.
func (s *LedgerService) CancelItinerary(ctx context.Context, user *domain.User, it domain.Itinerary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, booked := range user.Booked {
		if booked.Equal(it) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	cancelled := user.Booked[idx]
	user.Booked = append(user.Booked[:idx], user.Booked[idx+1:]...)
	s.registry.ReleaseSeats(cancelled.Legs)

	if err := s.persist(ctx); err != nil {
		// Restore the in-memory state so a retry starts from where the
		// caller left off.
		s.registry.BookSeats(cancelled.Legs)
		user.Booked = append(user.Booked, domain.Itinerary{})
		copy(user.Booked[idx+1:], user.Booked[idx:])
		user.Booked[idx] = cancelled
		return fmt.Errorf("persist cancellation: %w", err)
	}

	s.afterMutation(ctx, kafka.EventItineraryCancelled, user.Email, cancelled)
	return nil
}

// Book resolves the user and legs by identifier and books the itinerary.
func (s *LedgerService) Book(ctx context.Context, email string, flightNumbers []string) (bool, error) {
	user, ok := s.roster.UserByEmail(email)
	if !ok {
		return false, ErrUserNotFound
	}
	it, err := s.resolve(flightNumbers)
	if err != nil {
		return false, err
	}
	return s.BookItinerary(ctx, user, it)
}

// Cancel resolves the user and legs by identifier and cancels the itinerary.
func (s *LedgerService) Cancel(ctx context.Context, email string, flightNumbers []string) error {
	user, ok := s.roster.UserByEmail(email)
	if !ok {
		return ErrUserNotFound
	}
	it, err := s.resolve(flightNumbers)
	if err != nil {
		return err
	}
	return s.CancelItinerary(ctx, user, it)
}

// BookedItineraries returns the user's persisted booked list.
func (s *LedgerService) BookedItineraries(_ context.Context, email string) ([]domain.Itinerary, error) {
	user, ok := s.roster.UserByEmail(email)
	if !ok {
		return nil, ErrUserNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Itinerary, len(user.Booked))
	copy(out, user.Booked)
	return out, nil
}

func (s *LedgerService) resolve(flightNumbers []string) (domain.Itinerary, error) {
	legs := make([]*domain.Flight, 0, len(flightNumbers))
	for _, num := range flightNumbers {
		flight, ok := s.registry.FlightByNumber(num)
		if !ok {
			return domain.Itinerary{}, fmt.Errorf("%w: %s", ErrFlightNotFound, num)
		}
		legs = append(legs, flight)
	}
	return domain.NewItinerary(legs), nil
}

func (s *LedgerService) persist(ctx context.Context) error {
	return s.store.SaveAll(ctx, store.BuildSnapshot(s.registry, s.roster))
}

// afterMutation invalidates cached search results and publishes the booking
// event. Both are best effort: the booking already committed.
func (s *LedgerService) afterMutation(ctx context.Context, eventType, email string, it domain.Itinerary) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("invalidate itinerary cache", zap.Error(err))
		}
	}
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		ID:         uuid.NewString(),
		Email:      email,
		Flights:    it.FlightNumbers(),
		TotalCost:  it.TotalCost(),
		OccurredAt: time.Now(),
	}
	if err := s.producer.Publish(ctx, s.topic, event.ID, event); err != nil {
		s.logger.Warn("publish booking event", zap.String("type", eventType), zap.Error(err))
	}
}

var _ LedgerUseCase = (*LedgerService)(nil)
