package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/altavia/voyager/internal/domain"
	"github.com/altavia/voyager/internal/registry"
	"github.com/altavia/voyager/internal/store"
)

// Upload row shapes, carried over from the original bulk formats:
//
//	flights: Number,Departure,Arrival,Airline,Origin,Destination,Price,Seats
//	users:   LastName,FirstName,Email,Address,CreditCard,Expiry
const (
	flightFieldCount = 8
	userFieldCount   = 6
)

// ParseFlights reads flight rows from delimited text. Any malformed row
// (wrong field count, bad number, bad timestamp) rejects the whole upload
// with an error naming the row; nothing is silently skipped.
func ParseFlights(r io.Reader) ([]domain.Flight, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = flightFieldCount

	var flights []domain.Flight
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flight row %d: %w", line, err)
		}

		cost, err := strconv.ParseFloat(record[6], 64)
		if err != nil || cost < 0 {
			return nil, fmt.Errorf("flight row %d: invalid price %q", line, record[6])
		}
		seats, err := strconv.Atoi(record[7])
		if err != nil || seats < 0 {
			return nil, fmt.Errorf("flight row %d: invalid seat count %q", line, record[7])
		}
		if _, err := domain.ParseTimestamp(record[1]); err != nil {
			return nil, fmt.Errorf("flight row %d: %w", line, err)
		}
		if _, err := domain.ParseTimestamp(record[2]); err != nil {
			return nil, fmt.Errorf("flight row %d: %w", line, err)
		}

		flights = append(flights, domain.Flight{
			Number:      record[0],
			Departure:   record[1],
			Arrival:     record[2],
			Airline:     record[3],
			Origin:      record[4],
			Destination: record[5],
			Cost:        cost,
			Capacity:    seats,
		})
	}
	return flights, nil
}

// ParseUsers reads user rows from delimited text; every parsed user gets the
// given role. Same all-or-nothing policy as ParseFlights.
func ParseUsers(r io.Reader, role domain.Role) ([]domain.User, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = userFieldCount

	var users []domain.User
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("user row %d: %w", line, err)
		}
		users = append(users, domain.User{
			LastName:   record[0],
			FirstName:  record[1],
			Email:      record[2],
			Address:    record[3],
			CreditCard: record[4],
			CardExpiry: record[5],
			Role:       role,
		})
	}
	return users, nil
}

// Ingestor applies bulk uploads to the registry and roster and persists the
// resulting snapshot.
type Ingestor struct {
	registry *registry.FlightRegistry
	roster   *registry.UserRoster
	store    store.RecordStore
	logger   *zap.Logger
}

func NewIngestor(reg *registry.FlightRegistry, roster *registry.UserRoster, st store.RecordStore, logger *zap.Logger) *Ingestor {
	return &Ingestor{registry: reg, roster: roster, store: st, logger: logger}
}

// UploadFlights parses and registers flight rows. Existing flight numbers
// are overwritten, matching the original upload behavior.
func (i *Ingestor) UploadFlights(ctx context.Context, r io.Reader) ([]domain.Flight, error) {
	flights, err := ParseFlights(r)
	if err != nil {
		return nil, err
	}
	for _, f := range flights {
		i.registry.AddOrReplace(f)
	}
	if err := i.store.SaveAll(ctx, store.BuildSnapshot(i.registry, i.roster)); err != nil {
		return nil, fmt.Errorf("persist uploaded flights: %w", err)
	}
	i.logger.Info("uploaded flights", zap.Int("count", len(flights)))
	return flights, nil
}

// UploadUsers parses and registers user rows with the given role.
func (i *Ingestor) UploadUsers(ctx context.Context, r io.Reader, role domain.Role) ([]domain.User, error) {
	users, err := ParseUsers(r, role)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		i.roster.AddOrReplace(u)
	}
	if err := i.store.SaveAll(ctx, store.BuildSnapshot(i.registry, i.roster)); err != nil {
		return nil, fmt.Errorf("persist uploaded users: %w", err)
	}
	i.logger.Info("uploaded users", zap.Int("count", len(users)), zap.String("role", string(role)))
	return users, nil
}
