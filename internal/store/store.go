package store

import (
	"context"
	"fmt"

	"github.com/altavia/voyager/internal/domain"
	"github.com/altavia/voyager/internal/registry"
)

// Snapshot is the whole persisted state: every flight and every user. There
// are no partial writes; the ledger saves the full snapshot after each
// mutation.
type Snapshot struct {
	Flights []domain.Flight `json:"flights"`
	Users   []UserRecord    `json:"users"`
}

// UserRecord is a user as persisted. Booked itineraries are stored as
// ordered flight-number references, not embedded flight copies: flights are
// shared between itineraries and duplicating them would drift on save.
type UserRecord struct {
	LastName   string      `json:"last_name"`
	FirstName  string      `json:"first_name"`
	Email      string      `json:"email"`
	Address    string      `json:"address"`
	CreditCard string      `json:"credit_card"`
	CardExpiry string      `json:"card_expiry"`
	Role       domain.Role `json:"role"`
	Booked     [][]string  `json:"booked"`
}

// RecordStore is the persistence port: whole-snapshot load and save, no
// schema migration, no row-level API.
type RecordStore interface {
	LoadAll(ctx context.Context) (*Snapshot, error)
	SaveAll(ctx context.Context, snap *Snapshot) error
}

// BuildSnapshot captures the registry and roster into a persistable snapshot.
func BuildSnapshot(reg *registry.FlightRegistry, roster *registry.UserRoster) *Snapshot {
	snap := &Snapshot{Flights: reg.All()}
	for _, u := range roster.All() {
		rec := UserRecord{
			LastName:   u.LastName,
			FirstName:  u.FirstName,
			Email:      u.Email,
			Address:    u.Address,
			CreditCard: u.CreditCard,
			CardExpiry: u.CardExpiry,
			Role:       u.Role,
			Booked:     make([][]string, 0, len(u.Booked)),
		}
		for _, it := range u.Booked {
			rec.Booked = append(rec.Booked, it.FlightNumbers())
		}
		snap.Users = append(snap.Users, rec)
	}
	return snap
}

// Restore hydrates the registry and roster from a snapshot, resolving booked
// itinerary references back to shared flight records. A reference to an
// unknown flight number means the snapshot is inconsistent and is an error.
func Restore(snap *Snapshot, reg *registry.FlightRegistry, roster *registry.UserRoster) error {
	for _, f := range snap.Flights {
		reg.AddOrReplace(f)
	}
	for _, rec := range snap.Users {
		u := domain.User{
			LastName:   rec.LastName,
			FirstName:  rec.FirstName,
			Email:      rec.Email,
			Address:    rec.Address,
			CreditCard: rec.CreditCard,
			CardExpiry: rec.CardExpiry,
			Role:       rec.Role,
		}
		for _, refs := range rec.Booked {
			legs := make([]*domain.Flight, 0, len(refs))
			for _, num := range refs {
				flight, ok := reg.FlightByNumber(num)
				if !ok {
					return fmt.Errorf("user %s: booked itinerary references unknown flight %q", rec.Email, num)
				}
				legs = append(legs, flight)
			}
			u.Booked = append(u.Booked, domain.NewItinerary(legs))
		}
		roster.AddOrReplace(u)
	}
	return nil
}
