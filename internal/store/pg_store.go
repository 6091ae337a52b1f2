package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altavia/voyager/internal/domain"
)

// PGStore persists snapshots in Postgres. Save replaces the whole contents
// of the flights, users and bookings tables inside one transaction, keeping
// the same all-or-nothing semantics as the file store.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) LoadAll(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}

	rows, err := s.db.Query(ctx, `SELECT number, airline, origin, destination, departure, arrival, cost, capacity, booked FROM flights`)
	if err != nil {
		return nil, fmt.Errorf("load flights: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.Number, &f.Airline, &f.Origin, &f.Destination, &f.Departure, &f.Arrival, &f.Cost, &f.Capacity, &f.Booked); err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		snap.Flights = append(snap.Flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load flights: %w", err)
	}

	userRows, err := s.db.Query(ctx, `SELECT last_name, first_name, email, address, credit_card, card_expiry, role FROM users`)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	defer userRows.Close()
	byEmail := make(map[string]int)
	for userRows.Next() {
		var rec UserRecord
		if err := userRows.Scan(&rec.LastName, &rec.FirstName, &rec.Email, &rec.Address, &rec.CreditCard, &rec.CardExpiry, &rec.Role); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		byEmail[rec.Email] = len(snap.Users)
		snap.Users = append(snap.Users, rec)
	}
	if err := userRows.Err(); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	bookingRows, err := s.db.Query(ctx, `SELECT user_email, legs FROM bookings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	defer bookingRows.Close()
	for bookingRows.Next() {
		var email string
		var legs []string
		if err := bookingRows.Scan(&email, &legs); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		idx, ok := byEmail[email]
		if !ok {
			return nil, fmt.Errorf("booking references unknown user %q", email)
		}
		snap.Users[idx].Booked = append(snap.Users[idx].Booked, legs)
	}
	if err := bookingRows.Err(); err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	return snap, nil
}

func (s *PGStore) SaveAll(ctx context.Context, snap *Snapshot) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin snapshot save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE flights, users, bookings`); err != nil {
		return fmt.Errorf("clear snapshot tables: %w", err)
	}

	for _, f := range snap.Flights {
		if _, err := tx.Exec(ctx,
			`INSERT INTO flights (number, airline, origin, destination, departure, arrival, cost, capacity, booked) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			f.Number, f.Airline, f.Origin, f.Destination, f.Departure, f.Arrival, f.Cost, f.Capacity, f.Booked); err != nil {
			return fmt.Errorf("insert flight %s: %w", f.Number, err)
		}
	}

	for _, u := range snap.Users {
		if _, err := tx.Exec(ctx,
			`INSERT INTO users (last_name, first_name, email, address, credit_card, card_expiry, role) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			u.LastName, u.FirstName, u.Email, u.Address, u.CreditCard, u.CardExpiry, u.Role); err != nil {
			return fmt.Errorf("insert user %s: %w", u.Email, err)
		}
		for _, legs := range u.Booked {
			if _, err := tx.Exec(ctx,
				`INSERT INTO bookings (user_email, legs) VALUES ($1,$2)`,
				u.Email, legs); err != nil {
				return fmt.Errorf("insert booking for %s: %w", u.Email, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot save: %w", err)
	}
	return nil
}

var _ RecordStore = (*PGStore)(nil)
