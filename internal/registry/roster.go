package registry

import (
	"sync"

	"github.com/altavia/voyager/internal/domain"
)

// UserRoster holds every known user keyed by email.
type UserRoster struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewUserRoster() *UserRoster {
	return &UserRoster{users: make(map[string]*domain.User)}
}

// AddOrReplace inserts the user, overwriting any record with the same email.
func (r *UserRoster) AddOrReplace(u domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := u
	r.users[u.Email] = &cp
}

// UserByEmail returns the roster's record for the given email.
func (r *UserRoster) UserByEmail(email string) (*domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[email]
	return u, ok
}

// All returns a copy of every user record, for snapshot persistence. Booked
// lists are shared slices; the store turns them into flight-number refs
// without mutating them.
func (r *UserRoster) All() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out
}

func (r *UserRoster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
