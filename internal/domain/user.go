package domain

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

type Capability string

const (
	// CapClientOps covers searching, sorting, booking and cancelling for
	// the user's own account.
	CapClientOps Capability = "client_ops"
	// CapAdminOps covers bulk uploads and acting on other users' records.
	CapAdminOps Capability = "admin_ops"
)

// Capabilities returns the capability set granted by the role. Admins hold
// the client set as well.
func (r Role) Capabilities() []Capability {
	switch r {
	case RoleAdmin:
		return []Capability{CapClientOps, CapAdminOps}
	default:
		return []Capability{CapClientOps}
	}
}

func (r Role) Can(c Capability) bool {
	for _, have := range r.Capabilities() {
		if have == c {
			return true
		}
	}
	return false
}

// User is a traveler account. Email is the identity key. Results holds the
// most recent search output and is replaced wholesale by every search or
// sort; only Booked survives across sessions.
type User struct {
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	CreditCard string `json:"credit_card"`
	CardExpiry string `json:"card_expiry"`
	Role       Role   `json:"role"`

	Booked  []Itinerary `json:"-"`
	Results []Itinerary `json:"-"`
}

// HasBooked reports whether a structurally equal itinerary is already in the
// user's booked list.
func (u *User) HasBooked(it Itinerary) bool {
	for _, booked := range u.Booked {
		if booked.Equal(it) {
			return true
		}
	}
	return false
}
