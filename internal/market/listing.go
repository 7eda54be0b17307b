package market

import "time"

// Role identifies how an actor participates in the marketplace.
type Role string

const (
	RoleDonor       Role = "donor"
	RoleReceiver    Role = "receiver"
	RoleFarmer      Role = "farmer"
	RoleFarmerBuyer Role = "farmer-buyer"
)

// Owning tells whether the role may own listings.
func (r Role) Owning() bool { return r == RoleDonor || r == RoleFarmer }

// Claiming tells whether the role may claim listings.
func (r Role) Claiming() bool { return r == RoleReceiver || r == RoleFarmerBuyer }

// Kind separates free donations from priced farmer products.
type Kind string

const (
	KindDonation Kind = "donation"
	KindProduct  Kind = "product"
)

// Status is a listing's lifecycle state.
//
// StatusExpired is never stored: it is a read-time projection over
// (deadline, now) layered on top of StatusAvailable.
type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// Party is an identity with a role tag. No authentication sits behind it;
// verification is a flag supplied by the caller.
type Party struct {
	Name     string
	Role     Role
	Verified bool
	OrgType  string
}

// Location carries an already-resolved address and distance. Distance is
// supplied externally; nothing here computes geometry.
type Location struct {
	Address  string
	Distance string
}

// Listing is the shared unit of exchange.
type Listing struct {
	ID           string
	Title        string
	Description  string
	Category     string
	Quantity     string
	ImageRef     string
	Instructions string
	Kind         Kind
	PriceCents   *int64 // set iff Kind == KindProduct
	Status       Status
	Owner        Party
	Claimant     *Party // set iff Status is reserved or completed
	Deadline     time.Time
	Location     Location
	CreatedAt    time.Time
}

// ProjectedStatus overlays StatusExpired on an available listing past its
// deadline. Stored state is untouched; every screen goes through this one
// function instead of recomputing expiry locally.
func (l Listing) ProjectedStatus(now time.Time) Status {
	if l.Status == StatusAvailable && now.After(l.Deadline) {
		return StatusExpired
	}
	return l.Status
}

// TimeRemaining reports the duration until the deadline. expired is true
// once the deadline has passed.
func (l Listing) TimeRemaining(now time.Time) (remaining time.Duration, expired bool) {
	d := l.Deadline.Sub(now)
	if d < 0 {
		return 0, true
	}
	return d, false
}
