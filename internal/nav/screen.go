package nav

import "github.com/foodbridge/foodbridge/internal/market"

// Screen is a closed enumeration of every page in the app. The per-screen
// scoping requirements live in one static table rather than scattered
// per-screen conditionals.
type Screen string

const (
	ScreenSplash      Screen = "splash"
	ScreenMarketplace Screen = "marketplace"
	ScreenRole        Screen = "role"
	ScreenSignup      Screen = "signup"

	ScreenDonorCreate       Screen = "donor-create"
	ScreenDonorTransactions Screen = "donor-transactions"
	ScreenDonorTracking     Screen = "donor-tracking"
	ScreenDonorProfile      Screen = "donor-profile"

	ScreenFarmerCreate       Screen = "farmer-create"
	ScreenFarmerTransactions Screen = "farmer-transactions"
	ScreenFarmerTracking     Screen = "farmer-tracking"
	ScreenFarmerProfile      Screen = "farmer-profile"

	ScreenReceiverHome         Screen = "receiver-home"
	ScreenReceiverDetail       Screen = "receiver-detail"
	ScreenReceiverTransactions Screen = "receiver-transactions"
	ScreenReceiverTracking     Screen = "receiver-tracking"
	ScreenReceiverProfile      Screen = "receiver-profile"
)

type screenSpec struct {
	role          market.Role // empty means any role, including none
	listingScoped bool
}

var screenSpecs = map[Screen]screenSpec{
	ScreenSplash:      {},
	ScreenMarketplace: {},
	ScreenRole:        {},
	ScreenSignup:      {},

	ScreenDonorCreate:       {role: market.RoleDonor},
	ScreenDonorTransactions: {role: market.RoleDonor},
	ScreenDonorTracking:     {role: market.RoleDonor, listingScoped: true},
	ScreenDonorProfile:      {role: market.RoleDonor},

	ScreenFarmerCreate:       {role: market.RoleFarmer},
	ScreenFarmerTransactions: {role: market.RoleFarmer},
	ScreenFarmerTracking:     {role: market.RoleFarmer, listingScoped: true},
	ScreenFarmerProfile:      {role: market.RoleFarmer},

	ScreenReceiverHome:         {role: market.RoleReceiver},
	ScreenReceiverDetail:       {role: market.RoleReceiver, listingScoped: true},
	ScreenReceiverTransactions: {role: market.RoleReceiver},
	ScreenReceiverTracking:     {role: market.RoleReceiver, listingScoped: true},
	ScreenReceiverProfile:      {role: market.RoleReceiver},
}

// Known reports whether s is part of the enumeration.
func (s Screen) Known() bool {
	_, ok := screenSpecs[s]
	return ok
}

// ListingScoped reports whether the screen requires a selected listing.
func (s Screen) ListingScoped() bool { return screenSpecs[s].listingScoped }

// RoleScope returns the role the screen is bound to, or "" for screens open
// to any role.
func (s Screen) RoleScope() market.Role { return screenSpecs[s].role }

// HomeScreen is the post-signup landing screen for a role.
func HomeScreen(role market.Role) Screen {
	switch role {
	case market.RoleDonor:
		return ScreenDonorCreate
	case market.RoleFarmer:
		return ScreenFarmerCreate
	default:
		return ScreenReceiverHome
	}
}
