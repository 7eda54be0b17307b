package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foodbridge/foodbridge/internal/market"
)

func TestNavigateMissingContext(t *testing.T) {
	t.Parallel()

	s := State{Current: ScreenReceiverHome, Role: market.RoleReceiver}

	next, err := Navigate(s, Intent{Target: ScreenReceiverDetail})
	require.ErrorIs(t, err, ErrMissingContext)
	// rejection is a strict no-op
	require.Equal(t, s, next)
	require.Equal(t, ScreenReceiverHome, next.Current)
}

func TestNavigateCarriesListingRef(t *testing.T) {
	t.Parallel()

	s := State{Current: ScreenReceiverHome, Role: market.RoleReceiver}

	next, err := Navigate(s, Intent{Target: ScreenReceiverDetail, ListingID: "l1"})
	require.NoError(t, err)
	require.Equal(t, ScreenReceiverDetail, next.Current)
	require.Equal(t, "l1", next.SelectedListing)

	// with a selection in hand, a listing-scoped hop without a new ref
	// falls back to it
	next, err = Navigate(next, Intent{Target: ScreenReceiverTracking})
	require.NoError(t, err)
	require.Equal(t, "l1", next.SelectedListing)

	// a new ref replaces the old one
	next, err = Navigate(next, Intent{Target: ScreenReceiverDetail, ListingID: "l2"})
	require.NoError(t, err)
	require.Equal(t, "l2", next.SelectedListing)
}

func TestNavigateRoleSelection(t *testing.T) {
	t.Parallel()

	s := NewState()

	next, err := Navigate(s, Intent{Target: ScreenRole})
	require.NoError(t, err)
	next, err = Navigate(next, Intent{Target: ScreenSignup, Role: market.RoleDonor})
	require.NoError(t, err)
	require.Equal(t, market.RoleDonor, next.Role)

	// the role is fixed for the session
	_, err = Navigate(next, Intent{Target: ScreenSignup, Role: market.RoleFarmer})
	require.ErrorIs(t, err, ErrRoleLocked)

	// re-stating the same role is harmless
	again, err := Navigate(next, Intent{Target: ScreenSignup, Role: market.RoleDonor})
	require.NoError(t, err)
	require.Equal(t, market.RoleDonor, again.Role)
}

func TestNavigateRoleMismatch(t *testing.T) {
	t.Parallel()

	s := State{Current: ScreenDonorCreate, Role: market.RoleDonor}

	next, err := Navigate(s, Intent{Target: ScreenReceiverHome})
	require.ErrorIs(t, err, ErrRoleMismatch)
	require.Equal(t, s, next)

	// and no role at all is not enough for a role-scoped screen
	_, err = Navigate(NewState(), Intent{Target: ScreenDonorCreate})
	require.ErrorIs(t, err, ErrRoleMismatch)
}

func TestNavigateSplashResets(t *testing.T) {
	t.Parallel()

	s := State{Current: ScreenDonorTracking, Role: market.RoleDonor, SelectedListing: "l1"}

	next, err := Navigate(s, Intent{Target: ScreenSplash})
	require.NoError(t, err)
	require.Equal(t, NewState(), next)
	require.Empty(t, next.Role)
	require.Empty(t, next.SelectedListing)

	// after the reset a different role may be chosen
	next, err = Navigate(next, Intent{Target: ScreenSignup, Role: market.RoleFarmer})
	require.NoError(t, err)
	require.Equal(t, market.RoleFarmer, next.Role)
}

func TestNavigateUnknownScreen(t *testing.T) {
	t.Parallel()

	s := NewState()
	next, err := Navigate(s, Intent{Target: Screen("does-not-exist")})
	require.ErrorIs(t, err, ErrUnknownScreen)
	require.Equal(t, s, next)
}

func TestNavigateOpenScreens(t *testing.T) {
	t.Parallel()

	// splash, marketplace, role, and signup take any role, including none
	s := NewState()
	for _, target := range []Screen{ScreenMarketplace, ScreenSplash, ScreenRole, ScreenSignup} {
		next, err := Navigate(s, Intent{Target: target})
		require.NoError(t, err, "target %s", target)
		require.Equal(t, target, next.Current)
	}
}
