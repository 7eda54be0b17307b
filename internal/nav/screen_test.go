package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foodbridge/foodbridge/internal/market"
)

func TestScreenScoping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		screen        Screen
		role          market.Role
		listingScoped bool
	}{
		{ScreenSplash, "", false},
		{ScreenMarketplace, "", false},
		{ScreenRole, "", false},
		{ScreenSignup, "", false},
		{ScreenDonorCreate, market.RoleDonor, false},
		{ScreenDonorTracking, market.RoleDonor, true},
		{ScreenFarmerTransactions, market.RoleFarmer, false},
		{ScreenFarmerTracking, market.RoleFarmer, true},
		{ScreenReceiverHome, market.RoleReceiver, false},
		{ScreenReceiverDetail, market.RoleReceiver, true},
		{ScreenReceiverTracking, market.RoleReceiver, true},
		{ScreenReceiverProfile, market.RoleReceiver, false},
	}
	for _, tc := range cases {
		require.True(t, tc.screen.Known(), "%s", tc.screen)
		require.Equal(t, tc.role, tc.screen.RoleScope(), "%s", tc.screen)
		require.Equal(t, tc.listingScoped, tc.screen.ListingScoped(), "%s", tc.screen)
	}

	require.False(t, Screen("settings").Known())
}

func TestHomeScreen(t *testing.T) {
	t.Parallel()

	require.Equal(t, ScreenDonorCreate, HomeScreen(market.RoleDonor))
	require.Equal(t, ScreenFarmerCreate, HomeScreen(market.RoleFarmer))
	require.Equal(t, ScreenReceiverHome, HomeScreen(market.RoleReceiver))
}
