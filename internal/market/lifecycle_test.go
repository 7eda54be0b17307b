package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	donor    = Party{Name: "Boulangerie Martin", Role: RoleDonor, Verified: true, OrgType: "Restaurant"}
	farmer   = Party{Name: "Ferme Dupont", Role: RoleFarmer, Verified: true, OrgType: "Agriculteur"}
	receiver = Party{Name: "Les Restos", Role: RoleReceiver, OrgType: "Association"}
	buyer    = Party{Name: "Restaurant Bio", Role: RoleFarmerBuyer, OrgType: "Restaurant"}
)

func newDonation(t *testing.T, lc *Lifecycle, owner Party) Listing {
	t.Helper()
	l, err := lc.CreateListing(Listing{
		Title:    "Invendus du soir",
		Quantity: "3 kg",
		Kind:     KindDonation,
		Owner:    owner,
		Deadline: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	return l
}

// requireClaimInvariant checks the core invariant after every operation:
// claimant is set exactly when the listing is reserved or completed.
func requireClaimInvariant(t *testing.T, store *Store) {
	t.Helper()
	for _, l := range store.List(nil) {
		claimed := l.Status == StatusReserved || l.Status == StatusCompleted
		require.Equal(t, claimed, l.Claimant != nil, "listing %s status %s claimant %v", l.ID, l.Status, l.Claimant)
	}
}

func TestCreateListing(t *testing.T) {
	t.Parallel()

	store := NewStore()
	lc := NewLifecycle(store)

	l := newDonation(t, lc, donor)
	require.NotEmpty(t, l.ID)
	require.Equal(t, StatusAvailable, l.Status)
	require.Nil(t, l.Claimant)
	require.Nil(t, l.PriceCents)

	// receivers cannot publish
	_, err := lc.CreateListing(Listing{Title: "x", Kind: KindDonation, Owner: receiver})
	require.ErrorIs(t, err, ErrInvalidTransition)

	// products carry a price
	_, err = lc.CreateListing(Listing{Title: "Tomates", Kind: KindProduct, Owner: farmer})
	require.ErrorIs(t, err, ErrInvalidTransition)

	price := int64(1250)
	p, err := lc.CreateListing(Listing{Title: "Tomates", Kind: KindProduct, PriceCents: &price, Owner: farmer})
	require.NoError(t, err)
	require.NotNil(t, p.PriceCents)
	require.Equal(t, int64(1250), *p.PriceCents)

	requireClaimInvariant(t, store)
}

func TestReserve(t *testing.T) {
	t.Parallel()

	store := NewStore()
	lc := NewLifecycle(store)
	l := newDonation(t, lc, donor)

	got, err := lc.Reserve(l.ID, receiver)
	require.NoError(t, err)
	require.Equal(t, StatusReserved, got.Status)
	require.NotNil(t, got.Claimant)
	require.Equal(t, receiver.Name, got.Claimant.Name)
	requireClaimInvariant(t, store)

	// the thread opened with the reservation
	th, err := lc.Thread(l.ID)
	require.NoError(t, err)
	require.NotNil(t, th)
}

func TestReserveGuards(t *testing.T) {
	t.Parallel()

	store := NewStore()
	lc := NewLifecycle(store)
	l := newDonation(t, lc, donor)

	// owners do not claim
	_, err := lc.Reserve(l.ID, donor)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = lc.Reserve("missing", receiver)
	require.ErrorIs(t, err, ErrNotFound)

	// a failed reserve leaves no side effects behind
	stored, err := store.Get(l.ID)
	require.NoError(t, err)
	require.Equal(t, StatusAvailable, stored.Status)
	require.Nil(t, stored.Claimant)
	_, err = lc.Thread(l.ID)
	require.ErrorIs(t, err, ErrThreadClosed)
}

func TestReserveRace(t *testing.T) {
	t.Parallel()

	store := NewStore()
	lc := NewLifecycle(store)
	l := newDonation(t, lc, donor)

	r1 := Party{Name: "R1", Role: RoleReceiver}
	r2 := Party{Name: "R2", Role: RoleReceiver}

	// two claims submitted in order: exactly one wins
	_, err := lc.Reserve(l.ID, r1)
	require.NoError(t, err)
	_, err = lc.Reserve(l.ID, r2)
	require.ErrorIs(t, err, ErrAlreadyClaimed)

	got, err := store.Get(l.ID)
	require.NoError(t, err)
	require.Equal(t, "R1", got.Claimant.Name)
	requireClaimInvariant(t, store)
}

func TestConfirmPickup(t *testing.T) {
	t.Parallel()

	store := NewStore()
	lc := NewLifecycle(store)
	l := newDonation(t, lc, donor)

	// only from reserved
	_, err := lc.ConfirmPickup(l.ID, donor)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = lc.Reserve(l.ID, receiver)
	require.NoError(t, err)

	// claimant cannot confirm on the owner's behalf
	_, err = lc.ConfirmPickup(l.ID, receiver)
	require.ErrorIs(t, err, ErrInvalidTransition)

	// neither can an unrelated owner-role actor
	_, err = lc.ConfirmPickup(l.ID, farmer)
	require.ErrorIs(t, err, ErrInvalidTransition)

	got, err := lc.ConfirmPickup(l.ID, donor)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, got.Status)
	require.NotNil(t, got.Claimant)
	requireClaimInvariant(t, store)

	// completed is terminal
	_, err = lc.ConfirmPickup(l.ID, donor)
	require.ErrorIs(t, err, ErrInvalidTransition)
	_, err = lc.Reserve(l.ID, receiver)
	require.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestCancelReservation(t *testing.T) {
	t.Parallel()

	for _, actor := range []Party{receiver, donor} {
		store := NewStore()
		lc := NewLifecycle(store)
		l := newDonation(t, lc, donor)
		_, err := lc.Reserve(l.ID, receiver)
		require.NoError(t, err)

		got, err := lc.Cancel(l.ID, actor)
		require.NoError(t, err, "cancel by %s", actor.Role)
		require.Equal(t, StatusAvailable, got.Status)
		require.Nil(t, got.Claimant)
		requireClaimInvariant(t, store)

		// the thread went with the reservation
		_, err = lc.Thread(l.ID)
		require.ErrorIs(t, err, ErrThreadClosed)

		// the listing can be claimed again
		_, err = lc.Reserve(l.ID, buyer)
		require.NoError(t, err)
	}
}

func TestCancelGuards(t *testing.T) {
	t.Parallel()

	store := NewStore()
	lc := NewLifecycle(store)
	l := newDonation(t, lc, donor)
	_, err := lc.Reserve(l.ID, receiver)
	require.NoError(t, err)

	// a third party cannot cancel someone else's reservation
	_, err = lc.Cancel(l.ID, Party{Name: "Autre", Role: RoleReceiver})
	require.ErrorIs(t, err, ErrInvalidTransition)

	got, err := store.Get(l.ID)
	require.NoError(t, err)
	require.Equal(t, StatusReserved, got.Status)
}

func TestCancelAvailableWithdraws(t *testing.T) {
	t.Parallel()

	store := NewStore()
	lc := NewLifecycle(store)
	l := newDonation(t, lc, donor)

	// only the owner may withdraw
	_, err := lc.Cancel(l.ID, receiver)
	require.ErrorIs(t, err, ErrInvalidTransition)

	got, err := lc.Cancel(l.ID, donor)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, got.Status)
	requireClaimInvariant(t, store)

	// cancelled is terminal
	_, err = lc.Reserve(l.ID, receiver)
	require.ErrorIs(t, err, ErrAlreadyClaimed)
	_, err = lc.Cancel(l.ID, donor)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExpiredListingStillReservable(t *testing.T) {
	t.Parallel()

	store := NewStore()
	lc := NewLifecycle(store)
	l, err := lc.CreateListing(Listing{
		Title:    "Paniers d'hier",
		Kind:     KindDonation,
		Owner:    donor,
		Deadline: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	// expiry is a projection, not a stored state
	require.Equal(t, StatusExpired, l.ProjectedStatus(time.Now()))
	stored, err := store.Get(l.ID)
	require.NoError(t, err)
	require.Equal(t, StatusAvailable, stored.Status)

	// the core does not block a late reserve; screens filter instead
	_, err = lc.Reserve(l.ID, receiver)
	require.NoError(t, err)
}
