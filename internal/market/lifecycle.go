package market

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lifecycle validates and applies listing transitions. It is the only writer
// of listing state: screens never flip Status themselves. Each transition is
// atomic with respect to the store — the guard runs against a copy and the
// copy is published only on success, so readers always observe Status and
// Claimant as a consistent pair.
type Lifecycle struct {
	store   *Store
	threads map[string]*Thread
	now     func() time.Time
}

func NewLifecycle(store *Store) *Lifecycle {
	return &Lifecycle{
		store:   store,
		threads: make(map[string]*Thread),
		now:     time.Now,
	}
}

// CreateListing publishes an owner-supplied draft as a new available listing.
// The id, status, and creation time are assigned here; owner fields pass
// through as already-resolved values.
func (lc *Lifecycle) CreateListing(draft Listing) (Listing, error) {
	if !draft.Owner.Role.Owning() {
		return Listing{}, fmt.Errorf("create by %s: %w", draft.Owner.Role, ErrInvalidTransition)
	}
	if strings.TrimSpace(draft.Title) == "" {
		return Listing{}, fmt.Errorf("create: title: %w", ErrEmptyMessage)
	}
	if draft.Kind == KindProduct && draft.PriceCents == nil {
		return Listing{}, fmt.Errorf("create: product without price: %w", ErrInvalidTransition)
	}
	if draft.Kind == KindDonation {
		draft.PriceCents = nil
	}
	draft.ID = uuid.NewString()
	draft.Status = StatusAvailable
	draft.Claimant = nil
	draft.CreatedAt = lc.now()
	lc.store.Upsert(draft)
	return draft, nil
}

// Reserve moves an available listing to reserved on behalf of claimant and
// opens its message thread. Reserving anything that is no longer available
// fails with ErrAlreadyClaimed and has no side effects.
//
// An available listing past its deadline may still be reserved: expiry is a
// display projection, and screens are expected to filter expired entries.
func (lc *Lifecycle) Reserve(id string, claimant Party) (Listing, error) {
	if !claimant.Role.Claiming() {
		return Listing{}, fmt.Errorf("reserve by %s: %w", claimant.Role, ErrInvalidTransition)
	}
	l, err := lc.store.Get(id)
	if err != nil {
		return Listing{}, err
	}
	if l.Status != StatusAvailable {
		return Listing{}, fmt.Errorf("reserve %s (%s): %w", id, l.Status, ErrAlreadyClaimed)
	}
	c := claimant
	l.Status = StatusReserved
	l.Claimant = &c
	lc.store.Upsert(l)
	lc.threads[id] = newThread(id, lc.store)
	return l, nil
}

// ConfirmPickup completes a reserved listing. Only the owner may confirm.
// The thread survives read-only: Append refuses once the listing is no
// longer reserved.
func (lc *Lifecycle) ConfirmPickup(id string, actor Party) (Listing, error) {
	l, err := lc.store.Get(id)
	if err != nil {
		return Listing{}, err
	}
	if l.Status != StatusReserved {
		return Listing{}, fmt.Errorf("confirm %s (%s): %w", id, l.Status, ErrInvalidTransition)
	}
	if !actor.Role.Owning() || actor.Name != l.Owner.Name {
		return Listing{}, fmt.Errorf("confirm %s by %s: %w", id, actor.Name, ErrInvalidTransition)
	}
	l.Status = StatusCompleted
	lc.store.Upsert(l)
	return l, nil
}

// Cancel withdraws a listing. A reserved listing returns to available with
// its claimant cleared and its thread discarded; either party may do this.
// An available listing is terminally cancelled, and only by its owner.
func (lc *Lifecycle) Cancel(id string, actor Party) (Listing, error) {
	l, err := lc.store.Get(id)
	if err != nil {
		return Listing{}, err
	}
	switch l.Status {
	case StatusReserved:
		if !lc.isParticipant(l, actor) {
			return Listing{}, fmt.Errorf("cancel %s by %s: %w", id, actor.Name, ErrInvalidTransition)
		}
		l.Status = StatusAvailable
		l.Claimant = nil
		lc.store.Upsert(l)
		if t, ok := lc.threads[id]; ok {
			t.closed = true
			delete(lc.threads, id)
		}
		return l, nil
	case StatusAvailable:
		if actor.Name != l.Owner.Name {
			return Listing{}, fmt.Errorf("cancel %s by %s: %w", id, actor.Name, ErrInvalidTransition)
		}
		l.Status = StatusCancelled
		l.Claimant = nil
		lc.store.Upsert(l)
		return l, nil
	default:
		return Listing{}, fmt.Errorf("cancel %s (%s): %w", id, l.Status, ErrInvalidTransition)
	}
}

// Thread returns the message thread bound to a listing. A thread exists only
// while the listing is reserved or completed; everything else is
// ErrThreadClosed.
func (lc *Lifecycle) Thread(id string) (*Thread, error) {
	if _, err := lc.store.Get(id); err != nil {
		return nil, err
	}
	t, ok := lc.threads[id]
	if !ok {
		return nil, fmt.Errorf("thread %s: %w", id, ErrThreadClosed)
	}
	return t, nil
}

func (lc *Lifecycle) isParticipant(l Listing, actor Party) bool {
	if actor.Name == l.Owner.Name && actor.Role == l.Owner.Role {
		return true
	}
	return l.Claimant != nil && actor.Name == l.Claimant.Name && actor.Role == l.Claimant.Role
}
