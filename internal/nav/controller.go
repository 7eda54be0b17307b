package nav

import (
	"errors"
	"fmt"

	"github.com/foodbridge/foodbridge/internal/market"
)

// Rejection taxonomy. A rejected navigation is a strict no-op: the caller
// keeps its current State and surfaces the rejection as an empty state or a
// blocked-action message, never a crash.
var (
	ErrMissingContext = errors.New("screen requires a selected listing")
	ErrRoleMismatch   = errors.New("screen not available for role")
	ErrRoleLocked     = errors.New("role is fixed for the session")
	ErrUnknownScreen  = errors.New("unknown screen")
)

// State is a session's navigation position. SelectedListing is a weak
// reference by id: the controller never owns listing lifetime, it only
// carries the id for the destination screen to look up.
type State struct {
	Current         Screen
	Role            market.Role
	SelectedListing string
}

// NewState starts a session on the splash screen with no role.
func NewState() State {
	return State{Current: ScreenSplash}
}

// Intent is a requested screen transition. ListingID and Role are optional;
// Role is only honored while the session has none (the role-chooser flow).
// There is no hidden history stack — "back" is an ordinary Intent naming the
// prior screen.
type Intent struct {
	Target    Screen
	ListingID string
	Role      market.Role
}

// Navigate produces the next state for an intent, or rejects it. It is a
// pure function: a rejection returns the input state untouched.
func Navigate(s State, in Intent) (State, error) {
	if !in.Target.Known() {
		return s, fmt.Errorf("navigate to %q: %w", in.Target, ErrUnknownScreen)
	}

	// returning to splash is the full reset: role and selection both clear
	if in.Target == ScreenSplash {
		return NewState(), nil
	}

	next := s
	if in.Role != "" {
		if s.Role != "" && in.Role != s.Role {
			return s, fmt.Errorf("switch to %s: %w", in.Role, ErrRoleLocked)
		}
		next.Role = in.Role
	}

	if want := in.Target.RoleScope(); want != "" && want != next.Role {
		return s, fmt.Errorf("navigate to %s as %q: %w", in.Target, next.Role, ErrRoleMismatch)
	}

	// the listing reference lands before the screen switches, so the
	// destination always observes a consistent pair
	if in.ListingID != "" {
		next.SelectedListing = in.ListingID
	}
	if in.Target.ListingScoped() && next.SelectedListing == "" {
		return s, fmt.Errorf("navigate to %s: %w", in.Target, ErrMissingContext)
	}
	next.Current = in.Target
	return next, nil
}
