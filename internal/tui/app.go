package tui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foodbridge/foodbridge/internal/config"
	"github.com/foodbridge/foodbridge/internal/market"
	"github.com/foodbridge/foodbridge/internal/nav"
)

// App ties the screens to the core. It owns no listing state of its own:
// every read goes through the injected store, every mutation through the
// lifecycle, every screen change through nav.Navigate.
type App struct {
	cfg   config.Config
	store *market.Store
	life  *market.Lifecycle
	nav   nav.State
	keys  keyMap
	stats Stats
	tz    *time.Location
	now   func() time.Time

	profileName string
	status      string
	statusErr   bool
	width       int
	height      int

	nameInput   string
	searchQuery string
	searching   bool
	homeCursor  int
	txCursor    int
	msgInput    string
	form        createForm
	modal       modalState
}

type modalState string

const (
	modalNone          modalState = ""
	modalConfirmPickup modalState = "confirmPickup"
	modalConfirmCancel modalState = "confirmCancel"
)

// createForm backs the donor/farmer publish screens. The price row only
// exists for farmers.
type createForm struct {
	cursor      int
	title       string
	description string
	category    string
	quantity    string
	price       string
}

func (f *createForm) field(i int) *string {
	switch i {
	case 0:
		return &f.title
	case 1:
		return &f.description
	case 2:
		return &f.category
	case 3:
		return &f.quantity
	default:
		return &f.price
	}
}

func (f *createForm) rows(farmer bool) int {
	if farmer {
		return 5
	}
	return 4
}

func New(cfg config.Config, store *market.Store, life *market.Lifecycle, tz *time.Location) *App {
	if tz == nil {
		tz = time.Local
	}
	return &App{
		cfg:         cfg,
		store:       store,
		life:        life,
		nav:         nav.NewState(),
		keys:        newKeyMap(),
		stats:       demoStats(),
		tz:          tz,
		now:         time.Now,
		profileName: cfg.Profile.Name,
	}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *App) Init() tea.Cmd { return tick() }

// actor is the session identity in its navigation role.
func (a *App) actor() market.Party {
	return market.Party{
		Name:     a.profileName,
		Role:     a.nav.Role,
		Verified: a.cfg.Profile.Verified,
		OrgType:  a.cfg.Profile.OrgType,
	}
}

// claimant is the session identity in claiming form: receivers claim as
// themselves, farmers claim other farmers' produce as farmer-buyers.
func (a *App) claimant() market.Party {
	p := a.actor()
	if p.Role == market.RoleFarmer {
		p.Role = market.RoleFarmerBuyer
	} else {
		p.Role = market.RoleReceiver
	}
	return p
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case tickMsg:
		// countdown badges and expiry projections re-render on the tick
		return a, tick()
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.modal != modalNone {
		return a.handleModalKey(m)
	}
	switch a.nav.Current {
	case nav.ScreenSplash:
		return a.handleSplashKey(m)
	case nav.ScreenMarketplace:
		return a.handleMarketplaceKey(m)
	case nav.ScreenRole:
		return a.handleRoleKey(m)
	case nav.ScreenSignup:
		return a.handleSignupKey(m)
	case nav.ScreenReceiverHome:
		return a.handleHomeKey(m)
	case nav.ScreenReceiverDetail:
		return a.handleDetailKey(m)
	case nav.ScreenDonorCreate, nav.ScreenFarmerCreate:
		return a.handleCreateKey(m)
	case nav.ScreenDonorTransactions, nav.ScreenFarmerTransactions, nav.ScreenReceiverTransactions:
		return a.handleTransactionsKey(m)
	case nav.ScreenDonorTracking, nav.ScreenFarmerTracking, nav.ScreenReceiverTracking:
		return a.handleTrackingKey(m)
	case nav.ScreenDonorProfile, nav.ScreenFarmerProfile, nav.ScreenReceiverProfile:
		return a.handleProfileKey(m)
	}
	return a, nil
}

// navigate routes an intent through the controller; rejections land on the
// status line and leave the screen as it was.
func (a *App) navigate(in nav.Intent) {
	next, err := nav.Navigate(a.nav, in)
	if err != nil {
		a.setError(failureMessage(err))
		return
	}
	a.nav = next
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(s string) {
	a.status = s
	a.statusErr = true
}

// failureMessage translates core rejections into the inline copy the screens
// show. Everything here is recoverable; nothing crashes.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, market.ErrAlreadyClaimed):
		return "no longer available"
	case errors.Is(err, market.ErrThreadClosed):
		return "messaging is closed for this listing"
	case errors.Is(err, market.ErrEmptyMessage):
		return "type something first"
	case errors.Is(err, market.ErrNotFound):
		return "listing not found"
	case errors.Is(err, market.ErrInvalidTransition):
		return "action not available right now"
	case errors.Is(err, nav.ErrMissingContext):
		return "select a listing first"
	case errors.Is(err, nav.ErrRoleLocked):
		return "role is fixed — restart from the start screen to switch"
	case errors.Is(err, nav.ErrRoleMismatch):
		return "that screen belongs to another role"
	default:
		return err.Error()
	}
}

// --- per-screen key handlers ---------------------------------------------

func (a *App) handleSplashKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "m":
		a.navigate(nav.Intent{Target: nav.ScreenMarketplace})
	case "enter":
		a.navigate(nav.Intent{Target: nav.ScreenRole})
	}
	return a, nil
}

func (a *App) handleMarketplaceKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "esc", "b":
		a.navigate(nav.Intent{Target: nav.ScreenSplash})
	}
	return a, nil
}

func (a *App) handleRoleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "esc":
		a.navigate(nav.Intent{Target: nav.ScreenSplash})
	case "1":
		a.navigate(nav.Intent{Target: nav.ScreenSignup, Role: market.RoleDonor})
	case "2":
		a.navigate(nav.Intent{Target: nav.ScreenSignup, Role: market.RoleReceiver})
	case "3":
		a.navigate(nav.Intent{Target: nav.ScreenSignup, Role: market.RoleFarmer})
	}
	return a, nil
}

func (a *App) handleSignupKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.navigate(nav.Intent{Target: nav.ScreenRole})
	case tea.KeyEnter:
		if name := strings.TrimSpace(a.nameInput); name != "" {
			a.profileName = name
		}
		a.navigate(nav.Intent{Target: nav.HomeScreen(a.nav.Role)})
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.nameInput) > 0 {
			a.nameInput = trimLastRune(a.nameInput)
		}
	case tea.KeySpace:
		a.nameInput += " "
	case tea.KeyRunes:
		a.nameInput += string(m.Runes)
	}
	return a, nil
}

func (a *App) handleHomeKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.searching {
		switch m.Type {
		case tea.KeyEsc:
			a.searching = false
			a.searchQuery = ""
		case tea.KeyEnter:
			a.searching = false
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			if len(a.searchQuery) > 0 {
				a.searchQuery = trimLastRune(a.searchQuery)
			}
		case tea.KeySpace:
			a.searchQuery += " "
		case tea.KeyRunes:
			a.searchQuery += string(m.Runes)
		}
		a.homeCursor = 0
		return a, nil
	}
	listings := a.browseListings()
	// the feed can shrink between keypresses (expiry, someone else's claim)
	if len(listings) > 0 && a.homeCursor >= len(listings) {
		a.homeCursor = len(listings) - 1
	}
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "esc":
		a.navigate(nav.Intent{Target: nav.ScreenSplash})
	case "/":
		a.searching = true
	case "up", "k":
		if a.homeCursor > 0 {
			a.homeCursor--
		}
	case "down", "j":
		if a.homeCursor < len(listings)-1 {
			a.homeCursor++
		}
	case "enter":
		if len(listings) == 0 {
			a.setError("no listings to open")
			return a, nil
		}
		a.navigate(nav.Intent{Target: nav.ScreenReceiverDetail, ListingID: listings[a.homeCursor].ID})
	case "t":
		a.navigate(nav.Intent{Target: nav.ScreenReceiverTransactions})
	case "p":
		a.navigate(nav.Intent{Target: nav.ScreenReceiverProfile})
	}
	return a, nil
}

func (a *App) handleDetailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "esc", "b":
		a.navigate(nav.Intent{Target: nav.ScreenReceiverHome})
	case "r":
		l, err := a.life.Reserve(a.nav.SelectedListing, a.claimant())
		if err != nil {
			a.setError(failureMessage(err))
			return a, nil
		}
		a.setStatus("reserved — pickup before " + l.Deadline.In(a.tz).Format(a.cfg.UI.TimeFormat))
		a.navigate(nav.Intent{Target: nav.ScreenReceiverTracking, ListingID: l.ID})
	}
	return a, nil
}

func (a *App) handleCreateKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+t":
		a.navigate(a.roleIntent(nav.ScreenDonorTransactions, nav.ScreenFarmerTransactions, nav.ScreenReceiverTransactions))
		return a, nil
	case "ctrl+u":
		a.navigate(a.roleIntent(nav.ScreenDonorProfile, nav.ScreenFarmerProfile, nav.ScreenReceiverProfile))
		return a, nil
	}
	farmer := a.nav.Role == market.RoleFarmer
	switch m.Type {
	case tea.KeyEsc:
		a.form = createForm{}
		a.navigate(nav.Intent{Target: nav.ScreenSplash})
	case tea.KeyTab, tea.KeyDown:
		a.form.cursor = (a.form.cursor + 1) % a.form.rows(farmer)
	case tea.KeyShiftTab, tea.KeyUp:
		a.form.cursor = (a.form.cursor + a.form.rows(farmer) - 1) % a.form.rows(farmer)
	case tea.KeyEnter:
		a.publish()
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		f := a.form.field(a.form.cursor)
		if len(*f) > 0 {
			*f = trimLastRune(*f)
		}
	case tea.KeySpace:
		*a.form.field(a.form.cursor) += " "
	case tea.KeyRunes:
		*a.form.field(a.form.cursor) += string(m.Runes)
	}
	return a, nil
}

func (a *App) publish() {
	draft := market.Listing{
		Title:       a.form.title,
		Description: a.form.description,
		Category:    a.form.category,
		Quantity:    a.form.quantity,
		Kind:        market.KindDonation,
		Owner:       a.actor(),
		Deadline:    a.now().Add(2 * time.Hour),
		Location:    market.Location{Address: "adresse enregistrée", Distance: "0 m"},
	}
	if a.nav.Role == market.RoleFarmer {
		draft.Kind = market.KindProduct
		p, err := parsePriceCents(a.form.price)
		if err != nil {
			a.setError("enter a price like 12.50")
			return
		}
		draft.PriceCents = &p
	}
	l, err := a.life.CreateListing(draft)
	if err != nil {
		a.setError(failureMessage(err))
		return
	}
	a.form = createForm{}
	a.navigate(a.roleIntent(nav.ScreenDonorTransactions, nav.ScreenFarmerTransactions, nav.ScreenReceiverTransactions))
	a.setStatus("published: " + l.Title)
}

func (a *App) handleTransactionsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := a.transactionRows()
	// rows can disappear out from under the cursor (cancelled from tracking)
	if len(rows) > 0 && a.txCursor >= len(rows) {
		a.txCursor = len(rows) - 1
	}
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "esc":
		a.navigate(nav.Intent{Target: nav.HomeScreen(a.nav.Role)})
	case "up", "k":
		if a.txCursor > 0 {
			a.txCursor--
		}
	case "down", "j":
		if a.txCursor < len(rows)-1 {
			a.txCursor++
		}
	case "enter":
		if len(rows) == 0 {
			a.setError("nothing to track yet")
			return a, nil
		}
		a.navigate(a.roleIntentWithListing(rows[a.txCursor].ID))
	case "ctrl+x":
		// owner withdrawing an unreserved listing
		if len(rows) == 0 || a.nav.Role == market.RoleReceiver {
			return a, nil
		}
		l, err := a.life.Cancel(rows[a.txCursor].ID, a.actor())
		if err != nil {
			a.setError(failureMessage(err))
			return a, nil
		}
		if a.txCursor >= len(a.transactionRows()) && a.txCursor > 0 {
			a.txCursor--
		}
		a.setStatus("withdrawn: " + l.Title)
	case "p":
		a.navigate(a.roleIntent(nav.ScreenDonorProfile, nav.ScreenFarmerProfile, nav.ScreenReceiverProfile))
	case "h":
		a.navigate(nav.Intent{Target: nav.HomeScreen(a.nav.Role)})
	}
	return a, nil
}

func (a *App) handleTrackingKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+p":
		if a.nav.Role != market.RoleReceiver {
			a.modal = modalConfirmPickup
		}
		return a, nil
	case "ctrl+x":
		a.modal = modalConfirmCancel
		return a, nil
	}
	switch m.Type {
	case tea.KeyEsc:
		a.msgInput = ""
		a.navigate(a.roleIntent(nav.ScreenDonorTransactions, nav.ScreenFarmerTransactions, nav.ScreenReceiverTransactions))
	case tea.KeyEnter:
		a.sendMessage()
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.msgInput) > 0 {
			a.msgInput = trimLastRune(a.msgInput)
		}
	case tea.KeySpace:
		a.msgInput += " "
	case tea.KeyRunes:
		a.msgInput += string(m.Runes)
	}
	return a, nil
}

func (a *App) sendMessage() {
	t, err := a.life.Thread(a.nav.SelectedListing)
	if err != nil {
		a.setError(failureMessage(err))
		return
	}
	sender := a.nav.Role
	if a.nav.Role == market.RoleFarmer {
		if l, lerr := a.store.Get(a.nav.SelectedListing); lerr == nil && l.Owner.Name != a.profileName {
			sender = market.RoleFarmerBuyer
		}
	}
	if _, err := t.Append(sender, a.msgInput); err != nil {
		a.setError(failureMessage(err))
		return
	}
	a.msgInput = ""
	a.status = ""
}

func (a *App) handleProfileKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "esc", "h":
		a.navigate(nav.Intent{Target: nav.HomeScreen(a.nav.Role)})
	case "t":
		a.navigate(a.roleIntent(nav.ScreenDonorTransactions, nav.ScreenFarmerTransactions, nav.ScreenReceiverTransactions))
	case "s":
		cfg := a.cfg
		cfg.Profile.Name = a.profileName
		if err := config.Save(cfg); err != nil {
			a.setError("save failed: " + err.Error())
			return a, nil
		}
		a.cfg = cfg
		a.setStatus("profile saved")
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalConfirmPickup:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			l, err := a.life.ConfirmPickup(a.nav.SelectedListing, a.actor())
			if err != nil {
				a.setError(failureMessage(err))
				return a, nil
			}
			a.stats.RecordCompletion(l.Quantity)
			a.setStatus("pickup confirmed — thank you")
		case "n", "N", "esc":
			a.modal = modalNone
		}
	case modalConfirmCancel:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			actor := a.actor()
			if a.nav.Role == market.RoleReceiver {
				actor = a.claimant()
			}
			if _, err := a.life.Cancel(a.nav.SelectedListing, actor); err != nil {
				a.setError(failureMessage(err))
				return a, nil
			}
			a.msgInput = ""
			a.navigate(a.roleIntent(nav.ScreenDonorTransactions, nav.ScreenFarmerTransactions, nav.ScreenReceiverTransactions))
			a.setStatus("reservation cancelled")
		case "n", "N", "esc":
			a.modal = modalNone
		}
	}
	return a, nil
}

// --- listing selections ---------------------------------------------------

// browseListings is the receiver-home feed: available, unexpired, ranked by
// the search query.
func (a *App) browseListings() []market.Listing {
	now := a.now()
	avail := a.store.List(func(l market.Listing) bool {
		return l.ProjectedStatus(now) == market.StatusAvailable
	})
	return market.Search(avail, a.searchQuery)
}

// transactionRows backs the per-role transactions screen: owners see their
// published listings, receivers see their claims.
func (a *App) transactionRows() []market.Listing {
	name := a.profileName
	if a.nav.Role == market.RoleReceiver {
		return a.store.List(func(l market.Listing) bool {
			return l.Claimant != nil && l.Claimant.Name == name
		})
	}
	role := a.nav.Role
	return a.store.List(func(l market.Listing) bool {
		return l.Owner.Name == name && l.Owner.Role == role && l.Status != market.StatusCancelled
	})
}

func (a *App) roleIntent(donor, farmer, receiver nav.Screen) nav.Intent {
	switch a.nav.Role {
	case market.RoleDonor:
		return nav.Intent{Target: donor}
	case market.RoleFarmer:
		return nav.Intent{Target: farmer}
	default:
		return nav.Intent{Target: receiver}
	}
}

func (a *App) roleIntentWithListing(id string) nav.Intent {
	in := a.roleIntent(nav.ScreenDonorTracking, nav.ScreenFarmerTracking, nav.ScreenReceiverTracking)
	in.ListingID = id
	return in
}

// --- small helpers --------------------------------------------------------

func trimLastRune(s string) string {
	r := []rune(s)
	return string(r[:len(r)-1])
}

func parsePriceCents(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, strconv.ErrRange
	}
	return int64(v*100 + 0.5), nil
}
