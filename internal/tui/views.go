package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/foodbridge/foodbridge/internal/market"
	"github.com/foodbridge/foodbridge/internal/nav"
)

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	urgentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	modalStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	mineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	theirsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

func (a *App) View() string {
	var body string
	switch a.nav.Current {
	case nav.ScreenMarketplace:
		body = a.renderMarketplace()
	case nav.ScreenRole:
		body = a.renderRole()
	case nav.ScreenSignup:
		body = a.renderSignup()
	case nav.ScreenReceiverHome:
		body = a.renderHome()
	case nav.ScreenReceiverDetail:
		body = a.renderDetail()
	case nav.ScreenDonorCreate, nav.ScreenFarmerCreate:
		body = a.renderCreate()
	case nav.ScreenDonorTransactions, nav.ScreenFarmerTransactions, nav.ScreenReceiverTransactions:
		body = a.renderTransactions()
	case nav.ScreenDonorTracking, nav.ScreenFarmerTracking, nav.ScreenReceiverTracking:
		body = a.renderTracking()
	case nav.ScreenDonorProfile, nav.ScreenFarmerProfile, nav.ScreenReceiverProfile:
		body = a.renderProfile()
	default:
		body = a.renderSplash()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	if a.status != "" {
		line := a.status
		if a.statusErr {
			line = errStyle.Render(line)
		} else {
			line = okStyle.Render(line)
		}
		body += "\n" + line
	}
	return body
}

func (a *App) renderSplash() string {
	title := accentStyle.Render("FoodBridge") + " — " + dimStyle.Render("du surplus à l'assiette")
	body := "Connect surplus food with the people who need it.\n\n" +
		helpLine(a.keys.Enter, a.keys.Quit) + "  [m] marketplace"
	return fmt.Sprintf("%s\n\n%s", title, body)
}

func (a *App) renderMarketplace() string {
	title := titleStyle.Render("Marketplace")
	return fmt.Sprintf("%s\n\nComing soon.\n\n%s", title, helpLine(a.keys.Back, a.keys.Quit))
}

func (a *App) renderRole() string {
	title := titleStyle.Render("Choose your role")
	body := strings.Join([]string{
		"[1] Donor     — restaurants and shops with surplus meals",
		"[2] Receiver  — associations and people collecting food",
		"[3] Farmer    — producers selling surplus at low prices",
	}, "\n")
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, helpLine(a.keys.Back, a.keys.Quit))
}

func (a *App) renderSignup() string {
	title := titleStyle.Render("Sign up — " + string(a.nav.Role))
	return fmt.Sprintf("%s\n\nName: %s▌\n\n%s", title, a.nameInput, helpLine(a.keys.Enter, a.keys.Back))
}

func (a *App) renderHome() string {
	title := titleStyle.Render("Nearby listings")
	out := title + "\n"
	if a.searching {
		out += fmt.Sprintf("Search: %s▌\n", a.searchQuery)
	} else if a.searchQuery != "" {
		out += dimStyle.Render("Search: "+a.searchQuery) + "\n"
	}
	listings := a.browseListings()
	if len(listings) == 0 {
		out += dimStyle.Render("No listings match.") + "\n"
	}
	for i, l := range listings {
		marker := " "
		if i == a.homeCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-28s %-18s %6s  %-6s  %s\n",
			marker, truncate(l.Title, 28), truncate(l.Owner.Name, 18), l.Quantity,
			l.Location.Distance, a.deadlineBadge(l))
	}
	out += "\n" + helpLine(a.keys.UpDown, a.keys.Enter, a.keys.Search, a.keys.Transactions, a.keys.Profile, a.keys.Quit)
	return out
}

func (a *App) renderDetail() string {
	l, err := a.store.Get(a.nav.SelectedListing)
	if err != nil {
		return titleStyle.Render("Listing") + "\n" + dimStyle.Render("This listing is gone.") + "\n\n" + helpLine(a.keys.Back)
	}
	title := titleStyle.Render(l.Title)
	verified := ""
	if l.Owner.Verified {
		verified = okStyle.Render(" ✓")
	}
	lines := []string{
		fmt.Sprintf("%s (%s)%s", l.Owner.Name, l.Owner.OrgType, verified),
		l.Description,
		fmt.Sprintf("%s  %s", l.Category, l.Quantity),
		fmt.Sprintf("%s — %s away", l.Location.Address, l.Location.Distance),
		"Time remaining: " + a.deadlineBadge(l),
	}
	if l.PriceCents != nil {
		lines = append(lines, accentStyle.Render(formatPrice(*l.PriceCents, a.cfg.UI.CurrencySymbol)))
	}
	if l.Instructions != "" {
		lines = append(lines, dimStyle.Render("Pickup: "+l.Instructions))
	}
	return fmt.Sprintf("%s\n%s\n\n%s", title, strings.Join(lines, "\n"),
		helpLine(a.keys.Reserve, a.keys.Back, a.keys.Quit))
}

func (a *App) renderCreate() string {
	farmer := a.nav.Role == market.RoleFarmer
	heading := "Share a donation"
	if farmer {
		heading = "Sell surplus produce"
	}
	title := titleStyle.Render(heading)
	labels := []string{"Title", "Description", "Category", "Quantity"}
	if farmer {
		labels = append(labels, "Price ("+a.cfg.UI.CurrencySymbol+")")
	}
	out := title + "\n"
	for i, label := range labels {
		marker := " "
		cursor := ""
		if i == a.form.cursor {
			marker = "▶"
			cursor = "▌"
		}
		out += fmt.Sprintf("%s %-12s %s%s\n", marker, label+":", *a.form.field(i), cursor)
	}
	out += "\n[tab] next field  [enter] publish  " + helpLine(a.keys.Back, a.keys.Quit)
	out += "\n[ctrl+t] transactions  [ctrl+u] profile"
	return out
}

func (a *App) renderTransactions() string {
	heading := "My listings"
	if a.nav.Role == market.RoleReceiver {
		heading = "My reservations"
	}
	title := titleStyle.Render(heading)
	rows := a.transactionRows()
	out := title + "\n"
	if len(rows) == 0 {
		out += dimStyle.Render("Nothing here yet.") + "\n"
	}
	for i, l := range rows {
		marker := " "
		if i == a.txCursor {
			marker = "▶"
		}
		price := ""
		if l.PriceCents != nil {
			price = "  " + formatPrice(*l.PriceCents, a.cfg.UI.CurrencySymbol)
		}
		other := ""
		if l.Claimant != nil {
			other = "  ↔ " + l.Claimant.Name
		}
		out += fmt.Sprintf("%s %-28s %-10s %s%s%s\n",
			marker, truncate(l.Title, 28), a.statusBadge(l), a.deadlineBadge(l), price, other)
	}
	out += "\n" + helpLine(a.keys.UpDown, a.keys.Enter, a.keys.Home, a.keys.Profile, a.keys.Quit)
	if a.nav.Role != market.RoleReceiver {
		out += "  [ctrl+x] withdraw"
	}
	return out
}

func (a *App) renderTracking() string {
	l, err := a.store.Get(a.nav.SelectedListing)
	if err != nil {
		return titleStyle.Render("Tracking") + "\n" + dimStyle.Render("This listing is gone.") + "\n\n" + helpLine(a.keys.Back)
	}
	title := titleStyle.Render("Tracking — " + l.Title)
	out := title + "\n" + a.renderProgress(l) + "\n"

	out += "\n" + titleStyle.Render("Messages") + "\n"
	if t, terr := a.life.Thread(l.ID); terr == nil {
		history := t.History()
		if len(history) == 0 {
			out += dimStyle.Render("No messages yet.") + "\n"
		}
		for _, msg := range history {
			style := theirsStyle
			if msg.Sender == a.nav.Role || (a.nav.Role == market.RoleReceiver && msg.Sender == market.RoleReceiver) {
				style = mineStyle
			}
			out += style.Render(fmt.Sprintf("%s %s: %s",
				msg.Timestamp.In(a.tz).Format(a.cfg.UI.TimeFormat), msg.Sender, msg.Text)) + "\n"
		}
	} else {
		out += dimStyle.Render("Messaging closed.") + "\n"
	}

	if l.Status == market.StatusReserved {
		out += fmt.Sprintf("\n> %s▌\n", a.msgInput)
	}
	out += "\n[enter] send  " + helpLine(a.keys.Back)
	if a.nav.Role != market.RoleReceiver && l.Status == market.StatusReserved {
		out += "  " + helpLine(a.keys.ConfirmPickup)
	}
	if l.Status == market.StatusReserved {
		out += "  " + helpLine(a.keys.CancelClaim)
	}
	return out
}

// renderProgress is the three-step tracker the original screens share:
// available → reserved → picked up.
func (a *App) renderProgress(l market.Listing) string {
	steps := []struct {
		label string
		done  bool
	}{
		{"Available", true},
		{"Reserved", l.Status == market.StatusReserved || l.Status == market.StatusCompleted},
		{"Picked up", l.Status == market.StatusCompleted},
	}
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		mark := "○"
		style := dimStyle
		if s.done {
			mark = "●"
			style = accentStyle
		}
		parts = append(parts, style.Render(mark+" "+s.label))
	}
	line := strings.Join(parts, dimStyle.Render(" ── "))
	if l.Status == market.StatusCancelled {
		line += "  " + urgentStyle.Render("(cancelled)")
	}
	return line
}

func (a *App) renderProfile() string {
	title := titleStyle.Render("Profile — " + string(a.nav.Role))
	out := fmt.Sprintf("%s\n%s (%s)\n\n", title, a.profileName, a.cfg.Profile.OrgType)
	out += fmt.Sprintf("Food saved:          %d kg\n", a.stats.FoodSavedKg)
	out += fmt.Sprintf("Transactions:        %d\n", a.stats.Transactions)
	out += fmt.Sprintf("Meals redistributed: %d\n", a.stats.MealsRedistributed)
	out += "\n[s] save profile  " + helpLine(a.keys.Transactions, a.keys.Home, a.keys.Quit)
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalConfirmPickup:
		return modalStyle.Render("Confirm pickup?\nThis completes the exchange.\n[y] Yes  [n] No")
	case modalConfirmCancel:
		return modalStyle.Render("Cancel this reservation?\nThe listing goes back to available.\n[y] Yes  [n] No")
	default:
		return ""
	}
}

// deadlineBadge renders the shared time-remaining projection.
func (a *App) deadlineBadge(l market.Listing) string {
	remaining, expired := l.TimeRemaining(a.now())
	if expired {
		return urgentStyle.Render("expired")
	}
	if remaining < time.Hour {
		return urgentStyle.Render(formatRemaining(remaining))
	}
	return okStyle.Render(formatRemaining(remaining))
}

func (a *App) statusBadge(l market.Listing) string {
	switch l.ProjectedStatus(a.now()) {
	case market.StatusReserved:
		return accentStyle.Render("reserved")
	case market.StatusCompleted:
		return okStyle.Render("completed")
	case market.StatusCancelled:
		return dimStyle.Render("cancelled")
	case market.StatusExpired:
		return urgentStyle.Render("expired")
	default:
		return okStyle.Render("available")
	}
}

func formatRemaining(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func formatPrice(cents int64, symbol string) string {
	return fmt.Sprintf("%.2f%s", float64(cents)/100, symbol)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
