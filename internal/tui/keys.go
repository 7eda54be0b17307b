package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit          key.Binding
	Back          key.Binding
	Enter         key.Binding
	UpDown        key.Binding
	Search        key.Binding
	Reserve       key.Binding
	ConfirmPickup key.Binding
	CancelClaim   key.Binding
	Create        key.Binding
	Transactions  key.Binding
	Profile       key.Binding
	Home          key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Enter:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		UpDown:        key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "move")),
		Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Reserve:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reserve")),
		ConfirmPickup: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "confirm pickup")),
		CancelClaim:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cancel")),
		Create:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create")),
		Transactions:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "transactions")),
		Profile:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
		Home:          key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home")),
	}
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return strings.Join(parts, "  ")
}
