package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	up       key.Binding
	down     key.Binding
	left     key.Binding
	right    key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	backtab  key.Binding
	quit     key.Binding
	account  key.Binding
	logout   key.Binding
	cart     key.Binding
	orders   key.Binding
	kind     key.Binding
	reload   key.Binding
	add      key.Binding
	plus     key.Binding
	minus    key.Binding
	remove   key.Binding
	checkout key.Binding
	cancel   key.Binding
	copy     key.Binding
	version  key.Binding
	signup   key.Binding
	filter   key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev")),
	right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
	enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	esc:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	backtab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
	quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	account:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "sign in")),
	logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "sign out")),
	cart:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cart")),
	orders:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "orders")),
	kind:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type")),
	reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	add:      key.NewBinding(key.WithKeys("enter", "b"), key.WithHelp("enter", "add to cart")),
	plus:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more")),
	minus:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "less")),
	remove:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
	checkout: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "checkout")),
	cancel:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cancel order")),
	copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
	version:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "version")),
	signup:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "create account")),
	filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
}

var helpModel = help.New()

// helpLine renders the short help for the given bindings.
func helpLine(bindings ...key.Binding) string {
	return helpModel.ShortHelpView(bindings)
}
