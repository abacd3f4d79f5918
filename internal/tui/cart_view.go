package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-ferrari-store/internal/service"
	"github.com/MKhiriev/go-ferrari-store/models"
)

// CartModel lists the cart lines. Signed out it edits the local cart.
type CartModel struct {
	ctx  context.Context
	cart service.ClientCartService
	sess *session

	view    models.CartView
	cursor  int
	loading bool

	notice string
	errMsg string
}

func NewCartModel(ctx context.Context, cart service.ClientCartService, sess *session) *CartModel {
	return &CartModel{ctx: ctx, cart: cart, sess: sess}
}

// Init reloads the cart every time the page opens; a login may have merged
// new lines into it.
func (m *CartModel) Init() tea.Cmd {
	m.loading = true
	return m.cmdLoad()
}

func (m *CartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case cartLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if sessionExpired(msg.err) {
				return m, func() tea.Msg { return sessionExpiredMsg{next: pageCart} }
			}
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.view = msg.view
		if m.cursor >= len(m.view.Lines) {
			m.cursor = max(len(m.view.Lines)-1, 0)
		}
		return m, nil

	case noticeMsg:
		m.notice = msg.text
		return m, nil

	case tea.KeyMsg:
		m.notice = ""
		switch {
		case key.Matches(msg, keys.esc):
			return m, navigate(pageCatalog, nil)
		case key.Matches(msg, keys.up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.down):
			if m.cursor < len(m.view.Lines)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.reload):
			return m, m.cmdLoad()
		case key.Matches(msg, keys.enter):
			line, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m, navigate(pageDetail, showProductMsg{product: line.Product})
		case key.Matches(msg, keys.plus):
			line, ok := m.selected()
			if !ok || line.Quantity >= models.MaxCartLineQuantity {
				return m, nil
			}
			return m, m.cmdSetQuantity(line.Product.ProductID, line.Quantity+1)
		case key.Matches(msg, keys.minus):
			line, ok := m.selected()
			if !ok || line.Quantity <= 1 {
				return m, nil
			}
			return m, m.cmdSetQuantity(line.Product.ProductID, line.Quantity-1)
		case key.Matches(msg, keys.remove):
			line, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m, m.cmdRemove(line.Product.ProductID)
		case key.Matches(msg, keys.checkout):
			if len(m.view.Lines) == 0 {
				m.errMsg = humanizeError(service.ErrEmptyCart)
				return m, nil
			}
			if !m.sess.signedIn() {
				return m, navigate(pageLogin, signInMsg{reason: "Sign in to check out, your cart comes with you", next: pageCart})
			}
			return m, navigate(pageCheckout, cartLoadedMsg{view: m.view})
		}
	}
	return m, nil
}

func (m *CartModel) View() string {
	var b strings.Builder

	switch {
	case m.loading && len(m.view.Lines) == 0:
		b.WriteString("Loading cart...")
	case len(m.view.Lines) == 0:
		b.WriteString("Your cart is empty. Pick something from the catalog.")
	default:
		b.WriteString("  Product                           │ Qty │ Total\n")
		b.WriteString("  ──────────────────────────────────┼─────┼───────────────\n")
		for i, line := range m.view.Lines {
			row := fmt.Sprintf("%-34s │ %3d │ %s", fitText(line.Product.Name, 34), line.Quantity, formatPrice(line.LineTotalCents))
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + row))
			} else {
				b.WriteString("  " + row)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\n%d items │ Subtotal: %s", m.view.ItemsCount, selectedStyle.Render(formatPrice(m.view.SubtotalCents)))
		if !m.sess.signedIn() {
			b.WriteString("\nSaved on this device until you sign in.")
		}
	}
	b.WriteString(statusLines(m.notice, m.errMsg))

	return renderPage("CART", b.String(),
		helpLine(keys.up, keys.down, keys.plus, keys.minus, keys.remove, keys.checkout, keys.esc))
}

func (m *CartModel) selected() (models.CartLine, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Lines) {
		return models.CartLine{}, false
	}
	return m.view.Lines[m.cursor], true
}

func (m *CartModel) cmdLoad() tea.Cmd {
	ctx, cart := m.ctx, m.cart
	return func() tea.Msg {
		view, err := cart.Items(ctx)
		return cartLoadedMsg{view: view, err: err}
	}
}

func (m *CartModel) cmdSetQuantity(productID int64, quantity int) tea.Cmd {
	ctx, cart := m.ctx, m.cart
	return func() tea.Msg {
		view, err := cart.SetQuantity(ctx, productID, quantity)
		return cartLoadedMsg{view: view, err: err}
	}
}

func (m *CartModel) cmdRemove(productID int64) tea.Cmd {
	ctx, cart := m.ctx, m.cart
	return func() tea.Msg {
		view, err := cart.RemoveItem(ctx, productID)
		return cartLoadedMsg{view: view, err: err}
	}
}
