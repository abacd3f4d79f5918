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

// DetailModel shows one product and adds a chosen quantity to the cart.
type DetailModel struct {
	ctx  context.Context
	cart service.ClientCartService

	product  models.Product
	quantity int
	adding   bool

	notice string
	errMsg string
}

func NewDetailModel(ctx context.Context, cart service.ClientCartService) *DetailModel {
	return &DetailModel{ctx: ctx, cart: cart, quantity: 1}
}

func (m *DetailModel) Init() tea.Cmd {
	return nil
}

func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case showProductMsg:
		m.product = msg.product
		m.quantity = 1
		m.adding = false
		m.notice, m.errMsg = "", ""
		return m, nil

	case cartLoadedMsg:
		m.adding = false
		if msg.err != nil {
			if sessionExpired(msg.err) {
				return m, func() tea.Msg { return sessionExpiredMsg{next: pageCart} }
			}
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.notice = fmt.Sprintf("Added %d × %s. Cart: %d items, %s",
			m.quantity, m.product.Name, msg.view.ItemsCount, formatPrice(msg.view.SubtotalCents))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return m, navigate(pageCatalog, nil)
		case key.Matches(msg, keys.cart):
			return m, navigate(pageCart, nil)
		case key.Matches(msg, keys.plus):
			if m.quantity < m.maxQuantity() {
				m.quantity++
			}
		case key.Matches(msg, keys.minus):
			if m.quantity > 1 {
				m.quantity--
			}
		case key.Matches(msg, keys.add):
			if m.adding {
				return m, nil
			}
			if !m.product.InStock(m.quantity) {
				m.errMsg = "Not enough units in stock"
				return m, nil
			}
			m.adding = true
			m.notice, m.errMsg = "", ""
			return m, m.cmdAdd()
		}
	}
	return m, nil
}

func (m *DetailModel) View() string {
	p := m.product

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", selectedStyle.Render(p.Name))
	fmt.Fprintf(&b, "Type     │ %s\n", productTypeLabel(p.Type))
	if p.Scale != "" {
		fmt.Fprintf(&b, "Scale    │ %s\n", p.Scale)
	}
	if p.Year != 0 {
		fmt.Fprintf(&b, "Year     │ %d\n", p.Year)
	}
	fmt.Fprintf(&b, "Price    │ %s\n", formatPrice(p.PriceCents))
	if p.Stock > 0 {
		fmt.Fprintf(&b, "Stock    │ %d\n", p.Stock)
	} else {
		b.WriteString("Stock    │ sold out\n")
	}
	if p.ImageURL != "" {
		fmt.Fprintf(&b, "Image    │ %s\n", p.ImageURL)
	}
	if p.Description != "" {
		b.WriteString("\n")
		b.WriteString(p.Description)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nQuantity: [ %d ]  Total: %s", m.quantity, formatPrice(p.PriceCents*int64(m.quantity)))
	if m.adding {
		b.WriteString("\n\n[Adding...]")
	}
	b.WriteString(statusLines(m.notice, m.errMsg))

	return renderPage("PRODUCT", b.String(), helpLine(keys.plus, keys.minus, keys.add, keys.cart, keys.esc))
}

// maxQuantity caps the selector at the stock and the per-line limit.
func (m *DetailModel) maxQuantity() int {
	return max(min(m.product.Stock, models.MaxCartLineQuantity), 1)
}

func (m *DetailModel) cmdAdd() tea.Cmd {
	ctx, cart, productID, quantity := m.ctx, m.cart, m.product.ProductID, m.quantity
	return func() tea.Msg {
		view, err := cart.AddItem(ctx, productID, quantity)
		return cartLoadedMsg{view: view, err: err}
	}
}
