// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-ferrari-store/internal/service"
	"github.com/MKhiriev/go-ferrari-store/internal/validators"
	"github.com/MKhiriev/go-ferrari-store/models"
)

var paymentMethods = []models.PaymentMethod{
	models.PaymentPix,
	models.PaymentCard,
	models.PaymentBoleto,
	models.PaymentCashOnDelivery,
}

func paymentLabel(m models.PaymentMethod) string {
	switch m {
	case models.PaymentPix:
		return "Pix"
	case models.PaymentCard:
		return "Credit card"
	case models.PaymentBoleto:
		return "Boleto"
	case models.PaymentCashOnDelivery:
		return "Cash on delivery"
	default:
		return string(m)
	}
}

const (
	focusAddress = iota
	focusPayment
)

// CheckoutModel collects the shipping address and payment method and places
// the order for the current cart.
type CheckoutModel struct {
	ctx    context.Context
	orders service.ClientOrderService

	view    models.CartView
	address textinput.Model
	payment int
	focus   int

	spinner    spinner.Model
	submitting bool
	errMsg     string
}

func NewCheckoutModel(ctx context.Context, orders service.ClientOrderService) *CheckoutModel {
	address := textinput.New()
	address.Placeholder = "street, number, city, CEP"
	address.CharLimit = validators.MaxAddressLength
	address.Width = 50
	address.Focus()

	return &CheckoutModel{
		ctx:     ctx,
		orders:  orders,
		address: address,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *CheckoutModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *CheckoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case cartLoadedMsg:
		m.view = msg.view
		m.errMsg = ""
		return m, nil

	case orderPlacedMsg:
		m.submitting = false
		if msg.err != nil {
			if sessionExpired(msg.err) {
				return m, func() tea.Msg { return sessionExpiredMsg{next: pageCart} }
			}
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.address.Reset()
		return m, navigate(pageOrders, msg)

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.errMsg = ""
			return m, navigate(pageCart, nil)
		case key.Matches(msg, keys.tab), key.Matches(msg, keys.backtab):
			m.toggleFocus()
			return m, nil
		case key.Matches(msg, keys.enter):
			return m, m.submit()
		}

		if m.focus == focusPayment {
			switch {
			case key.Matches(msg, keys.left):
				m.payment = (m.payment - 1 + len(paymentMethods)) % len(paymentMethods)
			case key.Matches(msg, keys.right):
				m.payment = (m.payment + 1) % len(paymentMethods)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.address, cmd = m.address.Update(msg)
	return m, cmd
}

func (m *CheckoutModel) View() string {
	var b strings.Builder

	for _, line := range m.view.Lines {
		fmt.Fprintf(&b, "%3d × %-34s %s\n", line.Quantity, fitText(line.Product.Name, 34), formatPrice(line.LineTotalCents))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s (shipping is added by the store)\n\n", selectedStyle.Render(formatPrice(m.view.SubtotalCents)))

	b.WriteString("Address  │ [")
	b.WriteString(m.address.View())
	b.WriteString("]\n")

	b.WriteString("Payment  │ ")
	for i, method := range paymentMethods {
		label := paymentLabel(method)
		if i == m.payment {
			label = "(" + label + ")"
			if m.focus == focusPayment {
				label = selectedStyle.Render(label)
			}
		}
		b.WriteString(label)
		b.WriteString("  ")
	}
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n" + m.spinner.View() + " Placing order...\n")
	} else {
		b.WriteString("\n[Place order]\n")
	}
	b.WriteString(statusLines("", m.errMsg))

	return renderPage("CHECKOUT", strings.TrimRight(b.String(), "\n"),
		helpLine(keys.tab, keys.left, keys.right, keys.enter, keys.esc))
}

func (m *CheckoutModel) toggleFocus() {
	if m.focus == focusAddress {
		m.focus = focusPayment
		m.address.Blur()
		return
	}
	m.focus = focusAddress
	m.address.Focus()
}

func (m *CheckoutModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}
	if len(m.view.Lines) == 0 {
		m.errMsg = humanizeError(service.ErrEmptyCart)
		return nil
	}

	address := strings.TrimSpace(m.address.Value())
	if utf8.RuneCountInString(address) < validators.MinAddressLength {
		m.errMsg = "Enter the full shipping address"
		return nil
	}

	m.errMsg = ""
	m.submitting = true

	ctx, orders := m.ctx, m.orders
	req := models.CheckoutRequest{ShippingAddress: address, PaymentMethod: paymentMethods[m.payment]}
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		order, err := orders.Checkout(ctx, req)
		return orderPlacedMsg{order: order, err: err}
	})
}
