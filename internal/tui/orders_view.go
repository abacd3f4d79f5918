package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-ferrari-store/internal/service"
	"github.com/MKhiriev/go-ferrari-store/models"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// OrdersModel lists the signed-in user's orders, newest first, with the
// items of the selected one.
type OrdersModel struct {
	ctx    context.Context
	orders service.ClientOrderService

	list    []models.Order
	cursor  int
	loading bool

	notice string
	errMsg string
}

func NewOrdersModel(ctx context.Context, orders service.ClientOrderService) *OrdersModel {
	return &OrdersModel{ctx: ctx, orders: orders}
}

func (m *OrdersModel) Init() tea.Cmd {
	m.loading = true
	return m.cmdLoad()
}

func (m *OrdersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case orderPlacedMsg:
		m.notice = fmt.Sprintf("Order #%d placed, total %s", msg.order.OrderID, formatPrice(msg.order.TotalCents))
		return m, nil

	case ordersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if sessionExpired(msg.err) {
				return m, func() tea.Msg { return sessionExpiredMsg{next: pageOrders} }
			}
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.list = msg.orders
		if m.cursor >= len(m.list) {
			m.cursor = max(len(m.list)-1, 0)
		}
		return m, nil

	case orderCancelledMsg:
		if msg.err != nil {
			if sessionExpired(msg.err) {
				return m, func() tea.Msg { return sessionExpiredMsg{next: pageOrders} }
			}
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.notice = fmt.Sprintf("Order #%d cancelled", msg.order.OrderID)
		for i := range m.list {
			if m.list[i].OrderID == msg.order.OrderID {
				m.list[i] = msg.order
			}
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Clipboard is not available: " + msg.err.Error()
			return m, nil
		}
		m.notice = "Copied " + msg.text
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
			if m.cursor < len(m.list)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.reload):
			return m, m.cmdLoad()
		case key.Matches(msg, keys.copy):
			order, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m, cmdCopy(strconv.FormatInt(order.OrderID, 10))
		case key.Matches(msg, keys.cancel):
			order, ok := m.selected()
			if !ok {
				return m, nil
			}
			if !order.Status.CanTransitionTo(models.OrderCancelled) {
				m.errMsg = humanizeError(service.ErrOrderNotCancellable)
				return m, nil
			}
			return m, m.cmdCancel(order.OrderID)
		}
	}
	return m, nil
}

func (m *OrdersModel) View() string {
	var b strings.Builder

	switch {
	case m.loading && len(m.list) == 0:
		b.WriteString("Loading orders...")
	case len(m.list) == 0:
		b.WriteString("No orders yet.")
	default:
		b.WriteString("  Order   │ Date       │ Status     │ Total\n")
		b.WriteString("  ────────┼────────────┼────────────┼───────────────\n")
		for i, o := range m.list {
			row := fmt.Sprintf("#%-6d │ %s │ %-10s │ %s", o.OrderID, o.CreatedAt.Format("2006-01-02"), o.Status, formatPrice(o.TotalCents))
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + row))
			} else {
				b.WriteString("  " + row)
			}
			b.WriteString("\n")
		}

		if o, ok := m.selected(); ok {
			fmt.Fprintf(&b, "\nShip to: %s │ Payment: %s\n", o.ShippingAddress, paymentLabel(o.PaymentMethod))
			for _, item := range o.Items {
				fmt.Fprintf(&b, "%3d × %-34s %s\n", item.Quantity, fitText(item.Name, 34), formatPrice(item.LineTotalCents()))
			}
			fmt.Fprintf(&b, "Shipping: %s", formatPrice(o.ShippingCents))
		}
	}
	b.WriteString(statusLines(m.notice, m.errMsg))

	return renderPage("MY ORDERS", b.String(),
		helpLine(keys.up, keys.down, keys.copy, keys.cancel, keys.reload, keys.esc))
}

func (m *OrdersModel) selected() (models.Order, bool) {
	if m.cursor < 0 || m.cursor >= len(m.list) {
		return models.Order{}, false
	}
	return m.list[m.cursor], true
}

func (m *OrdersModel) cmdLoad() tea.Cmd {
	ctx, orders := m.ctx, m.orders
	return func() tea.Msg {
		list, err := orders.ListOrders(ctx)
		return ordersLoadedMsg{orders: list, err: err}
	}
}

func (m *OrdersModel) cmdCancel(orderID int64) tea.Cmd {
	ctx, orders := m.ctx, m.orders
	return func() tea.Msg {
		order, err := orders.CancelOrder(ctx, orderID)
		return orderCancelledMsg{order: order, err: err}
	}
}

func cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{text: text, err: writeClipboard(text)}
	}
}
