// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-ferrari-store/internal/service"
	"github.com/MKhiriev/go-ferrari-store/internal/validators"
	"github.com/MKhiriev/go-ferrari-store/models"
)

// catalogKinds is the cycle walked by the type filter key; "" lists
// everything.
var catalogKinds = append([]models.ProductType{""}, models.ProductTypes...)

// productItem adapts a product to the bubbles list.
type productItem struct {
	product models.Product
}

func (i productItem) Title() string { return i.product.Name }

func (i productItem) Description() string {
	parts := []string{productTypeLabel(i.product.Type)}
	if i.product.Scale != "" {
		parts = append(parts, i.product.Scale)
	}
	parts = append(parts, formatPrice(i.product.PriceCents))
	if i.product.Stock <= 0 {
		parts = append(parts, "sold out")
	}
	return strings.Join(parts, " · ")
}

func (i productItem) FilterValue() string { return i.product.Name }

// CatalogModel is the start page: a searchable product list filtered by
// product type. It works signed out.
type CatalogModel struct {
	ctx     context.Context
	catalog service.ClientCatalogService
	auth    service.ClientAuthService
	sess    *session

	list   list.Model
	kind   int
	total  int
	loaded bool

	notice string
	errMsg string
}

// NewCatalogModel creates the catalog page. Products are fetched on the
// first Init.
func NewCatalogModel(ctx context.Context, catalog service.ClientCatalogService, auth service.ClientAuthService, sess *session) *CatalogModel {
	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("miniature", "miniatures")

	return &CatalogModel{
		ctx:     ctx,
		catalog: catalog,
		auth:    auth,
		sess:    sess,
		list:    l,
	}
}

func (m *CatalogModel) Init() tea.Cmd {
	if m.loaded {
		return nil
	}
	return m.cmdLoad()
}

func (m *CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case productsLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.total = msg.page.Total
		items := make([]list.Item, 0, len(msg.page.Products))
		for _, p := range msg.page.Products {
			items = append(items, productItem{product: p})
		}
		return m, m.list.SetItems(items)

	case reloadMsg:
		return m, m.cmdLoad()

	case noticeMsg:
		m.notice = msg.text
		return m, nil

	case loggedOutMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.notice = "Signed out"
		return m, nil

	case tea.WindowSizeMsg:
		// header, help and status lines
		m.list.SetSize(msg.Width-4, max(msg.Height-12, 5))
		return m, nil

	case tea.KeyMsg:
		if m.filtering() {
			break
		}
		switch {
		case key.Matches(msg, keys.enter):
			item, ok := m.list.SelectedItem().(productItem)
			if !ok {
				return m, nil
			}
			return m, navigate(pageDetail, showProductMsg{product: item.product})
		case key.Matches(msg, keys.kind):
			m.kind = (m.kind + 1) % len(catalogKinds)
			m.list.ResetFilter()
			return m, m.cmdLoad()
		case key.Matches(msg, keys.reload):
			return m, m.cmdLoad()
		case key.Matches(msg, keys.cart):
			return m, navigate(pageCart, nil)
		case key.Matches(msg, keys.orders):
			if !m.sess.signedIn() {
				return m, navigate(pageLogin, signInMsg{reason: "Sign in to see your orders", next: pageOrders})
			}
			return m, navigate(pageOrders, nil)
		case key.Matches(msg, keys.account):
			if m.sess.signedIn() {
				m.notice = "Already signed in as " + m.sess.label()
				return m, nil
			}
			return m, navigate(pageLogin, signInMsg{next: pageCatalog})
		case key.Matches(msg, keys.logout):
			if !m.sess.signedIn() {
				return m, nil
			}
			return m, m.cmdLogout()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *CatalogModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Type: %s │ %d in catalog │ Signed in as: %s\n\n",
		selectedStyle.Render(productTypeLabel(catalogKinds[m.kind])), m.total, m.sess.label())
	b.WriteString(m.list.View())
	b.WriteString(statusLines(m.notice, m.errMsg))

	hotKeys := []key.Binding{keys.enter, keys.filter, keys.kind, keys.cart, keys.orders, keys.reload, keys.version}
	if m.sess.signedIn() {
		hotKeys = append(hotKeys, keys.logout)
	} else {
		hotKeys = append(hotKeys, keys.account)
	}
	return renderPage("FERRARI STORE", b.String(), helpLine(hotKeys...))
}

// filtering reports whether the search box is capturing keys.
func (m *CatalogModel) filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// filter is the catalog request for the selected product type.
func (m *CatalogModel) filter() models.ProductFilter {
	return models.ProductFilter{
		Type:  catalogKinds[m.kind],
		Sort:  models.SortNewest,
		Limit: validators.MaxPageLimit,
	}
}

func (m *CatalogModel) cmdLoad() tea.Cmd {
	ctx, catalog, filter := m.ctx, m.catalog, m.filter()
	return func() tea.Msg {
		page, err := catalog.ListProducts(ctx, filter)
		return productsLoadedMsg{page: page, err: err}
	}
}

func (m *CatalogModel) cmdLogout() tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		return loggedOutMsg{err: auth.Logout(ctx)}
	}
}

// navigate opens page, delivering payload to it when set.
func navigate(page string, payload tea.Msg) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: page, Payload: payload} }
}
