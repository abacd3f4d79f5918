package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ferrari-store/internal/mock"
	"github.com/MKhiriev/go-ferrari-store/models"
)

var specialKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+r":    tea.KeyCtrlR,
}

// press builds the key message for a named key or typed text.
func press(k string) tea.KeyMsg {
	if t, ok := specialKeys[k]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// collect runs cmd and returns every message it produces, flattening
// batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// find returns the first message of type T produced by cmd.
func find[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	for _, msg := range collect(cmd) {
		if m, ok := msg.(T); ok {
			return m
		}
	}
	var zero T
	t.Fatalf("no %T produced", zero)
	return zero
}

type clientMocks struct {
	auth    *mock.MockClientAuthService
	catalog *mock.MockClientCatalogService
	cart    *mock.MockClientCartService
	orders  *mock.MockClientOrderService
}

func newClientMocks(t *testing.T) clientMocks {
	ctrl := gomock.NewController(t)
	return clientMocks{
		auth:    mock.NewMockClientAuthService(ctrl),
		catalog: mock.NewMockClientCatalogService(ctrl),
		cart:    mock.NewMockClientCartService(ctrl),
		orders:  mock.NewMockClientOrderService(ctrl),
	}
}

func signedIn() *session {
	s := &session{}
	s.set(21, "tifosi@example.com", "Tifosi")
	return s
}

var (
	sf90 = models.Product{ProductID: 7, Name: "SF90 Stradale", Type: models.ProductTypeCar, Scale: "1:18", PriceCents: 129990, Stock: 3}
	sf25 = models.Product{ProductID: 9, Name: "SF-25 Leclerc", Type: models.ProductTypeFormula1, Scale: "1:43", PriceCents: 45990, Stock: 0}
)

func sampleCart() models.CartView {
	return models.NewCartView([]models.CartLine{
		{Product: sf90, Quantity: 2},
		{Product: models.Product{ProductID: 11, Name: "Helmet 1:2", PriceCents: 89900, Stock: 5}, Quantity: 1},
	})
}

var testCtx = context.Background()
