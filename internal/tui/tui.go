// Package tui is the terminal storefront: a Bubble Tea program that browses
// the catalog, edits the cart, signs the shopper in and places orders.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/service"
	"github.com/MKhiriev/go-ferrari-store/models"
)

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{services: services, buildInfo: buildInfo, logger: logger}
}

// Run shows the storefront until the user quits or ctx is cancelled.
// restored is the session recovered from the previous run; a zero value
// starts signed out.
func (t *TUI) Run(ctx context.Context, restored models.LocalSession) error {
	root := t.newRootModel(ctx, restored)

	_, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		t.logger.Info().Msg("terminal UI stopped by shutdown signal")
		return nil
	}
	return err
}

func (t *TUI) newRootModel(ctx context.Context, restored models.LocalSession) RootModel {
	sess := &session{}
	if restored.UserID != 0 {
		sess.set(restored.UserID, restored.Email, "")
	}

	s := t.services
	pages := map[string]tea.Model{
		pageCatalog:  NewCatalogModel(ctx, s.CatalogService, s.AuthService, sess),
		pageDetail:   NewDetailModel(ctx, s.CartService),
		pageCart:     NewCartModel(ctx, s.CartService, sess),
		pageCheckout: NewCheckoutModel(ctx, s.OrderService),
		pageOrders:   NewOrdersModel(ctx, s.OrderService),
		pageLogin:    NewLoginModel(ctx, s.AuthService),
		pageRegister: NewRegisterModel(ctx, s.AuthService),
	}

	return NewRootModel(ctx, s.AuthService, sess, pages, pageCatalog, t.buildInfo)
}
