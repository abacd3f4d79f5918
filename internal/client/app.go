package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ferrari-store/internal/config"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/service"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
	"github.com/MKhiriev/go-ferrari-store/models"
)

// UI is the interactive front end driven by [App].
type UI interface {
	Run(ctx context.Context, restored models.LocalSession) error
}

type App struct {
	services *service.ClientServices
	ui       UI
	workers  config.ClientWorkers

	logger *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, workers config.ClientWorkers, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client services and UI are required")
	}
	return &App{services: services, ui: ui, workers: workers, logger: logger}, nil
}

// Run restores the previous session, starts the background cart sync and
// blocks in the UI until the user quits.
func (a *App) Run(ctx context.Context) error {
	session, err := a.services.AuthService.RestoreSession(ctx)
	switch {
	case err == nil:
		a.logger.Info().Int64("user_id", session.UserID).Msg("session restored")
	case errors.Is(err, store.ErrLocalSessionNotFound):
		a.logger.Debug().Msg("no saved session, starting signed out")
	case errors.Is(err, service.ErrSessionExpired):
		a.logger.Info().Msg("saved session expired, starting signed out")
	default:
		// the store may be down; the catalog reports that itself
		a.logger.Warn().Err(err).Msg("could not verify saved session, starting signed out")
	}

	a.services.CartSyncJob.Start(ctx, a.workers.SyncInterval)
	defer a.services.CartSyncJob.Stop()

	if err = a.ui.Run(ctx, session); err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}
