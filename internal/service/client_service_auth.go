package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ferrari-store/internal/adapter"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
	"github.com/MKhiriev/go-ferrari-store/internal/utils"
	"github.com/MKhiriev/go-ferrari-store/models"
)

type clientAuthService struct {
	sessions store.LocalSessionRepository
	adapter  adapter.ServerAdapter
	cart     ClientCartService
	logger   *logger.Logger

	now func() time.Time
}

func NewClientAuthService(sessions store.LocalSessionRepository, serverAdapter adapter.ServerAdapter, cart ClientCartService, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		sessions: sessions,
		adapter:  serverAdapter,
		cart:     cart,
		logger:   logger,
		now:      time.Now,
	}
}

func (a *clientAuthService) Register(ctx context.Context, user models.User) (models.User, error) {
	user.Email = normalizeEmail(user.Email)

	created, err := a.adapter.Register(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}
	if created.Email == "" {
		created.Email = user.Email
	}

	if err = a.startSession(ctx, created); err != nil {
		return models.User{}, err
	}
	return created, nil
}

func (a *clientAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	user.Email = normalizeEmail(user.Email)

	found, err := a.adapter.Login(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	if err = a.startSession(ctx, found); err != nil {
		return models.User{}, err
	}
	return found, nil
}

// startSession persists the token the adapter just received and folds the
// signed-out cart into the server cart.
func (a *clientAuthService) startSession(ctx context.Context, user models.User) error {
	log := a.logger.With().Str("func", "clientAuthService.startSession").Logger()

	userID := user.UserID
	if userID == 0 {
		id, err := utils.ParseUserIDFromJWT(a.adapter.Token())
		if err != nil {
			return fmt.Errorf("read user id from token: %w", err)
		}
		userID = id
	}

	session := models.LocalSession{
		UserID:  userID,
		Email:   user.Email,
		Token:   a.adapter.Token(),
		SavedAt: a.now(),
	}
	if err := a.sessions.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if err := a.cart.SyncLocalCart(ctx); err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("local cart merge failed, will retry in background")
	}
	return nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	a.adapter.SetToken("")
	if err := a.sessions.DeleteSession(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (a *clientAuthService) RestoreSession(ctx context.Context) (models.LocalSession, error) {
	session, err := a.sessions.GetSession(ctx)
	if err != nil {
		return models.LocalSession{}, err
	}

	a.adapter.SetToken(session.Token)
	if _, err = a.adapter.Profile(ctx); err != nil {
		a.adapter.SetToken("")

		mapped := mapAdapterError(err)
		if errors.Is(mapped, ErrTokenIsExpired) || errors.Is(mapped, ErrTokenIsExpiredOrInvalid) {
			if delErr := a.sessions.DeleteSession(ctx); delErr != nil {
				a.logger.Err(delErr).Str("func", "clientAuthService.RestoreSession").Msg("failed to drop expired session")
			}
			return models.LocalSession{}, ErrSessionExpired
		}
		return models.LocalSession{}, fmt.Errorf("verify session: %w", mapped)
	}

	return session, nil
}

func (a *clientAuthService) LoggedIn() bool {
	return a.adapter.Token() != ""
}
