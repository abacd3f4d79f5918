package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/models"
)

const (
	localSelectCart = `SELECT product_id, quantity, updated_at FROM local_cart_items ORDER BY updated_at, product_id`
	localUpsertCart = `INSERT INTO local_cart_items (product_id, quantity, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (product_id) DO UPDATE SET quantity = excluded.quantity, updated_at = excluded.updated_at`
	localSelectQuantity = `SELECT quantity FROM local_cart_items WHERE product_id = ?`
	localDeleteCartItem = `DELETE FROM local_cart_items WHERE product_id = ?`
	localClearCart      = `DELETE FROM local_cart_items`

	localUpsertSession = `INSERT INTO local_session (id, user_id, email, token, saved_at) VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET user_id = excluded.user_id, email = excluded.email,
		token = excluded.token, saved_at = excluded.saved_at`
	localSelectSession = `SELECT user_id, email, token, saved_at FROM local_session WHERE id = 1`
	localDeleteSession = `DELETE FROM local_session`
)

// localCartRepository is the SQLite cart used while the client is signed out.
type localCartRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

func NewLocalCartRepository(db *DB, logger *logger.Logger) LocalCartRepository {
	return &localCartRepository{DB: db, logger: logger, now: time.Now}
}

func (r *localCartRepository) GetItems(ctx context.Context) ([]models.CartItem, error) {
	rows, err := r.DB.QueryContext(ctx, localSelectCart)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.CartItem, 0, 8)
	for rows.Next() {
		var item models.CartItem
		if err = rows.Scan(&item.ProductID, &item.Quantity, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

// SetQuantity stores the line; zero or less removes it.
func (r *localCartRepository) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		_, err := r.DB.ExecContext(ctx, localDeleteCartItem, productID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	}

	if _, err := r.DB.ExecContext(ctx, localUpsertCart, productID, quantity, r.now().UTC()); err != nil {
		r.logger.Err(err).Str("func", "*localCartRepository.SetQuantity").Int64("product_id", productID).Msg("failed to store cart line")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// AddQuantity adds delta to the line, capped at [models.MaxCartLineQuantity],
// and returns the resulting quantity.
func (r *localCartRepository) AddQuantity(ctx context.Context, productID int64, delta int) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRowContext(ctx, localSelectQuantity, productID).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	next := min(current+delta, models.MaxCartLineQuantity)
	if next <= 0 {
		_, err = tx.ExecContext(ctx, localDeleteCartItem, productID)
		next = 0
	} else {
		_, err = tx.ExecContext(ctx, localUpsertCart, productID, next, r.now().UTC())
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return next, nil
}

func (r *localCartRepository) RemoveItem(ctx context.Context, productID int64) error {
	return r.SetQuantity(ctx, productID, 0)
}

func (r *localCartRepository) Clear(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, localClearCart); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// TokenSealer encrypts the bearer token at rest. It is implemented by
// crypto.TokenSealer.
type TokenSealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

// localSessionRepository keeps a single signed-in session row. The token
// column holds the sealed token only.
type localSessionRepository struct {
	*DB
	sealer TokenSealer
	logger *logger.Logger
}

func NewLocalSessionRepository(db *DB, sealer TokenSealer, logger *logger.Logger) LocalSessionRepository {
	return &localSessionRepository{DB: db, sealer: sealer, logger: logger}
}

func (r *localSessionRepository) SaveSession(ctx context.Context, session models.LocalSession) error {
	if session.SavedAt.IsZero() {
		session.SavedAt = time.Now().UTC()
	}

	sealed, err := r.sealer.Seal(session.Token)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}

	if _, err = r.DB.ExecContext(ctx, localUpsertSession, session.UserID, session.Email, sealed, session.SavedAt); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// GetSession returns ErrLocalSessionNotFound also when the stored token can
// no longer be opened, e.g. after the client key was rotated.
func (r *localSessionRepository) GetSession(ctx context.Context) (models.LocalSession, error) {
	var (
		session models.LocalSession
		sealed  string
	)
	err := r.DB.QueryRowContext(ctx, localSelectSession).Scan(&session.UserID, &session.Email, &sealed, &session.SavedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LocalSession{}, ErrLocalSessionNotFound
		}
		return models.LocalSession{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	session.Token, err = r.sealer.Open(sealed)
	if err != nil {
		r.logger.Warn().Err(err).Int64("user_id", session.UserID).Msg("stored session token is unreadable, ignoring it")
		return models.LocalSession{}, ErrLocalSessionNotFound
	}
	return session, nil
}

func (r *localSessionRepository) DeleteSession(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, localDeleteSession); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
