package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/models"
)

type cartRepository struct {
	*DB
	logger *logger.Logger
}

func NewCartRepository(db *DB, logger *logger.Logger) CartRepository {
	logger.Debug().Msg("creating cart repository")
	return &cartRepository{DB: db, logger: logger}
}

func (c *cartRepository) GetCart(ctx context.Context, userID int64) (models.Cart, error) {
	log := logger.FromContext(ctx)

	rows, err := c.DB.QueryContext(ctx, selectCartItems, userID)
	if err != nil {
		log.Err(err).Str("func", "*cartRepository.GetCart").Int64("user_id", userID).Msg("failed to query cart")
		return models.Cart{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	cart := models.Cart{UserID: userID, Items: make([]models.CartItem, 0, 8)}
	for rows.Next() {
		var item models.CartItem
		if err = rows.Scan(&item.ProductID, &item.Quantity, &item.UpdatedAt); err != nil {
			return models.Cart{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		cart.Items = append(cart.Items, item)
	}
	if err = rows.Err(); err != nil {
		return models.Cart{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return cart, nil
}

// SetItemQuantity upserts the line. A quantity of zero or less removes it.
func (c *cartRepository) SetItemQuantity(ctx context.Context, userID int64, item models.CartItem) error {
	if item.Quantity <= 0 {
		return c.RemoveItem(ctx, userID, item.ProductID)
	}

	if _, err := c.DB.ExecContext(ctx, upsertCartItem, userID, item.ProductID, item.Quantity); err != nil {
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return ErrProductNotFound
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "*cartRepository.SetItemQuantity").
			Int64("user_id", userID).
			Int64("product_id", item.ProductID).
			Msg("failed to upsert cart item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (c *cartRepository) RemoveItem(ctx context.Context, userID, productID int64) error {
	result, err := c.DB.ExecContext(ctx, deleteCartItem, userID, productID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (c *cartRepository) ClearCart(ctx context.Context, userID int64) error {
	if _, err := c.DB.ExecContext(ctx, clearCart, userID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// ReplaceItems swaps the whole cart for items inside one transaction using
// a prepared upsert statement.
func (c *cartRepository) ReplaceItems(ctx context.Context, userID int64, items []models.CartItem) error {
	log := logger.FromContext(ctx)

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*cartRepository.ReplaceItems").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, clearCart, userID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if len(items) > 0 {
		stmt, prepErr := tx.PrepareContext(ctx, upsertCartItem)
		if prepErr != nil {
			return fmt.Errorf("%w: %w", ErrPreparingStatement, prepErr)
		}
		defer stmt.Close()

		for idx, item := range items {
			if item.Quantity <= 0 {
				continue
			}
			if _, err = stmt.ExecContext(ctx, userID, item.ProductID, item.Quantity); err != nil {
				log.Err(err).
					Str("func", "*cartRepository.ReplaceItems").
					Int("iteration", idx+1).
					Int64("product_id", item.ProductID).
					Msg("failed to insert cart item")
				if postgresError(err) == pgerrcode.ForeignKeyViolation {
					return ErrProductNotFound
				}
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "*cartRepository.ReplaceItems").
		Int64("user_id", userID).
		Int("items_count", len(items)).
		Msg("cart replaced")

	return nil
}
