package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-ferrari-store/internal/adapter"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
	"github.com/MKhiriev/go-ferrari-store/models"
)

type clientCartService struct {
	local   store.LocalCartRepository
	adapter adapter.ServerAdapter
	logger  *logger.Logger

	// syncMu serializes SyncLocalCart between login and the background job.
	syncMu sync.Mutex
}

func NewClientCartService(local store.LocalCartRepository, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientCartService {
	return &clientCartService{local: local, adapter: serverAdapter, logger: logger}
}

func (c *clientCartService) loggedIn() bool {
	return c.adapter.Token() != ""
}

func (c *clientCartService) Items(ctx context.Context) (models.CartView, error) {
	if c.loggedIn() {
		view, err := c.adapter.GetCart(ctx)
		if err != nil {
			return models.CartView{}, mapAdapterError(err)
		}
		return view, nil
	}
	return c.localView(ctx)
}

func (c *clientCartService) AddItem(ctx context.Context, productID int64, quantity int) (models.CartView, error) {
	if quantity <= 0 {
		return models.CartView{}, ErrInvalidDataProvided
	}

	if c.loggedIn() {
		view, err := c.adapter.AddCartItem(ctx, models.CartItemRequest{ProductID: productID, Quantity: quantity})
		if err != nil {
			return models.CartView{}, mapAdapterError(err)
		}
		return view, nil
	}

	product, err := c.adapter.GetProduct(ctx, productID)
	if err != nil {
		return models.CartView{}, mapAdapterError(err)
	}
	if !product.InStock(1) {
		return models.CartView{}, store.ErrInsufficientStock
	}

	if _, err = c.local.AddQuantity(ctx, productID, quantity); err != nil {
		return models.CartView{}, fmt.Errorf("add to local cart: %w", err)
	}
	return c.localView(ctx)
}

func (c *clientCartService) SetQuantity(ctx context.Context, productID int64, quantity int) (models.CartView, error) {
	if quantity < 0 || quantity > models.MaxCartLineQuantity {
		return models.CartView{}, ErrInvalidDataProvided
	}

	if c.loggedIn() {
		view, err := c.adapter.SetCartItem(ctx, productID, quantity)
		if err != nil {
			return models.CartView{}, mapAdapterError(err)
		}
		return view, nil
	}

	if err := c.local.SetQuantity(ctx, productID, quantity); err != nil {
		return models.CartView{}, fmt.Errorf("set local cart quantity: %w", err)
	}
	return c.localView(ctx)
}

func (c *clientCartService) RemoveItem(ctx context.Context, productID int64) (models.CartView, error) {
	if c.loggedIn() {
		view, err := c.adapter.RemoveCartItem(ctx, productID)
		if err != nil {
			return models.CartView{}, mapAdapterError(err)
		}
		return view, nil
	}

	if err := c.local.RemoveItem(ctx, productID); err != nil {
		return models.CartView{}, fmt.Errorf("remove from local cart: %w", err)
	}
	return c.localView(ctx)
}

func (c *clientCartService) SyncLocalCart(ctx context.Context) error {
	c.syncMu.Lock()
	defer c.syncMu.Unlock()

	if !c.loggedIn() {
		return nil
	}

	items, err := c.local.GetItems(ctx)
	if err != nil {
		return fmt.Errorf("read local cart: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	if _, err = c.adapter.MergeCart(ctx, items); err != nil {
		return fmt.Errorf("merge local cart: %w", mapAdapterError(err))
	}

	if err = c.local.Clear(ctx); err != nil {
		return fmt.Errorf("clear local cart: %w", err)
	}

	c.logger.Info().
		Str("func", "clientCartService.SyncLocalCart").
		Int("lines", len(items)).
		Msg("local cart merged into server cart")
	return nil
}

// localView prices the signed-out cart against the public catalog. Lines whose
// product has been removed from the catalog are dropped from the local cart.
func (c *clientCartService) localView(ctx context.Context) (models.CartView, error) {
	items, err := c.local.GetItems(ctx)
	if err != nil {
		return models.CartView{}, fmt.Errorf("read local cart: %w", err)
	}

	lines := make([]models.CartLine, 0, len(items))
	for _, item := range items {
		product, err := c.adapter.GetProduct(ctx, item.ProductID)
		if err != nil {
			mapped := mapAdapterError(err)
			if errors.Is(mapped, store.ErrProductNotFound) {
				if rmErr := c.local.RemoveItem(ctx, item.ProductID); rmErr != nil {
					return models.CartView{}, fmt.Errorf("drop missing product: %w", rmErr)
				}
				continue
			}
			return models.CartView{}, mapped
		}
		lines = append(lines, models.CartLine{Product: product, Quantity: item.Quantity})
	}

	return models.NewCartView(lines), nil
}
