package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
	"github.com/MKhiriev/go-ferrari-store/internal/validators"
	"github.com/MKhiriev/go-ferrari-store/models"
)

type cartService struct {
	cartRepository    store.CartRepository
	productRepository store.ProductRepository
	planner           CartMergePlanner
	validator         validators.Validator
	logger            *logger.Logger
}

func NewCartService(
	cartRepository store.CartRepository,
	productRepository store.ProductRepository,
	planner CartMergePlanner,
	validator validators.Validator,
	logger *logger.Logger,
) CartService {
	return &cartService{
		cartRepository:    cartRepository,
		productRepository: productRepository,
		planner:           planner,
		validator:         validator,
		logger:            logger,
	}
}

// GetCart prices the cart with current product data. Lines whose product
// has been deleted are left out.
func (c *cartService) GetCart(ctx context.Context, userID int64) (models.CartView, error) {
	cart, err := c.cartRepository.GetCart(ctx, userID)
	if err != nil {
		return models.CartView{}, err
	}

	if len(cart.Items) == 0 {
		return models.NewCartView(nil), nil
	}

	products, err := c.productsByID(ctx, cart.Items)
	if err != nil {
		return models.CartView{}, err
	}

	lines := make([]models.CartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, models.CartLine{Product: product, Quantity: item.Quantity})
	}

	return models.NewCartView(lines), nil
}

// AddItem adds item.Quantity to the line of the product. The resulting
// quantity is capped at the stock and at [models.MaxCartLineQuantity].
func (c *cartService) AddItem(ctx context.Context, userID int64, item models.CartItem) (models.CartView, error) {
	if err := c.validator.Validate(ctx, item); err != nil {
		return models.CartView{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	product, err := c.productRepository.GetProduct(ctx, item.ProductID)
	if err != nil {
		return models.CartView{}, err
	}

	cart, err := c.cartRepository.GetCart(ctx, userID)
	if err != nil {
		return models.CartView{}, err
	}

	current := 0
	for _, line := range cart.Items {
		if line.ProductID == item.ProductID {
			current = line.Quantity
			break
		}
	}

	if product.Stock <= current {
		return models.CartView{}, fmt.Errorf("%w: %d left", store.ErrInsufficientStock, product.Stock)
	}

	quantity := min(current+item.Quantity, product.Stock, models.MaxCartLineQuantity)
	if err = c.cartRepository.SetItemQuantity(ctx, userID, models.CartItem{ProductID: item.ProductID, Quantity: quantity}); err != nil {
		return models.CartView{}, err
	}

	return c.GetCart(ctx, userID)
}

// SetQuantity overwrites the quantity of a line; zero removes it.
func (c *cartService) SetQuantity(ctx context.Context, userID int64, item models.CartItem) (models.CartView, error) {
	if item.Quantity == 0 {
		return c.RemoveItem(ctx, userID, item.ProductID)
	}
	if err := c.validator.Validate(ctx, item); err != nil {
		return models.CartView{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	product, err := c.productRepository.GetProduct(ctx, item.ProductID)
	if err != nil {
		return models.CartView{}, err
	}
	if !product.InStock(item.Quantity) {
		return models.CartView{}, fmt.Errorf("%w: %d left", store.ErrInsufficientStock, product.Stock)
	}

	if err = c.cartRepository.SetItemQuantity(ctx, userID, item); err != nil {
		return models.CartView{}, err
	}

	return c.GetCart(ctx, userID)
}

func (c *cartService) RemoveItem(ctx context.Context, userID, productID int64) (models.CartView, error) {
	if err := c.cartRepository.RemoveItem(ctx, userID, productID); err != nil {
		return models.CartView{}, err
	}
	return c.GetCart(ctx, userID)
}

func (c *cartService) ClearCart(ctx context.Context, userID int64) error {
	return c.cartRepository.ClearCart(ctx, userID)
}

// MergeCart folds the local cart of a client into the server cart. The
// planner decides the quantities; then every line is clamped to the current
// stock, and lines of deleted or sold-out products are dropped.
func (c *cartService) MergeCart(ctx context.Context, userID int64, local []models.CartItem) (models.CartView, error) {
	log := logger.FromContext(ctx)

	if err := c.validator.Validate(ctx, models.MergeCartRequest{Items: local}); err != nil {
		return models.CartView{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	cart, err := c.cartRepository.GetCart(ctx, userID)
	if err != nil {
		return models.CartView{}, err
	}

	plan, err := c.planner.BuildMergePlan(ctx, cart.Items, local)
	if err != nil {
		return models.CartView{}, err
	}

	log.Info().
		Int64("user_id", userID).
		Int("add", len(plan.Add)).
		Int("raise", len(plan.Raise)).
		Int("keep", len(plan.Keep)).
		Int("drop", len(plan.Drop)).
		Msg("cart merge plan built")

	if plan.IsNoop() {
		return c.GetCart(ctx, userID)
	}

	merged := plan.Result()
	products, err := c.productsByID(ctx, merged)
	if err != nil {
		return models.CartView{}, err
	}

	items := make([]models.CartItem, 0, len(merged))
	for _, item := range merged {
		product, ok := products[item.ProductID]
		if !ok || product.Stock <= 0 {
			continue
		}
		item.Quantity = min(item.Quantity, product.Stock)
		items = append(items, item)
	}

	if err = c.cartRepository.ReplaceItems(ctx, userID, items); err != nil {
		// a product deleted between the lookup and the write
		if errors.Is(err, store.ErrProductNotFound) {
			log.Warn().Err(err).Int64("user_id", userID).Msg("product vanished during cart merge")
		}
		return models.CartView{}, err
	}

	return c.GetCart(ctx, userID)
}

func (c *cartService) productsByID(ctx context.Context, items []models.CartItem) (map[int64]models.Product, error) {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := c.productRepository.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Product, len(products))
	for _, product := range products {
		byID[product.ProductID] = product
	}
	return byID, nil
}
