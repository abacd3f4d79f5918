package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-ferrari-store/internal/config"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
	"github.com/MKhiriev/go-ferrari-store/internal/validators"
	"github.com/MKhiriev/go-ferrari-store/models"
)

// expireBatchSize bounds the orders cancelled by one expiry run.
const expireBatchSize = 100

type orderService struct {
	orderRepository store.OrderRepository
	cartRepository  store.CartRepository
	userRepository  store.UserRepository
	validator       validators.Validator
	shipping        models.ShippingPolicy
	logger          *logger.Logger
}

func NewOrderService(
	orderRepository store.OrderRepository,
	cartRepository store.CartRepository,
	userRepository store.UserRepository,
	validator validators.Validator,
	cfg config.App,
	logger *logger.Logger,
) OrderService {
	return &orderService{
		orderRepository: orderRepository,
		cartRepository:  cartRepository,
		userRepository:  userRepository,
		validator:       validator,
		shipping: models.ShippingPolicy{
			FlatCents:     cfg.ShippingFlatCents,
			FreeFromCents: cfg.FreeShippingFromCents,
		},
		logger: logger,
	}
}

// Checkout turns the user's cart into a pending order. An empty shipping
// address falls back to the address of the profile. Stock is reserved and
// the ordered quantities leave the cart in the same transaction.
func (o *orderService) Checkout(ctx context.Context, userID int64, request models.CheckoutRequest) (models.Order, error) {
	log := logger.FromContext(ctx)

	request.ShippingAddress = strings.TrimSpace(request.ShippingAddress)
	if request.ShippingAddress == "" {
		user, err := o.userRepository.FindUserByID(ctx, userID)
		if err != nil {
			return models.Order{}, err
		}
		request.ShippingAddress = strings.TrimSpace(user.Address)
	}

	if err := o.validator.Validate(ctx, request); err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	cart, err := o.cartRepository.GetCart(ctx, userID)
	if err != nil {
		return models.Order{}, err
	}
	if len(cart.Items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, models.OrderItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	order, err := o.orderRepository.CreateOrder(ctx, models.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: request.ShippingAddress,
		PaymentMethod:   request.PaymentMethod,
	}, o.shipping)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("checkout failed")
		return models.Order{}, err
	}

	return order, nil
}

// GetOrder returns the order to its owner or to an admin. Other users get
// store.ErrOrderNotFound so that order ids cannot be probed.
func (o *orderService) GetOrder(ctx context.Context, userID int64, role models.Role, orderID int64) (models.Order, error) {
	order, err := o.orderRepository.GetOrder(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if role != models.RoleAdmin && order.UserID != userID {
		return models.Order{}, store.ErrOrderNotFound
	}
	return order, nil
}

func (o *orderService) ListMyOrders(ctx context.Context, userID int64, filter models.OrderFilter) ([]models.Order, error) {
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)
	return o.orderRepository.ListUserOrders(ctx, userID, filter)
}

func (o *orderService) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidOrderStatus)
	}
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)
	return o.orderRepository.ListOrders(ctx, filter)
}

// UpdateStatus moves the order along its lifecycle. Moving to cancelled
// returns reserved stock.
func (o *orderService) UpdateStatus(ctx context.Context, orderID int64, next models.OrderStatus) (models.Order, error) {
	if err := o.validator.Validate(ctx, models.StatusUpdateRequest{Status: next}); err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	order, err := o.orderRepository.GetOrder(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}

	if !order.Status.CanTransitionTo(next) {
		return models.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, order.Status, next)
	}

	if next == models.OrderCancelled {
		err = o.orderRepository.CancelOrder(ctx, orderID, order.Status)
	} else {
		err = o.orderRepository.UpdateStatus(ctx, orderID, order.Status, next)
	}
	if err != nil {
		return models.Order{}, err
	}

	logger.FromContext(ctx).Info().
		Int64("order_id", orderID).
		Str("from", string(order.Status)).
		Str("to", string(next)).
		Msg("order status changed")

	return o.orderRepository.GetOrder(ctx, orderID)
}

// CancelOrder lets a customer cancel their own order while it is pending.
func (o *orderService) CancelOrder(ctx context.Context, userID, orderID int64) (models.Order, error) {
	order, err := o.GetOrder(ctx, userID, models.RoleUser, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.Status != models.OrderPending {
		return models.Order{}, ErrOrderNotCancellable
	}

	if err = o.orderRepository.CancelOrder(ctx, orderID, models.OrderPending); err != nil {
		if errors.Is(err, store.ErrOrderStatusConflict) {
			return models.Order{}, ErrOrderNotCancellable
		}
		return models.Order{}, err
	}

	return o.orderRepository.GetOrder(ctx, orderID)
}

// ExpirePendingOrders cancels up to one batch of stale pending orders.
// Orders paid in the meantime are skipped.
func (o *orderService) ExpirePendingOrders(ctx context.Context, olderThan time.Time) (int, error) {
	log := logger.FromContext(ctx)

	ids, err := o.orderRepository.ListExpiredPending(ctx, olderThan, expireBatchSize)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, id := range ids {
		if err = ctx.Err(); err != nil {
			return cancelled, err
		}

		err = o.orderRepository.CancelOrder(ctx, id, models.OrderPending)
		switch {
		case err == nil:
			cancelled++
		case errors.Is(err, store.ErrOrderStatusConflict), errors.Is(err, store.ErrOrderNotFound):
			log.Debug().Int64("order_id", id).Msg("order changed before expiry")
		default:
			return cancelled, fmt.Errorf("error expiring order %d: %w", id, err)
		}
	}

	if cancelled > 0 {
		log.Info().Int("cancelled", cancelled).Time("older_than", olderThan).Msg("expired pending orders")
	}
	return cancelled, nil
}
