package service

import (
	"context"

	"github.com/MKhiriev/go-ferrari-store/internal/adapter"
	"github.com/MKhiriev/go-ferrari-store/models"
)

type clientOrderService struct {
	adapter adapter.ServerAdapter
}

func NewClientOrderService(serverAdapter adapter.ServerAdapter) ClientOrderService {
	return &clientOrderService{adapter: serverAdapter}
}

func (o *clientOrderService) Checkout(ctx context.Context, req models.CheckoutRequest) (models.Order, error) {
	if o.adapter.Token() == "" {
		return models.Order{}, ErrNotLoggedIn
	}

	order, err := o.adapter.Checkout(ctx, req)
	if err != nil {
		return models.Order{}, mapAdapterError(err)
	}
	return order, nil
}

func (o *clientOrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	if o.adapter.Token() == "" {
		return nil, ErrNotLoggedIn
	}

	orders, err := o.adapter.ListOrders(ctx)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	return orders, nil
}

func (o *clientOrderService) CancelOrder(ctx context.Context, orderID int64) (models.Order, error) {
	if o.adapter.Token() == "" {
		return models.Order{}, ErrNotLoggedIn
	}

	order, err := o.adapter.CancelOrder(ctx, orderID)
	if err != nil {
		return models.Order{}, mapAdapterError(err)
	}
	return order, nil
}
