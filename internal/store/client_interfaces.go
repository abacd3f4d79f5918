package store

import (
	"context"

	"github.com/MKhiriev/go-ferrari-store/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalCartRepository is the cart the terminal client keeps while signed out.
type LocalCartRepository interface {
	GetItems(ctx context.Context) ([]models.CartItem, error)
	SetQuantity(ctx context.Context, productID int64, quantity int) error
	AddQuantity(ctx context.Context, productID int64, delta int) (int, error)
	RemoveItem(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error
}

// LocalSessionRepository keeps the signed-in session between client runs.
type LocalSessionRepository interface {
	SaveSession(ctx context.Context, session models.LocalSession) error
	GetSession(ctx context.Context) (models.LocalSession, error)
	DeleteSession(ctx context.Context) error
}
