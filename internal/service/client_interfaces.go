package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ferrari-store/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService defines the client-side contract for registration,
// authentication and the persisted session.
type ClientAuthService interface {
	// Register creates an account on the server and signs the new user in.
	// The signed-out cart is merged into the new server cart.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user against the server, stores the session
	// locally, then merges the signed-out cart into the server cart. The
	// local cart is cleared only when the merge succeeds; a failed merge
	// does not fail the login and is retried by the [CartSyncJob].
	Login(ctx context.Context, user models.User) (models.User, error)

	// Logout forgets the bearer token and the stored session.
	Logout(ctx context.Context) error

	// RestoreSession loads the session saved by a previous run and checks it
	// against the server. Returns [store.ErrLocalSessionNotFound] when there
	// is nothing to restore and [ErrSessionExpired] when the server rejects
	// the token.
	RestoreSession(ctx context.Context) (models.LocalSession, error)

	// LoggedIn reports whether a bearer token is currently held.
	LoggedIn() bool
}

// ClientCatalogService reads the public catalog.
type ClientCatalogService interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) (models.ProductPage, error)
	GetProduct(ctx context.Context, productID int64) (models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// ClientCartService edits the cart. Signed-out edits go to the local SQLite
// cart, signed-in edits go straight to the server.
type ClientCartService interface {
	Items(ctx context.Context) (models.CartView, error)
	AddItem(ctx context.Context, productID int64, quantity int) (models.CartView, error)
	SetQuantity(ctx context.Context, productID int64, quantity int) (models.CartView, error)
	RemoveItem(ctx context.Context, productID int64) (models.CartView, error)

	// SyncLocalCart pushes pending local lines through the signed merge
	// endpoint and clears them on success. It is a no-op while signed out
	// or when the local cart is empty.
	SyncLocalCart(ctx context.Context) error
}

// ClientOrderService places and tracks the signed-in user's orders.
type ClientOrderService interface {
	Checkout(ctx context.Context, req models.CheckoutRequest) (models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	CancelOrder(ctx context.Context, orderID int64) (models.Order, error)
}

// CartSyncJob periodically calls SyncLocalCart while the client runs.
type CartSyncJob interface {
	// Start launches the background goroutine. It syncs every interval,
	// defaulting to 1 minute if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
