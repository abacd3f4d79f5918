package service

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-ferrari-store/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=ProductServiceWrapper

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, update models.UserUpdate) (models.User, error)
	ListUsers(ctx context.Context, limit, offset int) (models.UserList, error)
	SetRole(ctx context.Context, actorID, userID int64, role models.Role) error
	DeleteUser(ctx context.Context, actorID, userID int64) error
}

type ProductService interface {
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	GetProduct(ctx context.Context, productID int64) (models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (models.Product, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) (models.ProductPage, error)
	UpdateProduct(ctx context.Context, update models.ProductUpdate) (models.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error
	UploadImage(ctx context.Context, productID int64, fileName string, r io.Reader) (models.Product, error)
}

// ProductServiceWrapper defines middleware composition for ProductService.
// Implementations wrap an existing ProductService to add behavior such as
// validating.
type ProductServiceWrapper interface {
	Wrap(ProductService) ProductService
}

type CategoryService interface {
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	GetCategory(ctx context.Context, categoryID int64) (models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, update models.CategoryUpdate) (models.Category, error)
	DeleteCategory(ctx context.Context, categoryID int64) error
}

type CartService interface {
	GetCart(ctx context.Context, userID int64) (models.CartView, error)
	AddItem(ctx context.Context, userID int64, item models.CartItem) (models.CartView, error)
	SetQuantity(ctx context.Context, userID int64, item models.CartItem) (models.CartView, error)
	RemoveItem(ctx context.Context, userID, productID int64) (models.CartView, error)
	ClearCart(ctx context.Context, userID int64) error
	// MergeCart reconciles a cart kept by a signed-out client with the
	// server cart of the user who just signed in.
	MergeCart(ctx context.Context, userID int64, local []models.CartItem) (models.CartView, error)
}

// CartMergePlanner decides how a local cart is folded into the server cart.
type CartMergePlanner interface {
	BuildMergePlan(ctx context.Context, server, local []models.CartItem) (models.CartMergePlan, error)
}

type OrderService interface {
	Checkout(ctx context.Context, userID int64, request models.CheckoutRequest) (models.Order, error)
	GetOrder(ctx context.Context, userID int64, role models.Role, orderID int64) (models.Order, error)
	ListMyOrders(ctx context.Context, userID int64, filter models.OrderFilter) ([]models.Order, error)
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, next models.OrderStatus) (models.Order, error)
	CancelOrder(ctx context.Context, userID, orderID int64) (models.Order, error)
	// ExpirePendingOrders cancels orders still pending since before olderThan
	// and returns how many were cancelled.
	ExpirePendingOrders(ctx context.Context, olderThan time.Time) (int, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	CheckHealth(ctx context.Context) models.HealthStatus
}

// Pinger reports the availability of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}
