package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-ferrari-store/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists storefront accounts in the "users" table.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, error)
	UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error)
	UpdateRole(ctx context.Context, userID int64, role models.Role) error
	DeleteUser(ctx context.Context, userID int64) error
}

// ProductRepository persists the catalog.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	GetProduct(ctx context.Context, productID int64) (models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (models.Product, error)
	GetProducts(ctx context.Context, productIDs []int64) ([]models.Product, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) (models.ProductPage, error)
	UpdateProduct(ctx context.Context, update models.ProductUpdate) (models.Product, error)
	SetImageURL(ctx context.Context, productID int64, imageURL string) error
	DeleteProduct(ctx context.Context, productID int64) error
}

// CategoryRepository persists the category tree.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	GetCategory(ctx context.Context, categoryID int64) (models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, update models.CategoryUpdate) (models.Category, error)
	DeleteCategory(ctx context.Context, categoryID int64) error
	GetParentID(ctx context.Context, categoryID int64) (*int64, error)
	CountCategories(ctx context.Context) (int, error)
}

// CartRepository persists the server-side cart of each user.
type CartRepository interface {
	GetCart(ctx context.Context, userID int64) (models.Cart, error)
	SetItemQuantity(ctx context.Context, userID int64, item models.CartItem) error
	RemoveItem(ctx context.Context, userID, productID int64) error
	ClearCart(ctx context.Context, userID int64) error
	ReplaceItems(ctx context.Context, userID int64, items []models.CartItem) error
}

// OrderRepository persists orders and their line items.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order models.Order, shipping models.ShippingPolicy) (models.Order, error)
	GetOrder(ctx context.Context, orderID int64) (models.Order, error)
	ListUserOrders(ctx context.Context, userID int64, filter models.OrderFilter) ([]models.Order, error)
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, expected, next models.OrderStatus) error
	CancelOrder(ctx context.Context, orderID int64, expected models.OrderStatus) error
	ListExpiredPending(ctx context.Context, olderThan time.Time, limit int) ([]int64, error)
}

// ImageFileStorage keeps uploaded product images on disk.
type ImageFileStorage interface {
	// SaveImage writes r under a generated name keeping the extension of
	// originalName and returns the stored file name.
	SaveImage(ctx context.Context, originalName string, r io.Reader) (string, error)
	DeleteImage(ctx context.Context, fileName string) error
	// PublicURL returns the URL path the stored file is served under.
	PublicURL(fileName string) string
	// FileName reverses PublicURL; ok is false for foreign URLs.
	FileName(publicURL string) (string, bool)
	Dir() string
}

// ProductStorage coordinates catalog rows and their image files.
type ProductStorage interface {
	ProductRepository

	// ImagesEnabled reports whether an image directory is configured.
	ImagesEnabled() bool
	// ReplaceImage stores a new image for the product, points the product
	// at it and removes the previous file.
	ReplaceImage(ctx context.Context, productID int64, originalName string, r io.Reader) (models.Product, error)
	// DeleteProductWithImage removes the product row and its image file.
	DeleteProductWithImage(ctx context.Context, productID int64) error
	ImagesDir() string
}
