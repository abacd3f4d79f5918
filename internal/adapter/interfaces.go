// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for talking to the
// storefront server from the terminal client.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// services from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-ferrari-store/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the storefront
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account. On success the bearer token from the
	// response is stored via SetToken.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates with email and password. On success the bearer
	// token from the response is stored via SetToken.
	Login(ctx context.Context, user models.User) (models.User, error)

	Profile(ctx context.Context) (models.User, error)

	ListProducts(ctx context.Context, filter models.ProductFilter) (models.ProductPage, error)
	GetProduct(ctx context.Context, productID int64) (models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	GetCart(ctx context.Context) (models.CartView, error)
	AddCartItem(ctx context.Context, item models.CartItemRequest) (models.CartView, error)
	SetCartItem(ctx context.Context, productID int64, quantity int) (models.CartView, error)
	RemoveCartItem(ctx context.Context, productID int64) (models.CartView, error)

	// MergeCart pushes the signed-out cart to the server. The item list is
	// signed with the shared HMAC key so the server can reject tampered
	// bodies.
	MergeCart(ctx context.Context, items []models.CartItem) (models.CartView, error)

	Checkout(ctx context.Context, req models.CheckoutRequest) (models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	CancelOrder(ctx context.Context, orderID int64) (models.Order, error)
}
