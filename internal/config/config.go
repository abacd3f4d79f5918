// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"time"
)

// StructuredConfig is the top-level configuration of the storefront. The
// server reads App, Storage, Server and Workers; the terminal client reads
// the Adapter group and a client view of the rest (see [ClientConfig]).
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: variable name for scalar fields.
type StructuredConfig struct {
	App     App     `envPrefix:"APP_"`
	Storage Storage `envPrefix:"STORAGE_"`
	Server  Server  `envPrefix:"SERVER_"`
	Adapter Adapter `envPrefix:"ADAPTER_"`
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds token, pricing and integrity settings.
type App struct {
	// TokenSignKey signs and verifies JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long an issued token stays valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// BcryptCost is the bcrypt work factor for password hashes.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// HashKey is the HMAC key shared by the server and the client to sign
	// cart merge requests.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is exposed via /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// ShippingFlatCents is charged on orders below FreeShippingFromCents.
	// Env: APP_SHIPPING_FLAT_CENTS
	ShippingFlatCents int64 `env:"SHIPPING_FLAT_CENTS"`

	// FreeShippingFromCents is the subtotal from which shipping is free.
	// Env: APP_FREE_SHIPPING_FROM_CENTS
	FreeShippingFromCents int64 `env:"FREE_SHIPPING_FROM_CENTS"`
}

type Storage struct {
	DB    DB    `envPrefix:"DB_"`
	Files Files `envPrefix:"FILES_"`
}

// DB holds the database connection settings.
type DB struct {
	// DSN is the PostgreSQL connection string on the server and the SQLite
	// file path on the client.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds settings of the product image storage.
type Files struct {
	// ImagesDir is where uploaded product images are written. Image upload
	// is disabled when empty.
	// Env: STORAGE_FILES_IMAGES_DIR
	ImagesDir string `env:"IMAGES_DIR"`

	// PublicPrefix is the URL path images are served under.
	// Env: STORAGE_FILES_PUBLIC_PREFIX
	PublicPrefix string `env:"PUBLIC_PREFIX"`

	// MaxUploadBytes limits the size of a single uploaded image.
	// Env: STORAGE_FILES_MAX_UPLOAD_BYTES
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES"`
}

// Server holds the inbound transport settings.
type Server struct {
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress enables the gRPC health endpoint when set.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AuthRateLimit is the number of login/register requests per second
	// allowed from a single client IP.
	// Env: SERVER_AUTH_RATE_LIMIT
	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT"`

	// Env: SERVER_AUTH_RATE_BURST
	AuthRateBurst int `env:"AUTH_RATE_BURST"`
}

// Adapter holds the settings the terminal client uses to reach the server.
type Adapter struct {
	// HTTPAddress is the base URL of the storefront API,
	// e.g. "http://localhost:8080".
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background job intervals.
type Workers struct {
	// SyncInterval is how often the client pushes its local cart.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// OrderExpiryInterval is how often the server looks for stale orders.
	// Env: WORKERS_ORDER_EXPIRY_INTERVAL
	OrderExpiryInterval time.Duration `env:"ORDER_EXPIRY_INTERVAL"`

	// PendingOrderTTL is how long an order may stay pending before it is
	// cancelled and its items restocked.
	// Env: WORKERS_PENDING_ORDER_TTL
	PendingOrderTTL time.Duration `env:"PENDING_ORDER_TTL"`
}

// GetStructuredConfig loads the server configuration.
//
// Sources are applied in this order, later sources overriding non-zero
// fields of earlier ones:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Defaults fill whatever is still zero, then the result is validated.
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	if err = cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	return cfg, nil
}
