package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTokenIssuer          = "ferrari-store"
	DefaultImagesPublicPrefix   = "/static/images/"
	DefaultMaxUploadBytes       = 5 << 20
	DefaultRequestTimeout       = 30 * time.Second
	DefaultAuthRateLimit        = 5
	DefaultAuthRateBurst        = 10
	DefaultShippingFlatCents    = 2990
	DefaultFreeShippingFrom     = 50000
	DefaultOrderExpiryInterval  = time.Minute
	DefaultPendingOrderTTL      = 48 * time.Hour
	DefaultClientSyncInterval   = 30 * time.Second
	DefaultClientRequestTimeout = 10 * time.Second
)

// defaults returns the values used for fields no source has set.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:           DefaultTokenIssuer,
			TokenDuration:         24 * time.Hour,
			BcryptCost:            bcrypt.DefaultCost,
			Version:               "dev",
			ShippingFlatCents:     DefaultShippingFlatCents,
			FreeShippingFromCents: DefaultFreeShippingFrom,
		},
		Storage: Storage{
			Files: Files{
				PublicPrefix:   DefaultImagesPublicPrefix,
				MaxUploadBytes: DefaultMaxUploadBytes,
			},
		},
		Server: Server{
			RequestTimeout: DefaultRequestTimeout,
			AuthRateLimit:  DefaultAuthRateLimit,
			AuthRateBurst:  DefaultAuthRateBurst,
		},
		Adapter: Adapter{
			RequestTimeout: DefaultClientRequestTimeout,
		},
		Workers: Workers{
			SyncInterval:        DefaultClientSyncInterval,
			OrderExpiryInterval: DefaultOrderExpiryInterval,
			PendingOrderTTL:     DefaultPendingOrderTTL,
		},
	}
}
