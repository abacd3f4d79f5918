package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey          string   `json:"token_sign_key"`
		TokenIssuer           string   `json:"token_issuer"`
		TokenDuration         Duration `json:"token_duration"`
		BcryptCost            int      `json:"bcrypt_cost"`
		HashKey               string   `json:"hash_key"`
		Version               string   `json:"version"`
		ShippingFlatCents     int64    `json:"shipping_flat_cents"`
		FreeShippingFromCents int64    `json:"free_shipping_from_cents"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			ImagesDir      string `json:"images_dir"`
			PublicPrefix   string `json:"public_prefix"`
			MaxUploadBytes int64  `json:"max_upload_bytes"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AuthRateLimit  float64  `json:"auth_rate_limit"`
		AuthRateBurst  int      `json:"auth_rate_burst"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval        Duration `json:"sync_interval"`
		OrderExpiryInterval Duration `json:"order_expiry_interval"`
		PendingOrderTTL     Duration `json:"pending_order_ttl"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err = json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:          j.App.TokenSignKey,
			TokenIssuer:           j.App.TokenIssuer,
			TokenDuration:         time.Duration(j.App.TokenDuration),
			BcryptCost:            j.App.BcryptCost,
			HashKey:               j.App.HashKey,
			Version:               j.App.Version,
			ShippingFlatCents:     j.App.ShippingFlatCents,
			FreeShippingFromCents: j.App.FreeShippingFromCents,
		},
		Storage: Storage{
			DB: DB{DSN: j.Storage.DB.DSN},
			Files: Files{
				ImagesDir:      j.Storage.Files.ImagesDir,
				PublicPrefix:   j.Storage.Files.PublicPrefix,
				MaxUploadBytes: j.Storage.Files.MaxUploadBytes,
			},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			GRPCAddress:    j.Server.GRPCAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
			AuthRateLimit:  j.Server.AuthRateLimit,
			AuthRateBurst:  j.Server.AuthRateBurst,
		},
		Adapter: Adapter{
			HTTPAddress:    j.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval:        time.Duration(j.Workers.SyncInterval),
			OrderExpiryInterval: time.Duration(j.Workers.OrderExpiryInterval),
			PendingOrderTTL:     time.Duration(j.Workers.PendingOrderTTL),
		},
	}, nil
}

// Duration accepts either a Go duration string ("1h", "30s") or a number of
// nanoseconds in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
