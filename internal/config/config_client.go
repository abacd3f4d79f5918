package config

import (
	"fmt"
	"os"
	"time"
)

// ClientConfig is the terminal client's view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

type ClientApp struct {
	// HashKey signs cart merge requests.
	HashKey string
}

type ClientAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

type ClientStorage struct {
	DB ClientDB
}

type ClientDB struct {
	// DSN is the SQLite file holding the local cart and session.
	DSN string
}

type ClientWorkers struct {
	SyncInterval time.Duration
}

// GetClientConfig loads the merged config and maps the client fields.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	if err = clientCfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	return clientCfg, nil
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{HashKey: cfg.App.HashKey},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{DB: ClientDB{DSN: cfg.Storage.DB.DSN}},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
	}
}
