package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ferrari-store/internal/config"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
)

// Storages groups the server repositories handed to the service layer.
type Storages struct {
	DB                 *DB
	UserRepository     UserRepository
	ProductStorage     ProductStorage
	CategoryRepository CategoryRepository
	CartRepository     CartRepository
	OrderRepository    OrderRepository
}

// NewStorages connects to Postgres, applies migrations and builds every
// repository.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newStoragesWithDB(db, cfg, logger)
}

func newStoragesWithDB(db *DB, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	productStorage, err := NewProductStorage(db, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("product storage error: %w", err)
	}

	return &Storages{
		DB:                 db,
		UserRepository:     NewUserRepository(db, logger),
		ProductStorage:     productStorage,
		CategoryRepository: NewCategoryRepository(db, logger),
		CartRepository:     NewCartRepository(db, logger),
		OrderRepository:    NewOrderRepository(db, logger),
	}, nil
}

// Ping reports database availability for health checks.
func (s *Storages) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storages) Close() error {
	return s.DB.Close()
}
