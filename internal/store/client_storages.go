package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ferrari-store/internal/config"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
)

// ClientStorages groups the terminal client's local repositories.
type ClientStorages struct {
	DB                *DB
	CartRepository    LocalCartRepository
	SessionRepository LocalSessionRepository
}

// NewClientStorages opens (or creates) the SQLite file and applies the
// local schema. sealer protects the saved session token.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, sealer TokenSealer, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.MigrateLocal(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		DB:                db,
		CartRepository:    NewLocalCartRepository(db, logger),
		SessionRepository: NewLocalSessionRepository(db, sealer, logger),
	}, nil
}
