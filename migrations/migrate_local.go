package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed local/*.sql
var embedLocalMigrations embed.FS

// MigrateLocal applies the terminal client's SQLite schema.
func MigrateLocal(db *sql.DB) error {
	if db == nil {
		return errors.New("local migration error: db is nil")
	}

	goose.SetBaseFS(embedLocalMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("local migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "local"); err != nil {
		return fmt.Errorf("local migration error: %w", err)
	}

	return nil
}
