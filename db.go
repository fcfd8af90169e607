package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"gitea.kood.tech/petrkubec/travel-buddy/chat"
	"gitea.kood.tech/petrkubec/travel-buddy/config"
	"gitea.kood.tech/petrkubec/travel-buddy/pool"
)

// openDB connects with the configured driver and checks the connection.
func openDB(cfg *config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == "postgres" {
		db.SetMaxIdleConns(10)
		db.SetMaxOpenConns(100)
		db.SetConnMaxLifetime(time.Hour)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// migrate creates the message and trip tables if they are missing.
func migrate(ctx context.Context, db *sqlx.DB, store *chat.SQLStore) error {
	if err := store.Migrate(ctx); err != nil {
		return err
	}
	if err := pool.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate trips: %w", err)
	}
	return nil
}
