// Package persistence selects and opens the configured activity store.
package persistence

import (
	"context"
	"fmt"

	"github.com/erikadonato/to-do-list/internal/config"
	"github.com/erikadonato/to-do-list/internal/domain"
	"github.com/erikadonato/to-do-list/internal/persistence/gormstore"
	"github.com/erikadonato/to-do-list/internal/persistence/memory"
	"github.com/erikadonato/to-do-list/internal/persistence/postgres"
	"github.com/erikadonato/to-do-list/internal/persistence/sqlite"
)

// Store is a record store that can create its own schema and release its resources.
type Store interface {
	domain.ActivityRepository
	Migrate(ctx context.Context) error
	Close() error
}

// Open connects the store named by cfg.StoreDriver and brings its schema up to date.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	store, err := open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLitePath)
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.PostgresURL, postgres.PoolConfig{
			MaxConns:        int32(cfg.DBMaxOpenConns),
			MinConns:        1,
			MaxConnIdleTime: cfg.DBConnMaxIdle,
		})
	case config.DriverMySQL:
		return gormstore.OpenMySQL(cfg.MySQLDSN, gormstore.PoolConfig{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxIdleTime: cfg.DBConnMaxIdle,
		})
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
