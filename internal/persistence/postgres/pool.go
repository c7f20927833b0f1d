// Package postgres provides the PostgreSQL activity store and its transactional outbox.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// PoolConfig sizes the pgx connection pool.
type PoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnIdleTime time.Duration
}

// Open connects a pool to url and returns a Repository that owns it.
func Open(ctx context.Context, url string, cfg PoolConfig) (*Repository, error) {
	poolCfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse postgres url")
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.Wrap(err, "connect to postgres")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return NewRepository(pool), nil
}

// Pool exposes the connection pool for the outbox dispatcher.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// Close releases the pool.
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}
