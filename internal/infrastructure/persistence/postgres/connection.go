// Package postgres provides the PostgreSQL persistence adapter.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/despensa/v1/internal/infrastructure/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// schema is applied at startup. The table doubles as a plain record
// store: reconciliation semantics live entirely in the domain layer.
const schema = `
CREATE TABLE IF NOT EXISTS stock_items (
	id         UUID PRIMARY KEY,
	user_id    UUID NOT NULL,
	name       TEXT NOT NULL,
	quantity   DOUBLE PRECISION NOT NULL,
	unit       TEXT NOT NULL,
	category   TEXT NOT NULL,
	added_at   TIMESTAMPTZ NOT NULL,
	expires_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_stock_items_user_id ON stock_items (user_id);
`

// Connect opens a pgx connection pool and ensures the schema exists.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logger.Info("Connected to PostgreSQL",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
	)

	return pool, nil
}
