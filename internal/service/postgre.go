package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"querytool/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Database is the single connection pool of the process. User statements
// run on native pgx connections; catalog queries go through database/sql on
// top of the same pool.
type Database struct {
	pool *pgxpool.Pool
	db   *sql.DB
}

// Open builds the pool. An unreachable server is logged rather than returned
// so that the process can start before the database does.
func Open(ctx context.Context, cfg config.Database, logger *slog.Logger) (*Database, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	logger.Debug("connecting to postgres",
		slog.String("host", cfg.Host),
		slog.Int("port", cfg.Port),
		slog.String("database", cfg.Name))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Warn("database not reachable", slog.String("error", engineMessage(err)))
	}

	return &Database{pool: pool, db: stdlib.OpenDBFromPool(pool)}, nil
}

func (d *Database) Acquire(ctx context.Context) (Conn, error) {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (d *Database) Conn(ctx context.Context) (*sql.Conn, error) {
	return d.db.Conn(ctx)
}

func (d *Database) Close() error {
	err := d.db.Close()
	d.pool.Close()
	return err
}

var (
	_ Pool     = (*Database)(nil)
	_ ConnPool = (*Database)(nil)
)
