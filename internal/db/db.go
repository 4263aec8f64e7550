package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is a migrated PostgreSQL pool serving run records.
type Postgres struct {
	pool *pgxpool.Pool
	runs *RunRepository
}

// OpenPostgres applies the migrations to dsn, then connects and pings.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if err := RunMigrations(ctx, dsn); err != nil {
		return nil, fmt.Errorf("migrating run store: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	slog.Info("postgres run store ready", "maxConns", pool.Config().MaxConns)
	return &Postgres{pool: pool, runs: NewRunRepository(pool)}, nil
}

// Runs returns the run-record repository on this pool.
func (p *Postgres) Runs() *RunRepository { return p.runs }

// Close closes the pool. Safe on a nil handle.
func (p *Postgres) Close() {
	if p == nil || p.pool == nil {
		return
	}
	p.pool.Close()
}
