package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/optionquotes/internal/config"
)

// Sinks holds the database connections enabled in config. Disabled sinks are nil.
type Sinks struct {
	// Timescale stores normalized quotes as a time-series table.
	Timescale *pgxpool.Pool

	// ClickHouse stores normalized quotes for columnar analysis.
	ClickHouse *sql.DB
}

// Open connects every enabled sink. On failure, already-opened sinks are closed.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Sinks, error) {
	s := &Sinks{}

	if cfg.Timescale.Enabled() {
		pool, err := Connect(ctx, cfg.Timescale)
		if err != nil {
			return nil, fmt.Errorf("connect timescale: %w", err)
		}
		s.Timescale = pool
	}

	if cfg.ClickHouse.Enabled() {
		db, err := OpenClickHouse(ctx, cfg.ClickHouse.DSN)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("connect clickhouse: %w", err)
		}
		s.ClickHouse = db
	}

	return s, nil
}

// Connect creates a single PostgreSQL connection pool.
func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	connStr := BuildConnString(cfg)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// OpenClickHouse opens a ClickHouse handle from a clickhouse:// DSN and pings it.
func OpenClickHouse(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("clickhouse", dsn)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	return db, nil
}

// Empty reports whether no sink is enabled.
func (s *Sinks) Empty() bool {
	return s.Timescale == nil && s.ClickHouse == nil
}

// Close closes every open sink.
func (s *Sinks) Close() {
	if s.Timescale != nil {
		s.Timescale.Close()
	}
	if s.ClickHouse != nil {
		s.ClickHouse.Close()
	}
}
