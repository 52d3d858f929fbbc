package writer

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/optionquotes/internal/normalize"
)

// ClickHouseWriter writes normalized tables to ClickHouse.
type ClickHouseWriter struct {
	cfg    WriterConfig
	db     *sql.DB
	logger *slog.Logger

	mu      sync.Mutex
	metrics WriterMetrics
}

// NewClickHouseWriter creates a new ClickHouseWriter.
func NewClickHouseWriter(cfg WriterConfig, db *sql.DB, logger *slog.Logger) *ClickHouseWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClickHouseWriter{
		cfg:    cfg,
		db:     db,
		logger: logger,
	}
}

// Name identifies the sink in logs.
func (w *ClickHouseWriter) Name() string {
	return "clickhouse"
}

func (w *ClickHouseWriter) createTableSQL() string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			date           Date,
			exdate         Date,
			strike_price   Float64,
			life_time      Int32,
			volume         Int64,
			open_interest  Int64,
			best_bid       Float64,
			best_ask       Float64,
			days_to_expiry Int32,
			load_id        UUID
		) ENGINE = MergeTree
		ORDER BY (date, exdate, strike_price, life_time)`, w.cfg.Table)
}

// EnsureSchema creates the quotes table if it does not exist.
func (w *ClickHouseWriter) EnsureSchema(ctx context.Context) error {
	if _, err := w.db.ExecContext(ctx, w.createTableSQL()); err != nil {
		return fmt.Errorf("create table %s: %w", w.cfg.Table, err)
	}
	return nil
}

// Write inserts every row of table. Each batch is one transaction, which
// the ClickHouse driver sends as a single block.
func (w *ClickHouseWriter) Write(ctx context.Context, loadID uuid.UUID, table *normalize.Table) error {
	rows := toRows(loadID, table)
	if len(rows) == 0 {
		return nil
	}

	start := time.Now()
	query := insertSQL(w.cfg.Table, false)

	for _, part := range chunk(rows, w.cfg.BatchSize) {
		if err := w.sendBlock(ctx, query, part); err != nil {
			w.mu.Lock()
			w.metrics.Errors++
			w.mu.Unlock()
			return fmt.Errorf("insert into %s: %w", w.cfg.Table, err)
		}

		w.mu.Lock()
		w.metrics.Inserts += int64(len(part))
		w.metrics.Batches++
		w.mu.Unlock()
	}

	w.logger.Debug("wrote quotes",
		"sink", w.Name(),
		"count", len(rows),
		"duration", time.Since(start),
	)
	return nil
}

func (w *ClickHouseWriter) sendBlock(ctx context.Context, query string, rows []quoteRow) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.args()...); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Stats returns current metrics.
func (w *ClickHouseWriter) Stats() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}
