package writer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/optionquotes/internal/normalize"
)

// TimescaleWriter writes normalized tables to PostgreSQL/TimescaleDB.
type TimescaleWriter struct {
	cfg    WriterConfig
	db     *pgxpool.Pool
	logger *slog.Logger

	mu      sync.Mutex
	metrics WriterMetrics
}

// NewTimescaleWriter creates a new TimescaleWriter.
func NewTimescaleWriter(cfg WriterConfig, db *pgxpool.Pool, logger *slog.Logger) *TimescaleWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TimescaleWriter{
		cfg:    cfg,
		db:     db,
		logger: logger,
	}
}

// Name identifies the sink in logs.
func (w *TimescaleWriter) Name() string {
	return "timescale"
}

func (w *TimescaleWriter) createTableSQL() string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			date           DATE             NOT NULL,
			exdate         DATE             NOT NULL,
			strike_price   DOUBLE PRECISION NOT NULL,
			life_time      INTEGER          NOT NULL,
			volume         BIGINT           NOT NULL,
			open_interest  BIGINT           NOT NULL,
			best_bid       DOUBLE PRECISION NOT NULL,
			best_ask       DOUBLE PRECISION NOT NULL,
			days_to_expiry INTEGER          NOT NULL,
			load_id        UUID             NOT NULL
		)`, w.cfg.Table)
}

// EnsureSchema creates the quotes table if it does not exist.
func (w *TimescaleWriter) EnsureSchema(ctx context.Context) error {
	if _, err := w.db.Exec(ctx, w.createTableSQL()); err != nil {
		return fmt.Errorf("create table %s: %w", w.cfg.Table, err)
	}
	return nil
}

// Write inserts every row of table in batches of cfg.BatchSize.
func (w *TimescaleWriter) Write(ctx context.Context, loadID uuid.UUID, table *normalize.Table) error {
	rows := toRows(loadID, table)
	if len(rows) == 0 {
		return nil
	}

	start := time.Now()
	query := insertSQL(w.cfg.Table, true)

	for _, part := range chunk(rows, w.cfg.BatchSize) {
		if err := w.batchInsert(ctx, query, part); err != nil {
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

// batchInsert sends rows in a single pgx.Batch.
func (w *TimescaleWriter) batchInsert(ctx context.Context, query string, rows []quoteRow) error {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(query, r.args()...)
	}

	results := w.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return results.Close()
}

// Stats returns current metrics.
func (w *TimescaleWriter) Stats() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}
