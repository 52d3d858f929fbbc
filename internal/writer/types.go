package writer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/optionquotes/internal/normalize"
)

// Sink is a destination for normalized tables.
type Sink interface {
	Name() string
	EnsureSchema(ctx context.Context) error
	Write(ctx context.Context, loadID uuid.UUID, table *normalize.Table) error
	Stats() WriterMetrics
}

// WriterConfig contains configuration for batch writers.
type WriterConfig struct {
	// Table is the destination table name. It must be a plain identifier.
	Table string

	// BatchSize is the number of rows sent per round trip.
	BatchSize int
}

// DefaultWriterConfig returns sensible defaults.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		Table:     "option_quotes",
		BatchSize: 1000,
	}
}

// quoteRow represents a row to be inserted into the quotes table.
type quoteRow struct {
	LoadID       uuid.UUID
	Date         time.Time
	Exdate       time.Time
	StrikePrice  float64
	LifeTime     int32
	Volume       int64
	OpenInterest int64
	BestBid      float64
	BestAsk      float64
	DaysToExpiry int32
}

// WriterMetrics holds metrics for a writer.
type WriterMetrics struct {
	Inserts int64
	Batches int64
	Errors  int64
}
