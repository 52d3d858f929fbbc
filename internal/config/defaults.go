package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultSourcePath     = "./dat/spx_option_prices.csv"
	DefaultMode           = "merge_liquidity"
	DefaultNegativeExpiry = "warn"
	DefaultTable          = "option_quotes"
	DefaultBatchSize      = 1000
	DefaultDBTimeout      = 5 * time.Minute
	DefaultDBPort         = 5432
	DefaultDBSSLMode      = "prefer"
	DefaultMaxConns       = 4
	DefaultMinConns       = 1
)

// DefaultExcludeOptionIDs is used when source.exclude_option_ids is absent.
var DefaultExcludeOptionIDs = []int64{31622275}

func (c *LoaderConfig) applyDefaults() {
	// Source defaults
	if c.Source.Path == "" {
		c.Source.Path = DefaultSourcePath
	}
	if c.Source.ExcludeOptionIDs == nil {
		c.Source.ExcludeOptionIDs = append([]int64(nil), DefaultExcludeOptionIDs...)
	}

	// Normalize defaults
	if c.Normalize.Mode == "" {
		c.Normalize.Mode = DefaultMode
	}
	if c.Normalize.NegativeExpiry == "" {
		c.Normalize.NegativeExpiry = DefaultNegativeExpiry
	}

	// Database defaults
	if c.Database.Table == "" {
		c.Database.Table = DefaultTable
	}
	if c.Database.BatchSize == 0 {
		c.Database.BatchSize = DefaultBatchSize
	}
	if c.Database.Timeout == 0 {
		c.Database.Timeout = DefaultDBTimeout
	}
	if c.Database.Timescale.Enabled() {
		applyDBDefaults(&c.Database.Timescale)
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
