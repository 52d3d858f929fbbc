// Package database opens the optional storage sinks for normalized quotes.
//
// Sinks:
//   - TimescaleDB (pgx pool): option_quotes hypertable keyed by load id
//   - ClickHouse (database/sql): MergeTree table for columnar analysis
//
// A sink is opened only when its section of the config is filled in.
package database
