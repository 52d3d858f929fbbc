// Package writer persists normalized quote tables.
//
// Writers:
//   - TimescaleWriter: pgx batches into a PostgreSQL/TimescaleDB table
//   - ClickHouseWriter: prepared-statement batches into a ClickHouse MergeTree table
//
// Every row carries the load id of the run that produced it, so reloads
// append a new generation instead of overwriting.
package writer
