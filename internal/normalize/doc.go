// Package normalize implements the option quote Loader.
//
// The Loader:
//   - Reads the quote file and keeps the eight source columns
//   - Drops contracts in the exclusion set (default: 31622275)
//   - Derives daysToExpiry and a per-contract lifeTime
//   - Resolves duplicate listings by Mode: Deduplicate, MergeLiquidity or Passthrough
//   - Returns a Table with the fixed output columns
//
// Joins are validated as many-to-one and fail with ErrJoinCardinality
// instead of duplicating or dropping rows.
package normalize
