// Package model defines the option quote types shared across the loader.
//
// Conventions:
//   - Dates: calendar days in UTC, read from integer-like codes (20230115)
//   - Prices: float64 dollars as quoted in the source file
//   - IDs: int64 option ids, stable across a contract's trading lifetime
package model
