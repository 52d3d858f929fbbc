// Package export writes a normalized quote table to files and hands it to
// dataframe-based analysis.
//
// Formats:
//   - CSV, optionally zstd-compressed (.csv.zst)
//   - XLSX, one "quotes" sheet
//   - gota DataFrame, typed columns in output order
//
// Every format keeps the fixed output column order of normalize.Columns.
package export
