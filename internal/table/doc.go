// Package table reads, normalizes and writes feature tables as CSV.
//
// Normalize is the tolerant entry point for tables produced elsewhere. It
// maps any header onto the canonical column order: columns are reordered,
// unknown columns are dropped and missing ones are filled with 0. Cells
// holding "?", nothing, NaN, an infinity or any other non-numeric text
// also become 0, so a normalized table is always safe to feed a model.
package table
