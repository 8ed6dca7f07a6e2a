// Package database provides SQLite-based history storage for urlfeature.
//
// FeatureDB keeps every saved extraction run: when it ran, where the URLs
// came from, the digest of the reference sets in effect, and each row of
// the resulting table. A run can be exported again later, and the vectors
// of a single URL can be compared across runs.
//
// The driver is modernc.org/sqlite, a CGO-free SQLite, so the database is a
// single file in the XDG data directory.
package database
