// Package sqlite provides the SQLite-backed vector index.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. Embeddings are
// stored as little-endian float32 blobs alongside the chunk text, and
// similarity search is a brute-force cosine scan over the collection.
// That is plenty for the index sizes this tool produces, which are a
// few hundred chunks per research run.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.scriptforge/data/index.db
//
// # Thread Safety
//
// All operations are thread-safe. The store relies on database-level
// locking provided by SQLite in WAL mode.
package sqlite
