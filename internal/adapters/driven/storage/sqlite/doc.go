// Package sqlite provides an SQLite-backed implementation of the index store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// One row of index_metadata describes the index; index_chunks holds the chunks
// in storage order with embeddings packed as little-endian float32 blobs.
//
// # Thread Safety
//
// Save replaces every row inside one transaction, so a concurrent Load sees
// either the previous index or the new one. SQLite runs in WAL mode.
package sqlite
