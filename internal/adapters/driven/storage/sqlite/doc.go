// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - BookStore: Book and index-metadata persistence
//   - ChunkStore: Chunk persistence, keyed by book and generation
//   - CharacterStore: Character definition persistence
//   - ReportStore: Judge report persistence
//   - EvaluationStore: Evaluation result persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.lorebase/data/lorebase.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode. Per-record writes are atomic; the only multi-step
// mutation, re-indexing, is made safe by generation versioning rather than
// cross-record transactions.
package sqlite
