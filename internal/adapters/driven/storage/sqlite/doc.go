// Package sqlite persists the knowledge corpus in a local SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. Documents keep the order they were imported in, so the index IDs
// assigned from a loaded corpus are stable between runs.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.ganzhi/data/corpus.db
package sqlite
