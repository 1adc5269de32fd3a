// Package sqlite persists states and reviewed column mappings in a single
// SQLite file, ~/.seedmerge/data/seedmerge.db by default.
//
// The driver is modernc.org/sqlite, so the binary builds without cgo.
// One *Store hands out a StateStore and a ColumnMappingStore that share
// its connection pool. Every connection runs in WAL mode with foreign
// keys on.
//
// # Schema
//
// migrations/ holds numbered .up.sql and .down.sql pairs, applied in order
// on open. A state row keeps its declared fields in a JSON data column;
// reconcile filters reach into it with json_extract and fold_case, a
// Unicode-aware lower registered with the driver. Measures, scenarios,
// simulations and building files hang off the state row and are deleted
// with it.
//
// # Import Rules
//
// This package may import:
//   - internal/core/domain
//   - internal/core/ports/driven (interfaces it implements)
//   - internal/reconcile (the fold_case SQL function its queries call)
//   - modernc.org/sqlite, github.com/google/uuid
package sqlite
