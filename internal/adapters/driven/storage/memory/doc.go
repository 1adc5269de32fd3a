// Package memory provides in-process stores for tests and one-shot runs.
//
// Nothing is written to disk: StateStore and ColumnMappingStore keep
// their entries in maps, ConfigStore wraps a config.Values table.
//
// # Import Rules
//
// This package may import:
//   - internal/core/domain
//   - internal/core/ports/driven (interfaces it implements)
//   - internal/adapters/driven/config (settings table)
package memory
