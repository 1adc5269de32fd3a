// Package driven declares what the core services need from the outside
// world. Adapters under internal/adapters/driven and internal/connectors
// implement these interfaces; services only ever see the interfaces.
//
//   - StateStore: saved property and tax-lot states
//   - ColumnMappingStore: reviewed raw-column to field mappings, checked
//     before any fuzzy matching
//   - ConfigStore: settings such as merge priorities and thresholds
//   - RowSource: turns an import file into raw rows
//   - FileWatcher: reports import files appearing under a directory. Only
//     the watch command needs one, so it may be nil elsewhere.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
