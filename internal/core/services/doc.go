// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - SettingsService: converts flat configuration keys to merge settings
//   - MappingService: proposes, saves and applies column mappings
//   - MatchService: finds the best stored match for a state
//   - MergeService: merges two states with the configured priorities
//   - ImportService: reads, maps, stores and optionally merges import rows
//
// # Import Rules
//
//   - Can Import: domain, ports, internal/mcm, internal/reconcile,
//     internal/merging, internal/logger
//   - Cannot Import: Any adapter or connector package
package services
