// Package driving holds the use cases the CLI and the MCP server call.
//
//   - MappingService: propose and store column mappings for an import
//   - ImportService: map rows from a file into states, optionally merging
//   - MatchService: find the stored state an incoming one most resembles
//   - MergeService: merge two states under the configured priorities
//   - SettingsService: read and change merge and matching settings
//
// internal/core/services implements every interface here. Signatures use
// domain types only, so driving adapters never see a store.
package driving
