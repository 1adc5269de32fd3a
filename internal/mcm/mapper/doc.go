// Package mapper proposes raw-column to canonical-field mappings and
// applies them to raw rows to produce populated records.
//
// # Column mapping
//
// BuildColumnMapping consults a previous mapping first, then a table of
// default mappings, and only then guesses with fuzzy matching.
//
// # Row mapping
//
// MapRow writes every non-blank raw value either to a declared field or
// to extra data, never both. Columns that belong to a concat group are
// joined and written to the group's target instead.
//
// # Import Rules
//
// This package may import domain, cleaners and matchers. It must not
// import services or adapters.
package mapper
