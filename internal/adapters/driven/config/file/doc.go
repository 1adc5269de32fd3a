// Package file persists seedmerge settings as a TOML document,
// ~/.seedmerge/config.toml unless another directory is given.
//
// Typed reads come from the embedded config.Values table. This package
// only handles the file: loading it flattens nested tables into dotted
// keys, and every write nests them back.
//
// # Import Rules
//
// This package may import:
//   - internal/core/ports/driven (interfaces it implements)
//   - internal/adapters/driven/config (settings table)
//   - github.com/pelletier/go-toml/v2
package file
