// Package filesystem reads import files from the local filesystem and
// watches a directory for new ones.
//
// CSVSource parses comma or tab separated files into raw rows keyed by
// header name. Watcher reports file changes through fsnotify so the
// watch command can import each file as it lands.
//
// # Import Rules
//
// This package may import:
//   - internal/core/domain
//   - internal/core/ports/driven (interfaces it implements)
//   - internal/logger
//   - github.com/fsnotify/fsnotify
package filesystem
