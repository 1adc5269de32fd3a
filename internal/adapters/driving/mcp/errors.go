// Package mcp provides an MCP (Model Context Protocol) server adapter for seedmerge.
// It lets AI assistants propose column mappings, clean values, match
// and merge building records.
package mcp

import "errors"

// ErrMissingMappingService is returned when the mapping service is not provided.
var ErrMissingMappingService = errors.New("mcp: mapping service is required")

// errServiceUnavailable is returned by tools whose backing service is not configured.
var errServiceUnavailable = errors.New("mcp: service not configured")
