// Package mcp provides an MCP (Model Context Protocol) server adapter for marcfields.
// It lets AI assistants extract index fields from MARCXchange records and read stored ones.
package mcp

import "errors"

// ErrMissingIndexService is returned when the index service is not provided.
var ErrMissingIndexService = errors.New("mcp: index service is required")
