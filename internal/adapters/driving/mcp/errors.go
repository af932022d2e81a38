// Package mcp provides an MCP (Model Context Protocol) server adapter for docrag.
// It lets AI assistants query the documentation index over stdio or HTTP.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingIndexService is returned by index tools when no index service is set.
var ErrMissingIndexService = errors.New("mcp: index service is not configured")
