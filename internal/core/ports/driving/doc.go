// Package driving defines the operations the CLI and the MCP server call
// on the core: building and describing the index, and searching it.
//
// Implementations live in internal/core/services.
package driving
