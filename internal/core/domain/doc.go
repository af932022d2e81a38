// Package domain defines the core entities of the docrag index.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SourceDocument: A documentation file read by the loader
//   - DocumentChunk: One overlapping text window and its embedding
//   - Index: The persisted set of chunks plus build metadata
//   - SearchResponse: Ranked chunks for a query
//   - IndexReport: What an indexing run did and what it skipped
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
