package driven

import "github.com/custodia-labs/docrag/internal/core/domain"

// Chunker splits a source document into overlapping windows.
type Chunker interface {
	// Process returns the document's chunks with contiguous ChunkIndex
	// values starting at 0 and no embeddings.
	Process(doc domain.SourceDocument) []domain.DocumentChunk

	// ChunkSize returns the window length in characters.
	ChunkSize() int

	// Overlap returns the characters shared by adjacent windows.
	Overlap() int
}
