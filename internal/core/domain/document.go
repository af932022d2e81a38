package domain

// SourceDocument is one documentation file as read by the loader.
type SourceDocument struct {
	// Name identifies the document and becomes the Source of its chunks.
	Name string

	// Path is the filesystem location the content was read from.
	Path string

	// Content is the full text of the file.
	Content string
}

// MissingSource records a configured source that could not be read.
type MissingSource struct {
	// Name is the identifier the document would have had.
	Name string

	// Path is where the loader looked.
	Path string

	// Reason explains why the source was skipped.
	Reason string
}

// LoadResult is the outcome of one loader pass.
type LoadResult struct {
	// Documents are the loaded sources in deterministic order.
	Documents []SourceDocument

	// Missing are the sources that were skipped.
	Missing []MissingSource
}

// DocumentChunk is one overlapping text window of a source document.
type DocumentChunk struct {
	// Content is the window text.
	Content string

	// Source is the Name of the originating SourceDocument.
	Source string

	// ChunkIndex is the 0-based ordinal of the window within its source.
	ChunkIndex int

	// Embedding is the vector for Content. Nil until computed.
	Embedding []float32
}

// HasEmbedding reports whether the chunk carries a vector.
func (c DocumentChunk) HasEmbedding() bool {
	return len(c.Embedding) > 0
}
