package domain

import (
	"fmt"
	"time"
)

// IndexMetadata describes how an index was built.
type IndexMetadata struct {
	// IndexID identifies the indexing run that produced the index.
	IndexID string

	// ChunkSize is the window length in characters.
	ChunkSize int

	// ChunkOverlap is the number of characters shared by adjacent windows.
	ChunkOverlap int

	// EmbeddingModel names the model that produced the vectors.
	EmbeddingModel string

	// TotalChunks is the number of persisted chunks.
	TotalChunks int

	// Dimensions is the length of every embedding. Zero for an empty index.
	Dimensions int

	// CreatedAt is when the run finished.
	CreatedAt time.Time
}

// Index is the complete persisted set of chunks.
// It is produced wholesale by one run and replaced by the next.
type Index struct {
	Chunks   []DocumentChunk
	Metadata IndexMetadata
}

// Validate checks the invariants every persisted index must hold.
// The returned error wraps ErrIndexCorrupt.
func (idx *Index) Validate() error {
	if idx == nil {
		return fmt.Errorf("%w: nil index", ErrIndexCorrupt)
	}
	if idx.Metadata.TotalChunks != len(idx.Chunks) {
		return fmt.Errorf("%w: metadata declares %d chunks, found %d",
			ErrIndexCorrupt, idx.Metadata.TotalChunks, len(idx.Chunks))
	}

	dims := 0
	for i, c := range idx.Chunks {
		if c.Source == "" {
			return fmt.Errorf("%w: chunk %d has no source", ErrIndexCorrupt, i)
		}
		if c.ChunkIndex < 0 {
			return fmt.Errorf("%w: chunk %d has negative chunk_index %d", ErrIndexCorrupt, i, c.ChunkIndex)
		}
		if !c.HasEmbedding() {
			return fmt.Errorf("%w: chunk %d (%s #%d) has no embedding", ErrIndexCorrupt, i, c.Source, c.ChunkIndex)
		}
		if dims == 0 {
			dims = len(c.Embedding)
		} else if len(c.Embedding) != dims {
			return fmt.Errorf("%w: chunk %d has %d dimensions, expected %d",
				ErrIndexCorrupt, i, len(c.Embedding), dims)
		}
	}

	if idx.Metadata.Dimensions != 0 && dims != 0 && idx.Metadata.Dimensions != dims {
		return fmt.Errorf("%w: metadata declares %d dimensions, chunks have %d",
			ErrIndexCorrupt, idx.Metadata.Dimensions, dims)
	}
	return nil
}

// Clone returns a deep copy of the index.
func (idx *Index) Clone() *Index {
	if idx == nil {
		return nil
	}
	out := &Index{Metadata: idx.Metadata}
	if idx.Chunks == nil {
		return out
	}
	out.Chunks = make([]DocumentChunk, len(idx.Chunks))
	for i, c := range idx.Chunks {
		if c.Embedding != nil {
			c.Embedding = append([]float32(nil), c.Embedding...)
		}
		out.Chunks[i] = c
	}
	return out
}

// SourceCount is the number of chunks persisted for one source.
type SourceCount struct {
	Source string
	Chunks int
}

// IndexSummary describes a persisted index without its vectors.
type IndexSummary struct {
	Metadata IndexMetadata

	// Sources lists chunk counts per source in index order.
	Sources []SourceCount

	// Location is where the index is stored.
	Location string
}

// Summarize counts chunks per source, preserving first-seen order.
func (idx *Index) Summarize() []SourceCount {
	var out []SourceCount
	pos := make(map[string]int)
	for _, c := range idx.Chunks {
		i, ok := pos[c.Source]
		if !ok {
			pos[c.Source] = len(out)
			out = append(out, SourceCount{Source: c.Source, Chunks: 1})
			continue
		}
		out[i].Chunks++
	}
	return out
}
