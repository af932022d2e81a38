// Package codec converts an index to and from its JSON artifact form.
//
// The artifact layout is:
//
//	{"chunks": [{"content", "source", "chunk_index", "embedding"}],
//	 "metadata": {"total_chunks", "chunk_size", "chunk_overlap", "embedding_model", ...}}
//
// index_id, created_at and dimensions are optional on read.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/docrag/internal/core/domain"
)

type chunkOut struct {
	Content    string    `json:"content"`
	Source     string    `json:"source"`
	ChunkIndex int       `json:"chunk_index"`
	Embedding  []float32 `json:"embedding"`
}

type metadataOut struct {
	TotalChunks    int        `json:"total_chunks"`
	ChunkSize      int        `json:"chunk_size"`
	ChunkOverlap   int        `json:"chunk_overlap"`
	EmbeddingModel string     `json:"embedding_model"`
	IndexID        string     `json:"index_id,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	Dimensions     int        `json:"dimensions,omitempty"`
}

type artifactOut struct {
	Chunks   []chunkOut  `json:"chunks"`
	Metadata metadataOut `json:"metadata"`
}

// Pointer fields distinguish a missing key from a zero value.
type chunkIn struct {
	Content    *string   `json:"content"`
	Source     *string   `json:"source"`
	ChunkIndex *int      `json:"chunk_index"`
	Embedding  []float32 `json:"embedding"`
}

type metadataIn struct {
	TotalChunks    *int       `json:"total_chunks"`
	ChunkSize      *int       `json:"chunk_size"`
	ChunkOverlap   *int       `json:"chunk_overlap"`
	EmbeddingModel *string    `json:"embedding_model"`
	IndexID        string     `json:"index_id"`
	CreatedAt      *time.Time `json:"created_at"`
	Dimensions     int        `json:"dimensions"`
}

type artifactIn struct {
	Chunks   *[]chunkIn  `json:"chunks"`
	Metadata *metadataIn `json:"metadata"`
}

// Encode renders idx as indented JSON.
func Encode(idx *domain.Index) ([]byte, error) {
	if idx == nil {
		return nil, fmt.Errorf("%w: nil index", domain.ErrInvalidInput)
	}

	out := artifactOut{
		Chunks: make([]chunkOut, len(idx.Chunks)),
		Metadata: metadataOut{
			TotalChunks:    len(idx.Chunks),
			ChunkSize:      idx.Metadata.ChunkSize,
			ChunkOverlap:   idx.Metadata.ChunkOverlap,
			EmbeddingModel: idx.Metadata.EmbeddingModel,
			IndexID:        idx.Metadata.IndexID,
			Dimensions:     idx.Metadata.Dimensions,
		},
	}
	if !idx.Metadata.CreatedAt.IsZero() {
		created := idx.Metadata.CreatedAt.UTC()
		out.Metadata.CreatedAt = &created
	}
	for i, c := range idx.Chunks {
		out.Chunks[i] = chunkOut{
			Content:    c.Content,
			Source:     c.Source,
			ChunkIndex: c.ChunkIndex,
			Embedding:  c.Embedding,
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encode index: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses an artifact. Any syntax error, missing required key or
// invariant violation returns an error wrapping domain.ErrIndexCorrupt.
func Decode(data []byte) (*domain.Index, error) {
	var in artifactIn
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexCorrupt, err)
	}
	if in.Chunks == nil {
		return nil, fmt.Errorf("%w: missing \"chunks\"", domain.ErrIndexCorrupt)
	}
	if in.Metadata == nil {
		return nil, fmt.Errorf("%w: missing \"metadata\"", domain.ErrIndexCorrupt)
	}

	meta, err := decodeMetadata(in.Metadata)
	if err != nil {
		return nil, err
	}

	idx := &domain.Index{
		Chunks:   make([]domain.DocumentChunk, len(*in.Chunks)),
		Metadata: meta,
	}
	for i, c := range *in.Chunks {
		if c.Content == nil || c.Source == nil || c.ChunkIndex == nil {
			return nil, fmt.Errorf("%w: chunk %d is missing a required field", domain.ErrIndexCorrupt, i)
		}
		idx.Chunks[i] = domain.DocumentChunk{
			Content:    *c.Content,
			Source:     *c.Source,
			ChunkIndex: *c.ChunkIndex,
			Embedding:  c.Embedding,
		}
	}

	if idx.Metadata.Dimensions == 0 && len(idx.Chunks) > 0 {
		idx.Metadata.Dimensions = len(idx.Chunks[0].Embedding)
	}
	if err := idx.Validate(); err != nil {
		return nil, err
	}
	return idx, nil
}

func decodeMetadata(m *metadataIn) (domain.IndexMetadata, error) {
	switch {
	case m.TotalChunks == nil:
		return domain.IndexMetadata{}, fmt.Errorf("%w: metadata missing \"total_chunks\"", domain.ErrIndexCorrupt)
	case m.ChunkSize == nil:
		return domain.IndexMetadata{}, fmt.Errorf("%w: metadata missing \"chunk_size\"", domain.ErrIndexCorrupt)
	case m.ChunkOverlap == nil:
		return domain.IndexMetadata{}, fmt.Errorf("%w: metadata missing \"chunk_overlap\"", domain.ErrIndexCorrupt)
	case m.EmbeddingModel == nil:
		return domain.IndexMetadata{}, fmt.Errorf("%w: metadata missing \"embedding_model\"", domain.ErrIndexCorrupt)
	}

	meta := domain.IndexMetadata{
		IndexID:        m.IndexID,
		ChunkSize:      *m.ChunkSize,
		ChunkOverlap:   *m.ChunkOverlap,
		EmbeddingModel: *m.EmbeddingModel,
		TotalChunks:    *m.TotalChunks,
		Dimensions:     m.Dimensions,
	}
	if m.CreatedAt != nil {
		meta.CreatedAt = *m.CreatedAt
	}
	return meta, nil
}
