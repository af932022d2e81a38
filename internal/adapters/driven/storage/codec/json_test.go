package codec

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docrag/internal/core/domain"
)

func sampleIndex() *domain.Index {
	return &domain.Index{
		Chunks: []domain.DocumentChunk{
			{Content: "# Guide <intro>", Source: "README.md", ChunkIndex: 0, Embedding: []float32{1, 0, 0.5}},
			{Content: "Индексация", Source: "RAG.md", ChunkIndex: 0, Embedding: []float32{0, 1, -0.25}},
		},
		Metadata: domain.IndexMetadata{
			IndexID:        "5f7c1d2e-0000-4000-8000-000000000001",
			ChunkSize:      512,
			ChunkOverlap:   128,
			EmbeddingModel: "nomic-embed-text",
			TotalChunks:    2,
			Dimensions:     3,
			CreatedAt:      time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	idx := sampleIndex()

	data, err := Encode(idx)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, idx.Chunks, got.Chunks)
	assert.Equal(t, idx.Metadata.ChunkSize, got.Metadata.ChunkSize)
	assert.Equal(t, idx.Metadata.ChunkOverlap, got.Metadata.ChunkOverlap)
	assert.Equal(t, idx.Metadata.EmbeddingModel, got.Metadata.EmbeddingModel)
	assert.Equal(t, idx.Metadata.TotalChunks, got.Metadata.TotalChunks)
	assert.Equal(t, idx.Metadata.IndexID, got.Metadata.IndexID)
	assert.Equal(t, idx.Metadata.Dimensions, got.Metadata.Dimensions)
	assert.True(t, idx.Metadata.CreatedAt.Equal(got.Metadata.CreatedAt))
}

func TestEncode_Layout(t *testing.T) {
	data, err := Encode(sampleIndex())
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"chunk_index": 0`)
	assert.Contains(t, s, `"embedding_model": "nomic-embed-text"`)
	assert.Contains(t, s, `"total_chunks": 2`)
	assert.Contains(t, s, "<intro>", "HTML characters should not be escaped")
	assert.Contains(t, s, "Индексация", "non-ASCII text should be written verbatim")
	assert.Less(t, strings.Index(s, `"chunks"`), strings.Index(s, `"metadata"`))
}

func TestEncode_Nil(t *testing.T) {
	_, err := Encode(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecode_OriginalArtifact(t *testing.T) {
	data := []byte(`{
	  "chunks": [
	    {"content": "RAG overview", "source": "README.md", "chunk_index": 0, "embedding": [0.1, 0.2]},
	    {"content": "more", "source": "README.md", "chunk_index": 2, "embedding": [0.3, 0.4]}
	  ],
	  "metadata": {"total_chunks": 2, "chunk_size": 512, "chunk_overlap": 128, "embedding_model": "nomic-embed-text"}
	}`)

	idx, err := Decode(data)
	require.NoError(t, err)

	assert.Len(t, idx.Chunks, 2)
	assert.Equal(t, 2, idx.Metadata.Dimensions)
	assert.Empty(t, idx.Metadata.IndexID)
	assert.True(t, idx.Metadata.CreatedAt.IsZero())
}

func TestDecode_EmptyIndex(t *testing.T) {
	idx, err := Decode([]byte(`{"chunks": [], "metadata": {"total_chunks": 0, "chunk_size": 512, "chunk_overlap": 128, "embedding_model": "m"}}`))
	require.NoError(t, err)
	assert.Empty(t, idx.Chunks)
}

func TestDecode_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"chunks": [`},
		{"wrong type", `[]`},
		{"missing chunks", `{"metadata": {"total_chunks": 0, "chunk_size": 1, "chunk_overlap": 0, "embedding_model": "m"}}`},
		{"missing metadata", `{"chunks": []}`},
		{"missing model", `{"chunks": [], "metadata": {"total_chunks": 0, "chunk_size": 1, "chunk_overlap": 0}}`},
		{"missing total", `{"chunks": [], "metadata": {"chunk_size": 1, "chunk_overlap": 0, "embedding_model": "m"}}`},
		{"chunk missing content", `{"chunks": [{"source": "a", "chunk_index": 0, "embedding": [1]}],
			"metadata": {"total_chunks": 1, "chunk_size": 1, "chunk_overlap": 0, "embedding_model": "m"}}`},
		{"chunk missing embedding", `{"chunks": [{"content": "x", "source": "a", "chunk_index": 0}],
			"metadata": {"total_chunks": 1, "chunk_size": 1, "chunk_overlap": 0, "embedding_model": "m"}}`},
		{"count mismatch", `{"chunks": [], "metadata": {"total_chunks": 3, "chunk_size": 1, "chunk_overlap": 0, "embedding_model": "m"}}`},
		{"string embedding", `{"chunks": [{"content": "x", "source": "a", "chunk_index": 0, "embedding": "abc"}],
			"metadata": {"total_chunks": 1, "chunk_size": 1, "chunk_overlap": 0, "embedding_model": "m"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.ErrorIs(t, err, domain.ErrIndexCorrupt)
		})
	}
}
