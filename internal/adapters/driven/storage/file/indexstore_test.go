package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docrag/internal/core/domain"
)

func testIndex() *domain.Index {
	return &domain.Index{
		Chunks: []domain.DocumentChunk{
			{Content: "alpha", Source: "README.md", ChunkIndex: 0, Embedding: []float32{1, 0}},
			{Content: "beta", Source: "README.md", ChunkIndex: 1, Embedding: []float32{0, 1}},
		},
		Metadata: domain.IndexMetadata{
			ChunkSize:      512,
			ChunkOverlap:   128,
			EmbeddingModel: "nomic-embed-text",
			TotalChunks:    2,
			Dimensions:     2,
		},
	}
}

func TestNewIndexStore_Default(t *testing.T) {
	assert.Equal(t, DefaultPath, NewIndexStore("").Location())
}

func TestIndexStore_LoadMissing(t *testing.T) {
	s := NewIndexStore(filepath.Join(t.TempDir(), "rag_index.json"))

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrIndexNotFound)
}

func TestIndexStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "docs", "rag_index.json")
	s := NewIndexStore(path)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testIndex()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testIndex().Chunks, got.Chunks)
	assert.Equal(t, testIndex().Metadata, got.Metadata)

	size, err := s.Size()
	require.NoError(t, err)
	assert.Positive(t, size)
	assert.NoError(t, s.Close())
}

func TestIndexStore_SaveReplaces(t *testing.T) {
	dir := t.TempDir()
	s := NewIndexStore(filepath.Join(dir, "rag_index.json"))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testIndex()))

	smaller := &domain.Index{
		Chunks: []domain.DocumentChunk{
			{Content: "only", Source: "guide.md", ChunkIndex: 0, Embedding: []float32{0.5}},
		},
		Metadata: domain.IndexMetadata{ChunkSize: 10, ChunkOverlap: 2, EmbeddingModel: "m", TotalChunks: 1, Dimensions: 1},
	}
	require.NoError(t, s.Save(ctx, smaller))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Chunks, 1)
	assert.Equal(t, "guide.md", got.Chunks[0].Source)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestIndexStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rag_index.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"chunks": "oops"}`), 0o644))

	_, err := NewIndexStore(path).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrIndexCorrupt)
	assert.Contains(t, err.Error(), path)
}

func TestIndexStore_CancelledContext(t *testing.T) {
	s := NewIndexStore(filepath.Join(t.TempDir(), "rag_index.json"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Save(ctx, testIndex()), context.Canceled)
	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
