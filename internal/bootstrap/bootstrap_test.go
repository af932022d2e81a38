package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docrag/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/docrag/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/docrag/internal/adapters/driven/embedding/throttle"
	"github.com/custodia-labs/docrag/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/docrag/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docrag/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docrag/internal/config"
	"github.com/custodia-labs/docrag/internal/core/domain"
)

func TestNew_Defaults(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.Root = root

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	assert.IsType(t, &ollama.EmbeddingService{}, app.Provider)
	assert.IsType(t, &file.IndexStore{}, app.Store)
	assert.Equal(t, filepath.Join(root, "project/docs/rag_index.json"), app.Store.Location())
	assert.Equal(t, 512, app.Chunker.ChunkSize())
	assert.Equal(t, 128, app.Chunker.Overlap())
	assert.Equal(t, "nomic-embed-text", app.Embedder.ModelName())
	assert.NotNil(t, app.Index)
	assert.NotNil(t, app.Search)
}

func TestNew_InvalidChunking(t *testing.T) {
	cfg := config.Default()
	cfg.Chunking.Overlap = cfg.Chunking.Size

	_, err := New(context.Background(), cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidChunking)
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestNewProvider(t *testing.T) {
	cfg := config.Default().Embedding

	p, err := NewProvider(cfg)
	require.NoError(t, err)
	assert.IsType(t, &ollama.EmbeddingService{}, p)

	cfg.Rate = 5
	p, err = NewProvider(cfg)
	require.NoError(t, err)
	assert.IsType(t, &throttle.EmbeddingService{}, p)
	assert.Equal(t, "nomic-embed-text", p.ModelName())
}

func TestNewProvider_OpenAI(t *testing.T) {
	cfg := config.Default().Embedding
	cfg.Provider = config.ProviderOpenAI

	_, err := NewProvider(cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	cfg.APIKey = "sk-test"
	p, err := NewProvider(cfg)
	require.NoError(t, err)
	assert.IsType(t, &openai.EmbeddingService{}, p)
	assert.Equal(t, openai.DefaultModel, p.ModelName())
}

func TestNewProvider_Unknown(t *testing.T) {
	cfg := config.Default().Embedding
	cfg.Provider = "cohere"

	_, err := NewProvider(cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestNewStore(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "project", "docs"), 0755))

	tests := []struct {
		backend string
		want    any
	}{
		{config.BackendFile, &file.IndexStore{}},
		{config.BackendSQLite, &sqlite.Store{}},
		{config.BackendMemory, &memory.IndexStore{}},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := config.Default()
			cfg.Root = root
			cfg.Store.Backend = tt.backend

			store, err := NewStore(context.Background(), cfg)
			require.NoError(t, err)
			defer func() { _ = store.Close() }()

			assert.IsType(t, tt.want, store)
		})
	}
}

func TestNewStore_S3RequiresBucket(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = config.BackendS3

	_, err := NewStore(context.Background(), cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestNewStore_Unknown(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = "redis"

	_, err := NewStore(context.Background(), cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestApp_IndexAndSearchEndToEnd(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("overview"), 0644))

	cfg := config.Default()
	cfg.Root = root
	cfg.Store.Backend = config.BackendMemory

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	assert.Equal(t, ":memory:", app.Store.Location())

	resp, err := app.Search.Search(context.Background(), "anything", cfg.SearchOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.SearchNoIndex, resp.Status)
}
