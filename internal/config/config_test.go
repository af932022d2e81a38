package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docrag/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docrag/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, "README.md", cfg.Sources.Overview)
	assert.Equal(t, "project/docs", cfg.Sources.DocsDir)
	assert.Equal(t, "*.md", cfg.Sources.DocsPattern)
	assert.Len(t, cfg.Sources.Guides, 4)
	assert.Equal(t, 512, cfg.Chunking.Size)
	assert.Equal(t, 128, cfg.Chunking.Overlap)
	assert.Equal(t, ProviderOllama, cfg.Embedding.Provider)
	assert.Equal(t, "nomic-embed-text", cfg.Embedding.Model)
	assert.Equal(t, 60*time.Second, cfg.Embedding.Timeout)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "project/docs/rag_index.json", cfg.Store.Path)
	assert.Equal(t, 5, cfg.Search.TopK)
	assert.Equal(t, -1.0, cfg.Search.MinScore)
	assert.Equal(t, DefaultTestQueries, cfg.Test.Queries)
	assert.Equal(t, 3, cfg.Test.TopK)
	assert.NoError(t, cfg.Validate())
}

func TestApplyStore(t *testing.T) {
	dir := writeConfig(t, `
root = "/srv/app"

[sources]
overview = "OVERVIEW.md"
guides = ["ONE.md"]

[chunking]
size = 300
overlap = 50

[embedding]
provider = "openai"
model = "text-embedding-3-large"
api_key = "sk-file"
timeout = "15s"
rate = 2

[store]
backend = "s3"

[store.s3]
bucket = "docs-index"
use_path_style = true

[search]
top_k = 8
min_score = 0.25
`)
	store, err := file.NewConfigStore(dir)
	require.NoError(t, err)

	cfg := Default()
	require.NoError(t, cfg.ApplyStore(store))

	assert.Equal(t, "/srv/app", cfg.Root)
	assert.Equal(t, "OVERVIEW.md", cfg.Sources.Overview)
	assert.Equal(t, "project/docs", cfg.Sources.DocsDir)
	assert.Equal(t, []string{"ONE.md"}, cfg.Sources.Guides)
	assert.Equal(t, 300, cfg.Chunking.Size)
	assert.Equal(t, 50, cfg.Chunking.Overlap)
	assert.Equal(t, ProviderOpenAI, cfg.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-large", cfg.Embedding.Model)
	assert.Equal(t, "sk-file", cfg.Embedding.APIKey)
	assert.Equal(t, 15*time.Second, cfg.Embedding.Timeout)
	assert.Equal(t, 2.0, cfg.Embedding.Rate)
	assert.Equal(t, BackendS3, cfg.Store.Backend)
	assert.Equal(t, "docs-index", cfg.Store.S3.Bucket)
	assert.Equal(t, "rag_index.json", cfg.Store.S3.Key)
	assert.True(t, cfg.Store.S3.UsePathStyle)
	assert.Equal(t, 8, cfg.Search.TopK)
	assert.Equal(t, 0.25, cfg.Search.MinScore)
	assert.NoError(t, cfg.Validate())
}

func TestApplyStore_BadTimeout(t *testing.T) {
	store, err := file.NewConfigStore(writeConfig(t, "[embedding]\ntimeout = \"soon\"\n"))
	require.NoError(t, err)

	err = Default().ApplyStore(store)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DOCRAG_ROOT", "/env/root")
	t.Setenv("DOCRAG_CHUNKING_SIZE", "1024")
	t.Setenv("DOCRAG_EMBEDDING_BASE_URL", "http://ollama:11434")
	t.Setenv("DOCRAG_EMBEDDING_TIMEOUT", "5s")
	t.Setenv("DOCRAG_STORE_BACKEND", "sqlite")
	t.Setenv("DOCRAG_STORE_SQLITE_PATH", "/tmp/index.db")
	t.Setenv("DOCRAG_SEARCH_MIN_SCORE", "0.3")
	t.Setenv("DOCRAG_TEST_QUERIES", "first question,second question")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "/env/root", cfg.Root)
	assert.Equal(t, 1024, cfg.Chunking.Size)
	assert.Equal(t, 128, cfg.Chunking.Overlap)
	assert.Equal(t, "http://ollama:11434", cfg.Embedding.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Embedding.Timeout)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/tmp/index.db", cfg.Store.SQLite.Path)
	assert.Equal(t, "project/docs/rag_index.json", cfg.Store.Path)
	assert.Equal(t, 0.3, cfg.Search.MinScore)
	assert.Equal(t, []string{"first question", "second question"}, cfg.Test.Queries)
}

func TestApplyEnv_OpenAIKeyFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "sk-env", cfg.Embedding.APIKey)

	t.Setenv("DOCRAG_EMBEDDING_API_KEY", "sk-docrag")
	cfg = Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "sk-docrag", cfg.Embedding.APIKey)
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv("DOCRAG_CHUNKING_SIZE", "large")

	err := Default().ApplyEnv()
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoad_LayersEnvOverFile(t *testing.T) {
	dir := writeConfig(t, "[chunking]\nsize = 200\noverlap = 20\n")
	t.Setenv("DOCRAG_CHUNKING_OVERLAP", "40")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Chunking.Size)
	assert.Equal(t, 40, cfg.Chunking.Overlap)
}

func TestLoad_ConfigDirEnv(t *testing.T) {
	dir := writeConfig(t, "[search]\ntop_k = 9\n")
	t.Setenv(ConfigDirEnv, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Search.TopK)
}

func TestLoad_Invalid(t *testing.T) {
	dir := writeConfig(t, "[chunking]\nsize = 100\noverlap = 100\n")

	_, err := Load(dir)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"zero chunk size", func(c *Config) { c.Chunking.Size = 0 }, "chunking.size"},
		{"overlap equals size", func(c *Config) { c.Chunking.Overlap = 512 }, "chunking.overlap"},
		{"negative overlap", func(c *Config) { c.Chunking.Overlap = -1 }, "chunking.overlap"},
		{"unknown provider", func(c *Config) { c.Embedding.Provider = "cohere" }, "embedding.provider"},
		{"openai without key", func(c *Config) { c.Embedding.Provider = ProviderOpenAI }, "api_key"},
		{"negative rate", func(c *Config) { c.Embedding.Rate = -1 }, "embedding.rate"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }, "store.backend"},
		{"s3 without bucket", func(c *Config) { c.Store.Backend = BackendS3 }, "bucket"},
		{"min score above one", func(c *Config) { c.Search.MinScore = 1.5 }, "min_score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestResolvePath(t *testing.T) {
	cfg := Default()
	cfg.Root = "/srv/app"

	assert.Equal(t, filepath.Join("/srv/app", "project/docs/rag_index.json"), cfg.ResolvePath(cfg.Store.Path))
	assert.Equal(t, "/abs/index.json", cfg.ResolvePath("/abs/index.json"))
	assert.Equal(t, "", cfg.ResolvePath(""))
}

func TestSearchOptions(t *testing.T) {
	cfg := Default()
	opts := cfg.SearchOptions()
	assert.Equal(t, 5, opts.TopK)
	assert.Nil(t, opts.MinScore)

	cfg.Search.MinScore = 0.4
	opts = cfg.SearchOptions()
	require.NotNil(t, opts.MinScore)
	assert.Equal(t, 0.4, *opts.MinScore)
}
