// Package config assembles the runtime configuration from defaults,
// the TOML config file and DOCRAG_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/custodia-labs/docrag/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docrag/internal/core/domain"
	"github.com/custodia-labs/docrag/internal/core/ports/driven"
)

// EnvPrefix prefixes every environment variable, e.g. DOCRAG_EMBEDDING_MODEL.
const EnvPrefix = "DOCRAG"

// ConfigDirEnv overrides the directory holding config.toml.
const ConfigDirEnv = "DOCRAG_CONFIG_DIR"

// Embedding providers.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Index store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// DefaultTestQueries are run by the test command.
var DefaultTestQueries = []string{
	"How does the RAG system work?",
	"Where is IndexingService located?",
	"What parameters does FilterConfig have?",
	"Code style for Composable functions",
}

// Config is the complete runtime configuration. Environment names derive
// from field names, e.g. Embedding.BaseURL is DOCRAG_EMBEDDING_BASE_URL.
type Config struct {
	// Root is the project root. Relative paths elsewhere resolve against it.
	Root string

	Sources   SourcesConfig
	Chunking  ChunkingConfig
	Embedding EmbeddingConfig
	Store     StoreConfig
	Search    SearchConfig
	Test      TestConfig
	Telemetry TelemetryConfig
}

// SourcesConfig lists the documentation sources.
type SourcesConfig struct {
	Overview    string
	DocsDir     string `split_words:"true"`
	DocsPattern string `split_words:"true"`
	Guides      []string
}

// ChunkingConfig sizes the text windows, in characters.
type ChunkingConfig struct {
	Size    int
	Overlap int
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	Provider string
	BaseURL  string `split_words:"true"`
	Model    string
	Timeout  time.Duration

	// APIKey is required for openai. OPENAI_API_KEY is used when unset.
	APIKey string `split_words:"true"`

	// Dimensions shortens openai text-embedding-3 vectors. Zero keeps the default.
	Dimensions int

	// Rate caps provider calls per second. Zero is unthrottled.
	Rate float64
}

// StoreConfig selects where the index is persisted.
type StoreConfig struct {
	Backend string

	// Path is the JSON artifact used by the file backend.
	Path string

	SQLite SQLiteConfig
	S3     S3Config
}

// SQLiteConfig locates the sqlite database.
type SQLiteConfig struct {
	Path string
}

// S3Config locates the index object in an S3-compatible bucket.
type S3Config struct {
	Bucket          string
	Key             string
	Region          string
	Endpoint        string
	AccessKeyID     string `split_words:"true"`
	SecretAccessKey string `split_words:"true"`
	UsePathStyle    bool   `split_words:"true"`
}

// SearchConfig holds query defaults.
type SearchConfig struct {
	TopK int `split_words:"true"`

	// MinScore at or below -1 disables filtering.
	MinScore float64 `split_words:"true"`
}

// TestConfig configures the test command.
type TestConfig struct {
	Queries []string
	TopK    int `split_words:"true"`
}

// TelemetryConfig configures error reporting.
type TelemetryConfig struct {
	SentryDSN   string `split_words:"true"`
	Environment string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Root: ".",
		Sources: SourcesConfig{
			Overview:    "README.md",
			DocsDir:     "project/docs",
			DocsPattern: "*.md",
			Guides: []string{
				"RAG_COMPLETE_GUIDE.md",
				"RAG_FILTERING_GUIDE.md",
				"TESTING_GUIDE.md",
				"CHANGES_SUMMARY.md",
			},
		},
		Chunking: ChunkingConfig{Size: 512, Overlap: 128},
		Embedding: EmbeddingConfig{
			Provider: ProviderOllama,
			BaseURL:  "http://localhost:11434",
			Model:    "nomic-embed-text",
			Timeout:  60 * time.Second,
		},
		Store: StoreConfig{
			Backend: BackendFile,
			Path:    "project/docs/rag_index.json",
			SQLite:  SQLiteConfig{Path: "project/docs/rag_index.db"},
			S3:      S3Config{Key: "rag_index.json"},
		},
		Search: SearchConfig{TopK: domain.DefaultTopK, MinScore: domain.MinCosineScore},
		Test: TestConfig{
			Queries: append([]string(nil), DefaultTestQueries...),
			TopK:    3,
		},
		Telemetry: TelemetryConfig{Environment: "development"},
	}
}

// Load builds the configuration. configDir selects the directory holding
// config.toml; empty means $DOCRAG_CONFIG_DIR, then ~/.docrag.
// A .env file in the working directory is loaded first when present.
func Load(configDir string) (*Config, error) {
	_ = godotenv.Load()

	if configDir == "" {
		configDir = os.Getenv(ConfigDirEnv)
	}
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	cfg := Default()
	if err := cfg.ApplyStore(store); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyStore overlays every key present in store.
func (c *Config) ApplyStore(store driven.ConfigStore) error {
	has := func(key string) bool {
		_, ok := store.Get(key)
		return ok
	}
	str := func(key string, dst *string) {
		if has(key) {
			*dst = store.GetString(key)
		}
	}
	num := func(key string, dst *int) {
		if has(key) {
			*dst = store.GetInt(key)
		}
	}
	float := func(key string, dst *float64) {
		if has(key) {
			*dst = store.GetFloat(key)
		}
	}
	list := func(key string, dst *[]string) {
		if has(key) {
			*dst = store.GetStringSlice(key)
		}
	}

	str("root", &c.Root)

	str("sources.overview", &c.Sources.Overview)
	str("sources.docs_dir", &c.Sources.DocsDir)
	str("sources.docs_pattern", &c.Sources.DocsPattern)
	list("sources.guides", &c.Sources.Guides)

	num("chunking.size", &c.Chunking.Size)
	num("chunking.overlap", &c.Chunking.Overlap)

	str("embedding.provider", &c.Embedding.Provider)
	str("embedding.base_url", &c.Embedding.BaseURL)
	str("embedding.model", &c.Embedding.Model)
	str("embedding.api_key", &c.Embedding.APIKey)
	num("embedding.dimensions", &c.Embedding.Dimensions)
	float("embedding.rate", &c.Embedding.Rate)
	if has("embedding.timeout") {
		d, err := store.GetDuration("embedding.timeout")
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
		}
		c.Embedding.Timeout = d
	}

	str("store.backend", &c.Store.Backend)
	str("store.path", &c.Store.Path)
	str("store.sqlite.path", &c.Store.SQLite.Path)
	str("store.s3.bucket", &c.Store.S3.Bucket)
	str("store.s3.key", &c.Store.S3.Key)
	str("store.s3.region", &c.Store.S3.Region)
	str("store.s3.endpoint", &c.Store.S3.Endpoint)
	str("store.s3.access_key_id", &c.Store.S3.AccessKeyID)
	str("store.s3.secret_access_key", &c.Store.S3.SecretAccessKey)
	if has("store.s3.use_path_style") {
		c.Store.S3.UsePathStyle = store.GetBool("store.s3.use_path_style")
	}

	num("search.top_k", &c.Search.TopK)
	float("search.min_score", &c.Search.MinScore)

	list("test.queries", &c.Test.Queries)
	num("test.top_k", &c.Test.TopK)

	str("telemetry.sentry_dsn", &c.Telemetry.SentryDSN)
	str("telemetry.environment", &c.Telemetry.Environment)
	return nil
}

// ApplyEnv overlays DOCRAG_* environment variables. Unset variables keep
// the current value.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	if c.Embedding.APIKey == "" {
		c.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return nil
}

// Validate rejects configurations no component could run with.
// The returned error wraps domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error

	if c.Chunking.Size <= 0 {
		errs = append(errs, fmt.Errorf("chunking.size must be positive, got %d", c.Chunking.Size))
	}
	if c.Chunking.Overlap < 0 || (c.Chunking.Size > 0 && c.Chunking.Overlap >= c.Chunking.Size) {
		errs = append(errs, fmt.Errorf("chunking.overlap must be in [0, %d), got %d",
			c.Chunking.Size, c.Chunking.Overlap))
	}

	switch c.Embedding.Provider {
	case ProviderOllama:
	case ProviderOpenAI:
		if c.Embedding.APIKey == "" {
			errs = append(errs, errors.New("embedding.api_key is required for openai"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown embedding.provider %q", c.Embedding.Provider))
	}
	if c.Embedding.Timeout < 0 {
		errs = append(errs, fmt.Errorf("embedding.timeout must not be negative, got %s", c.Embedding.Timeout))
	}
	if c.Embedding.Rate < 0 {
		errs = append(errs, fmt.Errorf("embedding.rate must not be negative, got %g", c.Embedding.Rate))
	}

	switch c.Store.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	case BackendS3:
		if c.Store.S3.Bucket == "" {
			errs = append(errs, errors.New("store.s3.bucket is required for the s3 backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store.backend %q", c.Store.Backend))
	}

	if c.Search.MinScore > 1 {
		errs = append(errs, fmt.Errorf("search.min_score must be at most 1, got %g", c.Search.MinScore))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, errors.Join(errs...))
}

// ResolvePath joins a relative path onto Root.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// SearchOptions returns the configured query defaults.
func (c *Config) SearchOptions() domain.SearchOptions {
	return domain.SearchOptions{TopK: c.Search.TopK}.WithMinScore(c.Search.MinScore)
}
