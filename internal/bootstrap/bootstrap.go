// Package bootstrap wires configuration into adapters and services.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/docrag/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/docrag/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/docrag/internal/adapters/driven/embedding/throttle"
	"github.com/custodia-labs/docrag/internal/adapters/driven/loader/filesystem"
	"github.com/custodia-labs/docrag/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/docrag/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docrag/internal/adapters/driven/storage/s3store"
	"github.com/custodia-labs/docrag/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docrag/internal/config"
	"github.com/custodia-labs/docrag/internal/core/domain"
	"github.com/custodia-labs/docrag/internal/core/ports/driven"
	"github.com/custodia-labs/docrag/internal/core/services"
	"github.com/custodia-labs/docrag/internal/logger"
	"github.com/custodia-labs/docrag/internal/postprocessors/chunker"
)

// App holds every wired component.
type App struct {
	Config   *config.Config
	Provider driven.EmbeddingService
	Embedder *services.EmbeddingClient
	Store    driven.IndexStore
	Loader   *filesystem.Loader
	Chunker  *chunker.Processor

	Index  *services.IndexService
	Search *services.SearchService
}

// New builds the application from cfg.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", domain.ErrInvalidConfig)
	}

	proc, err := chunker.New(
		chunker.WithChunkSize(cfg.Chunking.Size),
		chunker.WithOverlap(cfg.Chunking.Overlap),
	)
	if err != nil {
		return nil, err
	}

	provider, err := NewProvider(cfg.Embedding)
	if err != nil {
		return nil, err
	}

	store, err := NewStore(ctx, cfg)
	if err != nil {
		_ = provider.Close()
		return nil, err
	}

	loader := filesystem.New(filesystem.Config{
		Root:         cfg.Root,
		OverviewFile: cfg.Sources.Overview,
		DocsDir:      cfg.Sources.DocsDir,
		DocsPattern:  cfg.Sources.DocsPattern,
		Guides:       cfg.Sources.Guides,
	})

	embedder := services.NewEmbeddingClient(provider)

	logger.Debug("provider=%s model=%s store=%s", cfg.Embedding.Provider, provider.ModelName(), store.Location())

	return &App{
		Config:   cfg,
		Provider: provider,
		Embedder: embedder,
		Store:    store,
		Loader:   loader,
		Chunker:  proc,
		Index:    services.NewIndexService(loader, proc, embedder, store),
		Search:   services.NewSearchService(store, embedder),
	}, nil
}

// NewProvider creates the configured embedding provider, throttled when
// a rate is set.
func NewProvider(cfg config.EmbeddingConfig) (driven.EmbeddingService, error) {
	var provider driven.EmbeddingService

	switch cfg.Provider {
	case config.ProviderOllama, "":
		provider = ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
	case config.ProviderOpenAI:
		// The ollama default base URL never applies to openai
		baseURL := cfg.BaseURL
		if baseURL == ollama.DefaultBaseURL {
			baseURL = ""
		}
		model := cfg.Model
		if model == ollama.DefaultModel {
			model = ""
		}
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    baseURL,
			Model:      model,
			Timeout:    cfg.Timeout,
			Dimensions: cfg.Dimensions,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
		}
		provider = svc
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", domain.ErrInvalidConfig, cfg.Provider)
	}

	return throttle.Wrap(provider, cfg.Rate), nil
}

// NewStore creates the configured index store.
func NewStore(ctx context.Context, cfg *config.Config) (driven.IndexStore, error) {
	switch cfg.Store.Backend {
	case config.BackendFile, "":
		return file.NewIndexStore(cfg.ResolvePath(cfg.Store.Path)), nil
	case config.BackendSQLite:
		return sqlite.NewStore(cfg.ResolvePath(cfg.Store.SQLite.Path))
	case config.BackendS3:
		s3 := cfg.Store.S3
		return s3store.NewIndexStore(ctx, s3store.Config{
			Bucket:          s3.Bucket,
			Key:             s3.Key,
			Region:          s3.Region,
			Endpoint:        s3.Endpoint,
			AccessKeyID:     s3.AccessKeyID,
			SecretAccessKey: s3.SecretAccessKey,
			UsePathStyle:    s3.UsePathStyle,
		})
	case config.BackendMemory:
		return memory.NewIndexStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown store backend %q", domain.ErrInvalidConfig, cfg.Store.Backend)
	}
}

// Close releases the provider and the store.
func (a *App) Close() error {
	var errs []error
	if a.Provider != nil {
		errs = append(errs, a.Provider.Close())
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}
