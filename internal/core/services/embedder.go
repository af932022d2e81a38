package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/custodia-labs/docrag/internal/core/domain"
	"github.com/custodia-labs/docrag/internal/core/ports/driven"
	"github.com/custodia-labs/docrag/internal/logger"
)

// EmbeddingClient wraps an embedding provider with the index's failure
// contract: one attempt per text, and any failure becomes an empty vector.
type EmbeddingClient struct {
	provider driven.EmbeddingService
	failures atomic.Int64
}

// NewEmbeddingClient creates a client. provider may be nil, in which case
// every call reports the embedding as unavailable.
func NewEmbeddingClient(provider driven.EmbeddingService) *EmbeddingClient {
	return &EmbeddingClient{provider: provider}
}

// Embed returns the vector for text, or nil if the provider failed,
// timed out or returned an empty vector.
func (c *EmbeddingClient) Embed(ctx context.Context, text string) []float32 {
	vec, err := c.embed(ctx, text)
	if err != nil {
		logger.Debug("embedding unavailable: %v", err)
		return nil
	}
	return vec
}

// embed is Embed with the failure reason kept for reporting.
func (c *EmbeddingClient) embed(ctx context.Context, text string) ([]float32, error) {
	if c.provider == nil {
		c.failures.Add(1)
		return nil, domain.ErrEmbeddingUnavailable
	}

	vec, err := c.provider.Embed(ctx, text)
	if err != nil {
		c.failures.Add(1)
		return nil, err
	}
	if len(vec) == 0 {
		c.failures.Add(1)
		return nil, fmt.Errorf("%w: provider returned an empty vector", domain.ErrEmbeddingFailure)
	}
	return vec, nil
}

// Failures returns how many calls produced no vector.
func (c *EmbeddingClient) Failures() int64 {
	return c.failures.Load()
}

// ModelName returns the provider's model, or "" without a provider.
func (c *EmbeddingClient) ModelName() string {
	if c.provider == nil {
		return ""
	}
	return c.provider.ModelName()
}

// Ping checks that the provider is reachable.
func (c *EmbeddingClient) Ping(ctx context.Context) error {
	if c.provider == nil {
		return domain.ErrEmbeddingUnavailable
	}
	return c.provider.Ping(ctx)
}
