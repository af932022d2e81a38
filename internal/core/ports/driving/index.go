package driving

import (
	"context"

	"github.com/custodia-labs/docrag/internal/core/domain"
)

// IndexService builds and inspects the documentation index.
type IndexService interface {
	// Build loads, chunks and embeds every source and replaces the index.
	Build(ctx context.Context, opts domain.BuildOptions) (*domain.IndexReport, error)

	// Summary describes the persisted index.
	// Returns domain.ErrIndexNotFound when no index exists.
	Summary(ctx context.Context) (*domain.IndexSummary, error)

	// CheckProvider verifies the embedding provider is reachable.
	CheckProvider(ctx context.Context) error
}
